package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
)

// OperationRepository is a thread-safe in-memory journal.
type OperationRepository struct {
	mu    sync.RWMutex
	items map[string]*model.Operation
	seq   int64
}

func NewOperationRepository() *OperationRepository {
	return &OperationRepository{items: make(map[string]*model.Operation)}
}

func (r *OperationRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("op-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *OperationRepository) Create(_ context.Context, op *model.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op.ID == "" {
		op.ID = r.nextID()
	}
	r.items[op.ID] = copyOperation(op)
	return nil
}

func (r *OperationRepository) Get(_ context.Context, id string) (*model.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		return nil, model.ErrOperationNotFound
	}
	return copyOperation(v), nil
}

// List returns matching operations, newest first.
func (r *OperationRepository) List(_ context.Context, f domain.OperationFilter) ([]*model.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Operation, 0, len(r.items))
	for _, v := range r.items {
		if f.Environment != "" && v.Environment != f.Environment {
			continue
		}
		if f.FQDN != "" && v.FQDN != f.FQDN {
			continue
		}
		if f.Actor != "" && v.Actor != f.Actor {
			continue
		}
		out = append(out, copyOperation(v))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *OperationRepository) Update(_ context.Context, op *model.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[op.ID]; !ok {
		return model.ErrOperationNotFound
	}
	r.items[op.ID] = copyOperation(op)
	return nil
}

func copyOperation(op *model.Operation) *model.Operation {
	cp := *op
	if op.FinishedAt != nil {
		t := *op.FinishedAt
		cp.FinishedAt = &t
	}
	return &cp
}
