package inmem

import (
	"context"
	"fmt"

	"github.com/platform9/pcdmanager/domain/model"
)

// EnvironmentRepository is an immutable registry built once at startup.
// Listing preserves configuration order.
type EnvironmentRepository struct {
	order []string
	items map[string]*model.Environment
}

func NewEnvironmentRepository(envs []*model.Environment) *EnvironmentRepository {
	r := &EnvironmentRepository{items: make(map[string]*model.Environment, len(envs))}
	for _, e := range envs {
		if _, dup := r.items[e.ID]; dup {
			continue
		}
		cp := *e
		r.items[e.ID] = &cp
		r.order = append(r.order, e.ID)
	}
	return r
}

func (r *EnvironmentRepository) Get(_ context.Context, id string) (*model.Environment, error) {
	v, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrEnvironmentNotFound, id)
	}
	cp := *v
	return &cp, nil
}

func (r *EnvironmentRepository) List(_ context.Context) ([]*model.Environment, error) {
	out := make([]*model.Environment, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.items[id]
		out = append(out, &cp)
	}
	return out, nil
}
