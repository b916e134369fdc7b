package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	"gorm.io/gorm"
)

type OperationRepository struct{ db *gorm.DB }

func NewOperationRepository(db *gorm.DB) *OperationRepository { return &OperationRepository{db: db} }

func operationToRecord(op *model.Operation) *OperationRecord {
	return &OperationRecord{
		ID:          op.ID,
		Kind:        string(op.Kind),
		Environment: op.Environment,
		FQDN:        op.FQDN,
		Actor:       op.Actor,
		Status:      string(op.Status),
		Stage:       op.Stage,
		Message:     op.Message,
		StartedAt:   op.StartedAt,
		FinishedAt:  op.FinishedAt,
	}
}

func operationToModel(r *OperationRecord) *model.Operation {
	return &model.Operation{
		ID:          r.ID,
		Kind:        model.OperationKind(r.Kind),
		Environment: r.Environment,
		FQDN:        r.FQDN,
		Actor:       r.Actor,
		Status:      model.OperationStatus(r.Status),
		Stage:       r.Stage,
		Message:     r.Message,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
	}
}

func (r *OperationRepository) Create(ctx context.Context, op *model.Operation) error {
	rec := operationToRecord(op)
	if rec.ID == "" {
		rec.ID = "op-" + uuid.NewString()
		op.ID = rec.ID
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *OperationRepository) Get(ctx context.Context, id string) (*model.Operation, error) {
	var rec OperationRecord
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOperationNotFound
		}
		return nil, err
	}
	return operationToModel(&rec), nil
}

// List returns matching operations, newest first.
func (r *OperationRepository) List(ctx context.Context, f domain.OperationFilter) ([]*model.Operation, error) {
	q := r.db.WithContext(ctx).Model(&OperationRecord{})
	if f.Environment != "" {
		q = q.Where("environment = ?", f.Environment)
	}
	if f.FQDN != "" {
		q = q.Where("fqdn = ?", f.FQDN)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var recs []OperationRecord
	if err := q.Order("started_at DESC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Operation, 0, len(recs))
	for i := range recs {
		out = append(out, operationToModel(&recs[i]))
	}
	return out, nil
}

// Update writes every column of op, including zero values.
func (r *OperationRepository) Update(ctx context.Context, op *model.Operation) error {
	rec := operationToRecord(op)
	res := r.db.WithContext(ctx).Model(&OperationRecord{}).Where("id = ?", rec.ID).Select("*").Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrOperationNotFound
	}
	return nil
}

var _ domain.OperationRepository = (*OperationRepository)(nil)
