package domain

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
)

// EnvironmentRepository is the read-only environment registry.
type EnvironmentRepository interface {
	Get(ctx context.Context, id string) (*model.Environment, error)
	List(ctx context.Context) ([]*model.Environment, error)
}

// OperationFilter narrows an operation listing. Zero values match everything.
type OperationFilter struct {
	Environment string
	FQDN        string
	Actor       string
	Limit       int
}

// OperationRepository stores the operation journal.
type OperationRepository interface {
	Create(ctx context.Context, op *model.Operation) error
	Get(ctx context.Context, id string) (*model.Operation, error)
	List(ctx context.Context, f OperationFilter) ([]*model.Operation, error)
	Update(ctx context.Context, op *model.Operation) error
}

// Repositories groups the repositories used by the use cases.
type Repositories struct {
	Environment EnvironmentRepository
	Operation   OperationRepository
}
