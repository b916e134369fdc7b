package inmem

import (
	"github.com/platform9/pcdmanager/config/pcdcfg"
	"github.com/platform9/pcdmanager/domain"
)

// Store provides a unified interface for all in-memory repositories.
type Store struct {
	EnvironmentRepo *EnvironmentRepository
	OperationRepo   *OperationRepository
}

// NewStore creates a new in-memory store seeded with the configured environments.
func NewStore(cfg *pcdcfg.Root) *Store {
	return &Store{
		EnvironmentRepo: NewEnvironmentRepository(cfg.ToModels()),
		OperationRepo:   NewOperationRepository(),
	}
}

// Repositories exposes the store as domain.Repositories.
func (s *Store) Repositories() domain.Repositories {
	return domain.Repositories{Environment: s.EnvironmentRepo, Operation: s.OperationRepo}
}

// Compile-time assertions
var _ domain.EnvironmentRepository = (*EnvironmentRepository)(nil)
var _ domain.OperationRepository = (*OperationRepository)(nil)
