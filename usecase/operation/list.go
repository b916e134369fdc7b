package operation

import (
	"context"

	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
)

// defaultLimit caps listings when the caller does not ask for a size.
const defaultLimit = 100

// ListInput filters the journal. Empty fields match everything.
type ListInput struct {
	Environment string `json:"env,omitempty"`
	FQDN        string `json:"fqdn,omitempty"`
	Actor       string `json:"actor,omitempty"`
	Limit       int    `json:"limit,omitempty"`
}

// ListOutput is the newest-first journal page.
type ListOutput struct {
	Operations []*model.Operation `json:"operations"`
}

// List returns journal entries, newest first.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		in = &ListInput{}
	}
	if in.Limit < 0 {
		return nil, model.Invalidf("limit must not be negative")
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	ops, err := u.Repos.Operation.List(ctx, domain.OperationFilter{
		Environment: in.Environment,
		FQDN:        in.FQDN,
		Actor:       in.Actor,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListOutput{Operations: ops}, nil
}

// GetInput identifies one journal entry.
type GetInput struct {
	ID string `json:"id"`
}

// Get returns a single journal entry.
func (u *UseCase) Get(ctx context.Context, in *GetInput) (*model.Operation, error) {
	if in == nil || in.ID == "" {
		return nil, model.Invalidf("operation id is required")
	}
	return u.Repos.Operation.Get(ctx, in.ID)
}
