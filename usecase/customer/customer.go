package customer

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
)

// UseCase lists control plane customers.
type UseCase struct {
	Access *access.Resolver
}

// ListInput selects the environment.
type ListInput struct {
	Environment string `json:"env"`
}

// ListOutput holds the customers of an environment.
type ListOutput struct {
	Customers []*model.Customer `json:"customers"`
}

// List returns every customer of the environment with its admin email.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	_, cp, err := u.Access.Connect(ctx, access.Request{Environment: in.Environment, Credential: access.CredentialOptional})
	if err != nil {
		return nil, err
	}
	customers, err := cp.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Customers: customers}, nil
}
