package cluster

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
)

// UseCase lists dataplane clusters.
type UseCase struct {
	Access *access.Resolver
}

// ListInput selects the environment.
type ListInput struct {
	Environment string `json:"env"`
}

// ListOutput holds the clusters currently accepting new regions.
type ListOutput struct {
	Clusters []*model.Cluster `json:"clusters"`
}

// List returns the clusters of the environment that accept new regions.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	_, cp, err := u.Access.Connect(ctx, access.Request{Environment: in.Environment, Credential: access.CredentialOptional})
	if err != nil {
		return nil, err
	}
	all, err := cp.ListClusters(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Cluster, 0, len(all))
	for _, c := range all {
		if c.Accepting {
			out = append(out, c)
		}
	}
	return &ListOutput{Clusters: out}, nil
}
