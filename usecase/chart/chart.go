package chart

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/ttlcache"
	"github.com/platform9/pcdmanager/usecase/access"
)

// UseCase lists deployable chart releases.
type UseCase struct {
	Access  *access.Resolver
	Catalog model.ChartCatalogPort
	// Cache holds catalog results per environment.
	Cache *ttlcache.Cache[[]model.Chart]
}

// ListInput selects the environment.
type ListInput struct {
	Environment string `json:"env"`
}

// ListOutput holds the chart catalog.
type ListOutput struct {
	Charts []model.Chart `json:"charts"`
}

// List returns the chart releases available to an environment.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	env, err := u.Access.Environment(ctx, in.Environment)
	if err != nil {
		return nil, err
	}
	load := func(ctx context.Context) ([]model.Chart, error) {
		return u.Catalog.Charts(ctx, env)
	}
	var charts []model.Chart
	if u.Cache != nil {
		charts, err = u.Cache.GetOrLoad(ctx, env.ID, load)
	} else {
		charts, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &ListOutput{Charts: charts}, nil
}
