package region

import (
	"context"
	"sort"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
)

// ListInput selects the environment to list.
type ListInput struct {
	Environment string `json:"env"`
	// Refresh bypasses the listing cache.
	Refresh bool `json:"refresh,omitempty"`
}

// ListOutput groups regions by customer.
type ListOutput struct {
	Groups []*model.RegionGroup `json:"groups"`
}

// List returns the regions of an environment grouped by lower-cased customer
// short name, sorted by customer. Entries without customer, region name or
// FQDN are dropped. Missing lease counter and cert flag metadata are defaulted.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	env, err := u.Access.Environment(ctx, in.Environment)
	if err != nil {
		return nil, err
	}
	if in.Refresh {
		u.invalidate(env.ID)
	}
	load := func(ctx context.Context) ([]*model.RegionGroup, error) {
		_, cp, err := u.Access.Connect(ctx, access.Request{Environment: env.ID, Credential: access.CredentialOptional})
		if err != nil {
			return nil, err
		}
		regions, err := cp.ListRegions(ctx)
		if err != nil {
			return nil, err
		}
		return GroupByCustomer(regions), nil
	}
	var groups []*model.RegionGroup
	if u.Listings != nil {
		groups, err = u.Listings.GetOrLoad(ctx, env.ID, load)
	} else {
		groups, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &ListOutput{Groups: groups}, nil
}

// GroupByCustomer builds the customer grouping used by List.
func GroupByCustomer(regions []*model.Region) []*model.RegionGroup {
	byCustomer := map[string]*model.RegionGroup{}
	for _, r := range regions {
		customer := strings.ToLower(strings.TrimSpace(r.CustomerShortName))
		if customer == "" || r.RegionName == "" || r.FQDN == "" {
			continue
		}
		g, ok := byCustomer[customer]
		if !ok {
			g = &model.RegionGroup{Customer: customer}
			byCustomer[customer] = g
		}
		cp := *r
		cp.Metadata = r.Metadata.Clone()
		if cp.Metadata.String(model.MetaLeaseCounter) == "" {
			cp.Metadata[model.MetaLeaseCounter] = "0"
		}
		if cp.Metadata.String(model.MetaDUCert) == "" {
			cp.Metadata[model.MetaDUCert] = "false"
		}
		g.Regions = append(g.Regions, &cp)
	}
	out := make([]*model.RegionGroup, 0, len(byCustomer))
	for _, g := range byCustomer {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Customer < out[j].Customer })
	return out
}
