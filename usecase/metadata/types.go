package metadata

import (
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/ttlcache"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// UseCase wires the ports needed for region metadata use cases.
type UseCase struct {
	Access  *access.Resolver
	Journal *operation.UseCase
	// Listings is the region listing cache shared with the region use cases,
	// invalidated per environment after each write.
	Listings *ttlcache.Cache[[]*model.RegionGroup]
}

// RegionRef selects a region by FQDN or by customer and region name.
type RegionRef struct {
	Environment string `json:"environment"`
	FQDN        string `json:"fqdn,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	ShortName   string `json:"shortName,omitempty"`
	RegionName  string `json:"regionName,omitempty"`
	// Token is forwarded as-is. Metadata calls never read stored credentials.
	Token string `json:"token,omitempty"`
	Actor string `json:"userEmail,omitempty"`
}

func (r RegionRef) target() access.Target {
	return access.Target{FQDN: r.FQDN, Namespace: r.Namespace, ShortName: r.ShortName, RegionName: r.RegionName}
}
