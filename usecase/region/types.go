package region

import (
	"time"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/ttlcache"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// DefaultBurnTimeout bounds the wait on BURN when none is configured.
const DefaultBurnTimeout = 10 * time.Second

// UseCase wires the ports needed for region lifecycle use cases.
type UseCase struct {
	Access  *access.Resolver
	Journal *operation.UseCase
	// Listings caches the grouped region listing per environment.
	Listings *ttlcache.Cache[[]*model.RegionGroup]
	// BurnTimeout bounds the wait on BURN. Expiry is not an error.
	BurnTimeout time.Duration
}

func (u *UseCase) burnTimeout() time.Duration {
	if u.BurnTimeout <= 0 {
		return DefaultBurnTimeout
	}
	return u.BurnTimeout
}

func (u *UseCase) invalidate(envID string) {
	if u.Listings != nil {
		u.Listings.Delete(envID)
	}
}

// Workflow stage names reported in errors and in the operation journal.
const (
	StageCustomerCreation = "customer creation"
	StageRegionCreation   = "region creation"
	StageDeployment       = "deployment"
	StageMetadata         = "metadata"
	StageUpgrade          = "upgrade"
	StageListing          = "region listing"
	StageBurn             = "burn"
	StageRegionDeletion   = "region deletion"
	StageStateReset       = "state reset"
)
