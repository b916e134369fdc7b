package sweep

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/region"
	"k8s.io/utils/clock"
)

// DefaultWindows are the warning horizons in days.
var DefaultWindows = []int{5, 1}

// RegionDeleter is the region teardown the sweep delegates to.
type RegionDeleter interface {
	Delete(ctx context.Context, in *region.DeleteInput) (*region.DeleteOutput, error)
}

// UseCase runs the lease expiry sweep.
type UseCase struct {
	Access   *access.Resolver
	Regions  RegionDeleter
	Notifier model.NotifierPort
	Clock    clock.PassiveClock
	// Windows lists the days-before-expiry that trigger a warning.
	Windows []int
	// SystemUser is the actor recorded on sweep deletions.
	SystemUser string
}

func (u *UseCase) clock() clock.PassiveClock {
	if u.Clock == nil {
		return clock.RealClock{}
	}
	return u.Clock
}

func (u *UseCase) windows() []int {
	if len(u.Windows) == 0 {
		return DefaultWindows
	}
	return u.Windows
}
