package operation

import (
	"github.com/platform9/pcdmanager/domain"
	"k8s.io/utils/clock"
)

// Repos holds repositories needed for operation use cases.
type Repos struct {
	Operation domain.OperationRepository
}

// UseCase records and lists the operation journal.
type UseCase struct {
	Repos *Repos
	Clock clock.PassiveClock
}

func (u *UseCase) now() clock.PassiveClock {
	if u.Clock == nil {
		return clock.RealClock{}
	}
	return u.Clock
}
