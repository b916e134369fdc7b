package sweep

import (
	"time"

	"github.com/platform9/pcdmanager/domain/model"
)

const leaseLayout = "2006-01-02"

// Classification buckets the regions of one sweep.
type Classification struct {
	Expired  []*model.Region
	Expiring map[int][]*model.Region
	// Skipped counts regions without owner, without lease date or with an unparsable lease date.
	Skipped int
}

// Classify sorts regions into expired, expiring-in-N-days for each window, or
// nothing. Dates are compared at day granularity in UTC. A region lacking an
// owner or a lease date is never selected.
func Classify(regions []*model.Region, now time.Time, windows []int) Classification {
	out := Classification{Expiring: map[int][]*model.Region{}}
	today := truncateDay(now)
	inWindow := make(map[int]bool, len(windows))
	for _, w := range windows {
		inWindow[w] = true
	}
	for _, r := range regions {
		owner, lease := r.Metadata.Owner(), r.Metadata.LeaseDate()
		if owner == "" || lease == "" {
			out.Skipped++
			continue
		}
		d, err := time.Parse(leaseLayout, lease)
		if err != nil {
			out.Skipped++
			continue
		}
		days := int(d.Sub(today).Hours() / 24)
		switch {
		case days < 0:
			out.Expired = append(out.Expired, r)
		case inWindow[days]:
			out.Expiring[days] = append(out.Expiring[days], r)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
