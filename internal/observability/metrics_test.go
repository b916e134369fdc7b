package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	ObserveBorkCall("lab", "BURN", 0, 10*time.Millisecond)
	if got := testutil.ToFloat64(borkRequests.WithLabelValues("lab", "BURN", "0")); got != 1 {
		t.Errorf("bork counter = %v, want 1", got)
	}

	AddSweepRegions("lab", OutcomeDeleted, 3)
	AddSweepRegions("lab", OutcomeDeleted, 0)
	if got := testutil.ToFloat64(sweepRegions.WithLabelValues("lab", OutcomeDeleted)); got != 3 {
		t.Errorf("sweep counter = %v, want 3", got)
	}

	ObserveCache("regions", true)
	ObserveCache("regions", false)
	ObserveCache("regions", false)
	if got := testutil.ToFloat64(cacheLookups.WithLabelValues("regions", "miss")); got != 2 {
		t.Errorf("cache miss counter = %v, want 2", got)
	}

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	MarkSweepRun("lab", at)
	if got := testutil.ToFloat64(sweepLastRun.WithLabelValues("lab")); got != float64(at.Unix()) {
		t.Errorf("last run = %v, want %v", got, at.Unix())
	}
}
