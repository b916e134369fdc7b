package sweep

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/observability"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/region"
)

// RunInput selects the environment to sweep.
type RunInput struct {
	Environment string `json:"env"`
}

// Failure is one region the sweep could not delete.
type Failure struct {
	FQDN   string `json:"fqdn"`
	Reason string `json:"reason"`
}

// RunOutput summarizes one sweep.
type RunOutput struct {
	Environment string    `json:"environment"`
	Deleted     []string  `json:"deleted"`
	Failed      []Failure `json:"failed"`
	// Notified lists the owners warned per window (days before expiry).
	Notified     map[int][]string `json:"notified"`
	Skipped      int              `json:"skipped"`
	NotifyErrors []string         `json:"notifyErrors,omitempty"`
}

// Run lists the regions of one environment, deletes the expired ones one at a
// time and sends one batched warning per non-empty window. Only input
// validation and the listing itself fail the run; per-region deletion and
// notification failures are collected in the output.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (_ *RunOutput, err error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: in.Environment,
		Credential:  access.CredentialRequired,
		System:      true,
	})
	if err != nil {
		return nil, err
	}

	ctx, end := logging.Span(ctx, "UC", "sweep.Run", "env", env.ID)
	defer func() { end(err) }()
	logger := logging.FromContext(ctx)

	regions, err := cp.ListRegions(ctx)
	if err != nil {
		return nil, model.Stage("region listing", err)
	}
	now := u.clock().Now()
	cls := Classify(regions, now, u.windows())

	out := &RunOutput{
		Environment: env.ID,
		Deleted:     []string{},
		Failed:      []Failure{},
		Notified:    map[int][]string{},
		Skipped:     cls.Skipped,
	}

	// Infra regions go last. Siblings torn down earlier in this run are passed
	// along so a BURN still in flight does not block their Infra region.
	expired := append([]*model.Region(nil), cls.Expired...)
	sort.SliceStable(expired, func(i, j int) bool { return !expired[i].IsInfra() && expired[j].IsInfra() })
	for _, r := range expired {
		if ctx.Err() != nil {
			out.Failed = append(out.Failed, Failure{FQDN: r.FQDN, Reason: ctx.Err().Error()})
			continue
		}
		_, derr := u.Regions.Delete(ctx, &region.DeleteInput{
			Environment: env.ID,
			FQDN:        r.FQDN,
			ShortName:   r.CustomerShortName,
			Actor:       u.SystemUser,
			System:      true,
			TornDown:    append([]string(nil), out.Deleted...),
		})
		if derr != nil {
			logger.Warn(ctx, "expired region deletion failed", "fqdn", r.FQDN, "err", derr)
			out.Failed = append(out.Failed, Failure{FQDN: r.FQDN, Reason: derr.Error()})
			continue
		}
		out.Deleted = append(out.Deleted, r.FQDN)
	}

	windows := append([]int(nil), u.windows()...)
	sort.Sort(sort.Reverse(sort.IntSlice(windows)))
	for _, days := range windows {
		bucket := cls.Expiring[days]
		if len(bucket) == 0 {
			continue
		}
		batch := make([]model.ExpiringRegion, 0, len(bucket))
		for _, r := range bucket {
			batch = append(batch, model.ExpiringRegion{FQDN: r.FQDN, Owner: r.Metadata.Owner(), LeaseDate: r.Metadata.LeaseDate()})
		}
		if u.Notifier == nil {
			continue
		}
		if nerr := u.Notifier.NotifyExpiring(ctx, env, days, batch); nerr != nil {
			logger.Warn(ctx, "expiry notification failed", "days", days, "err", nerr)
			out.NotifyErrors = append(out.NotifyErrors, fmt.Sprintf("%d day(s): %v", days, nerr))
			continue
		}
		out.Notified[days] = owners(batch)
		observability.AddSweepRegions(env.ID, observability.OutcomeNotified, len(batch))
	}

	observability.AddSweepRegions(env.ID, observability.OutcomeDeleted, len(out.Deleted))
	observability.AddSweepRegions(env.ID, observability.OutcomeFailed, len(out.Failed))
	observability.AddSweepRegions(env.ID, observability.OutcomeSkipped, out.Skipped)
	observability.MarkSweepRun(env.ID, now)
	logger.Info(ctx, "sweep finished", "deleted", len(out.Deleted), "failed", len(out.Failed), "skipped", out.Skipped)
	return out, nil
}

// RunAllInput selects the environments to sweep, in order.
type RunAllInput struct {
	Environments []string `json:"environments"`
}

// RunAllOutput holds the summaries of the environments that could be swept.
type RunAllOutput struct {
	Runs []*RunOutput `json:"runs"`
}

// RunAll sweeps each environment sequentially. Environment-level failures and
// per-region deletion failures are folded into the returned multierror; the
// summaries of every environment that could be listed are always returned.
func (u *UseCase) RunAll(ctx context.Context, in *RunAllInput) (*RunAllOutput, error) {
	if in == nil || len(in.Environments) == 0 {
		return nil, model.Invalidf("at least one environment is required")
	}
	out := &RunAllOutput{}
	var result *multierror.Error
	for _, env := range in.Environments {
		run, err := u.Run(ctx, &RunInput{Environment: env})
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", env, err))
			continue
		}
		out.Runs = append(out.Runs, run)
		for _, f := range run.Failed {
			result = multierror.Append(result, fmt.Errorf("%s: delete %s: %s", env, f.FQDN, f.Reason))
		}
	}
	return out, result.ErrorOrNil()
}

// owners returns the distinct owners of batch in first-seen order.
func owners(batch []model.ExpiringRegion) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range batch {
		if !seen[r.Owner] {
			seen[r.Owner] = true
			out = append(out, r.Owner)
		}
	}
	return out
}
