package region

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/operation"
)

// DeleteInput tears a region down.
type DeleteInput struct {
	Environment string `json:"environment"`
	FQDN        string `json:"fqdn,omitempty"`
	Namespace   string `json:"namespace,omitempty"`
	ShortName   string `json:"shortName,omitempty"`
	RegionName  string `json:"regionName,omitempty"`
	Token       string `json:"token,omitempty"`
	Actor       string `json:"userEmail,omitempty"`
	// System marks deletions issued by the service itself (expiry sweep).
	System bool `json:"-"`
	// TornDown lists regions already torn down by the same caller whose BURN
	// may still be running. The Infra sibling guard ignores them.
	TornDown []string `json:"-"`
}

// DeleteOutput distinguishes region-only from region-and-customer deletion.
type DeleteOutput struct {
	FQDN            string `json:"fqdn"`
	Customer        string `json:"customer,omitempty"`
	CustomerDeleted bool   `json:"customerDeleted"`
	CustomerError   string `json:"customerError,omitempty"`
	BurnTimedOut    bool   `json:"burnTimedOut,omitempty"`
	Message         string `json:"message"`
}

// Delete tears a region down.
//
// The current region list is read first: the target must exist, and an Infra
// region is refused while its customer still has other regions. Teardown
// follows the environment policy: BURN with a bounded wait (expiry of the wait
// is logged and the workflow proceeds), or a best-effort BURN followed by
// DELETE of the region record. For an Infra region the customer record is
// then deleted; failure there is reported in the output, not returned.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (_ *DeleteOutput, err error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: in.Environment,
		Token:       in.Token,
		Credential:  access.CredentialRequired,
		System:      in.System,
	})
	if err != nil {
		return nil, err
	}
	fqdn, err := access.Target{FQDN: in.FQDN, Namespace: in.Namespace, ShortName: in.ShortName, RegionName: in.RegionName}.Resolve(env)
	if err != nil {
		return nil, err
	}

	ctx, end := logging.Span(ctx, "UC", "region.Delete", "env", env.ID, "fqdn", fqdn)
	entry := u.Journal.Begin(ctx, operation.BeginInput{Kind: model.OpDelete, Environment: env.ID, FQDN: fqdn, Actor: in.Actor})
	defer func() {
		entry.Finish(ctx, err)
		end(err)
	}()

	regions, err := cp.ListRegions(ctx)
	if err != nil {
		return nil, model.Stage(StageListing, err)
	}
	target := findRegion(regions, fqdn)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrRegionNotFound, fqdn)
	}
	customer := target.CustomerShortName
	if customer == "" {
		customer = strings.TrimSpace(in.ShortName)
	}
	isInfra := target.IsInfra()
	if isInfra {
		if siblings := siblingsOf(regions, customer, in.TornDown); len(siblings) > 0 {
			return nil, fmt.Errorf("%w: %s has %d other region(s): %s", model.ErrInfraHasSiblings, customer, len(siblings), strings.Join(siblings, ", "))
		}
	}

	out := &DeleteOutput{FQDN: fqdn}
	timedOut, err := u.teardown(ctx, env, cp, fqdn)
	if err != nil {
		return nil, err
	}
	out.BurnTimedOut = timedOut
	u.invalidate(env.ID)

	if !isInfra {
		out.Message = fmt.Sprintf("Deleted region %s successfully.", fqdn)
		return out, nil
	}
	out.Customer = customer
	if cerr := cp.DeleteCustomer(ctx, customer); cerr != nil {
		logging.FromContext(ctx).Warn(ctx, "customer deletion failed after region teardown", "customer", customer, "err", cerr)
		out.CustomerError = cerr.Error()
		out.Message = fmt.Sprintf("Deleted region %s successfully. Customer %s deletion failed.", fqdn, customer)
		return out, nil
	}
	out.CustomerDeleted = true
	out.Message = fmt.Sprintf("Deleted region %s and customer %s successfully.", fqdn, customer)
	return out, nil
}

// teardown runs the environment's teardown policy and reports whether the burn wait expired.
func (u *UseCase) teardown(ctx context.Context, env *model.Environment, cp model.ControlPlane, fqdn string) (bool, error) {
	timedOut, burnErr := u.burn(ctx, cp, fqdn)
	if env.Teardown == model.TeardownDelete {
		if burnErr != nil {
			logging.FromContext(ctx).Warn(ctx, "burn failed, deleting region record anyway", "err", burnErr)
		}
		if err := cp.DeleteRegion(ctx, fqdn); err != nil {
			return timedOut, model.Stage(StageRegionDeletion, err)
		}
		return timedOut, nil
	}
	if burnErr != nil {
		return timedOut, model.Stage(StageBurn, burnErr)
	}
	return timedOut, nil
}

// burn issues BURN and waits at most the configured bound. The request itself
// runs detached from ctx and is never cancelled by the wait. An expired wait
// is reported as timedOut with a nil error.
func (u *UseCase) burn(ctx context.Context, cp model.ControlPlane, fqdn string) (timedOut bool, err error) {
	done := make(chan error, 1)
	go func() { done <- cp.BurnRegion(context.WithoutCancel(ctx), fqdn) }()

	timer := time.NewTimer(u.burnTimeout())
	defer timer.Stop()
	select {
	case err = <-done:
		return false, err
	case <-timer.C:
		logging.FromContext(ctx).Warn(ctx, "burn still running, proceeding", "err", model.ErrBurnTimeout, "timeout", u.burnTimeout().String())
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func findRegion(regions []*model.Region, fqdn string) *model.Region {
	for _, r := range regions {
		if strings.EqualFold(r.FQDN, fqdn) {
			return r
		}
	}
	return nil
}

// siblingsOf returns the FQDNs of the non-Infra regions of customer, except those in tornDown.
func siblingsOf(regions []*model.Region, customer string, tornDown []string) []string {
	gone := make(map[string]bool, len(tornDown))
	for _, fqdn := range tornDown {
		gone[strings.ToLower(fqdn)] = true
	}
	var out []string
	for _, r := range regions {
		if strings.EqualFold(r.CustomerShortName, customer) && !r.IsInfra() && !gone[strings.ToLower(r.FQDN)] {
			out = append(out, r.FQDN)
		}
	}
	return out
}
