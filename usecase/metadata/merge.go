package metadata

import (
	"context"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/access"
)

// Merge performs one read-modify-write cycle on the metadata of fqdn.
//
// The remote API replaces the whole bag and offers no conditional write, so two
// concurrent merges on the same region are last-write-wins. The returned bag is
// the one written, not a re-read.
func (u *UseCase) Merge(ctx context.Context, cp model.ControlPlane, fqdn string, mutate Mutator) (_ model.Metadata, err error) {
	ctx, end := logging.Span(ctx, "UC", "metadata.Merge", "fqdn", fqdn)
	defer func() { end(err) }()

	current, err := cp.GetMetadata(ctx, fqdn)
	if err != nil {
		return nil, model.Stage("metadata fetch", err)
	}
	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	if err := cp.SetMetadata(ctx, fqdn, next); err != nil {
		return nil, model.Stage("metadata update", err)
	}
	return next, nil
}

// apply resolves ref, journals kind and merges with mutate.
func (u *UseCase) apply(ctx context.Context, kind model.OperationKind, ref RegionRef, mutate Mutator) (fqdn string, md model.Metadata, err error) {
	env, cp, err := u.Access.Connect(ctx, access.Request{
		Environment: ref.Environment,
		Token:       ref.Token,
		Credential:  access.CredentialSupplied,
	})
	if err != nil {
		return "", nil, err
	}
	fqdn, err = ref.target().Resolve(env)
	if err != nil {
		return "", nil, err
	}

	entry := u.Journal.Begin(ctx, operationInput(kind, env.ID, fqdn, ref.Actor))
	defer func() { entry.Finish(ctx, err) }()

	md, err = u.Merge(ctx, cp, fqdn, mutate)
	if err != nil {
		return fqdn, nil, err
	}
	if u.Listings != nil {
		u.Listings.Delete(env.ID)
	}
	return fqdn, md, nil
}
