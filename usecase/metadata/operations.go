package metadata

import (
	"context"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/naming"
	"github.com/platform9/pcdmanager/usecase/operation"
)

func operationInput(kind model.OperationKind, env, fqdn, actor string) operation.BeginInput {
	return operation.BeginInput{Kind: kind, Environment: env, FQDN: fqdn, Actor: actor}
}

// TagInput adds or removes one tag.
type TagInput struct {
	RegionRef
	Tag string `json:"tag"`
}

// TagOutput is the tag list as written.
type TagOutput struct {
	FQDN string   `json:"fqdn"`
	Tags []string `json:"tags"`
}

// AddTag appends a tag to the region. Adding a present tag leaves the set unchanged.
func (u *UseCase) AddTag(ctx context.Context, in *TagInput) (*TagOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	if err := naming.ValidateTag(strings.TrimSpace(in.Tag)); err != nil {
		return nil, err
	}
	fqdn, md, err := u.apply(ctx, model.OpAddTag, in.RegionRef, AddTagMutator(in.Tag))
	if err != nil {
		return nil, err
	}
	return &TagOutput{FQDN: fqdn, Tags: nonNil(TagsOf(md))}, nil
}

// RemoveTag drops a tag from the region. Removing a missing tag is a no-op.
func (u *UseCase) RemoveTag(ctx context.Context, in *TagInput) (*TagOutput, error) {
	if in == nil || strings.TrimSpace(in.Tag) == "" {
		return nil, model.Invalidf("tag is required")
	}
	fqdn, md, err := u.apply(ctx, model.OpRemoveTag, in.RegionRef, RemoveTagMutator(in.Tag))
	if err != nil {
		return nil, err
	}
	return &TagOutput{FQDN: fqdn, Tags: nonNil(TagsOf(md))}, nil
}

// LeaseInput renews a lease.
type LeaseInput struct {
	RegionRef
	LeaseDate string `json:"leaseDate"`
	Note      string `json:"note,omitempty"`
}

// LeaseOutput is the lease as written.
type LeaseOutput struct {
	FQDN         string `json:"fqdn"`
	LeaseDate    string `json:"lease_date"`
	LeaseCounter string `json:"lease_counter"`
	Note         string `json:"note"`
}

// UpdateLease sets the lease date and note and bumps the lease counter.
func (u *UseCase) UpdateLease(ctx context.Context, in *LeaseInput) (*LeaseOutput, error) {
	if in == nil {
		return nil, model.Invalidf("input is required")
	}
	if err := ValidateLeaseDate(in.LeaseDate); err != nil {
		return nil, err
	}
	fqdn, md, err := u.apply(ctx, model.OpUpdateLease, in.RegionRef, LeaseMutator(in.LeaseDate, in.Note))
	if err != nil {
		return nil, err
	}
	return &LeaseOutput{
		FQDN:         fqdn,
		LeaseDate:    md.LeaseDate(),
		LeaseCounter: md.String(model.MetaLeaseCounter),
		Note:         md.String(model.MetaNote),
	}, nil
}

// OwnerInput transfers a region.
type OwnerInput struct {
	RegionRef
	Owner string `json:"owner"`
}

// OwnerOutput is the owner as written.
type OwnerOutput struct {
	FQDN  string `json:"fqdn"`
	Owner string `json:"owner"`
}

// SetOwner replaces the owner of a region.
func (u *UseCase) SetOwner(ctx context.Context, in *OwnerInput) (*OwnerOutput, error) {
	if in == nil || strings.TrimSpace(in.Owner) == "" {
		return nil, model.Invalidf("owner is required")
	}
	fqdn, md, err := u.apply(ctx, model.OpSetOwner, in.RegionRef, OwnerMutator(in.Owner))
	if err != nil {
		return nil, err
	}
	return &OwnerOutput{FQDN: fqdn, Owner: md.Owner()}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
