package metadata

import (
	"strconv"
	"strings"
	"time"

	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/naming"
)

// LeaseDateLayout is the only accepted lease date format.
const LeaseDateLayout = "2006-01-02"

// Mutator edits a metadata bag in place. Keys it does not target must be left alone.
type Mutator func(md model.Metadata) error

// AddTagMutator appends tag unless an equal tag (case-insensitive) is present.
func AddTagMutator(tag string) Mutator {
	return func(md model.Metadata) error {
		tag = strings.TrimSpace(tag)
		if err := naming.ValidateTag(tag); err != nil {
			return err
		}
		tags := NormalizeTags(TagsOf(md))
		if !containsFold(tags, tag) {
			tags = append(tags, tag)
		}
		md[model.MetaTags] = JoinTags(tags)
		return nil
	}
}

// RemoveTagMutator drops every tag equal to tag (case-insensitive). Missing tags are a no-op.
func RemoveTagMutator(tag string) Mutator {
	return func(md model.Metadata) error {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return model.Invalidf("tag must not be empty")
		}
		current := TagsOf(md)
		kept := make([]string, 0, len(current))
		for _, t := range current {
			if !strings.EqualFold(t, tag) {
				kept = append(kept, t)
			}
		}
		md[model.MetaTags] = JoinTags(kept)
		return nil
	}
}

// LeaseMutator sets lease_date and note and increments lease_counter by one.
func LeaseMutator(leaseDate, note string) Mutator {
	return func(md model.Metadata) error {
		if err := ValidateLeaseDate(leaseDate); err != nil {
			return err
		}
		md[model.MetaLeaseDate] = leaseDate
		md[model.MetaLeaseCounter] = strconv.Itoa(md.LeaseCounter() + 1)
		md[model.MetaNote] = note
		return nil
	}
}

// OwnerMutator transfers the region to owner.
func OwnerMutator(owner string) Mutator {
	return func(md model.Metadata) error {
		owner = strings.TrimSpace(owner)
		if owner == "" {
			return model.Invalidf("owner must not be empty")
		}
		md[model.MetaOwner] = owner
		return nil
	}
}

// ValidateLeaseDate checks the YYYY-MM-DD form.
func ValidateLeaseDate(s string) error {
	if _, err := time.Parse(LeaseDateLayout, s); err != nil {
		return model.Invalidf("lease date %q must be YYYY-MM-DD", s)
	}
	return nil
}

// InitialMetadata is the bag written right after a region is deployed.
func InitialMetadata(owner, leaseDate string, tags []string, duCert bool) model.Metadata {
	return model.Metadata{
		model.MetaOwner:        owner,
		model.MetaLeaseDate:    leaseDate,
		model.MetaTags:         JoinTags(NormalizeTags(tags)),
		model.MetaLeaseCounter: "0",
		model.MetaDUCert:       strconv.FormatBool(duCert),
	}
}
