package naming

import (
	"fmt"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	shortNameMaxLength = 32
	tagMaxLength       = 64
)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return model.Invalidf("%s must not be empty", labelKind)
	}
	if len(name) > maximum {
		return model.Invalidf("%s exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return model.Invalidf("invalid %s %q: %s", labelKind, name, strings.Join(errs, ", "))
	}
	return nil
}

// ValidateShortName checks a new customer short name.
func ValidateShortName(name string) error {
	return validateDNS1123Label(name, shortNameMaxLength, "short name")
}

// ValidateRegionName checks a new non-Infra region name. Region names are
// compared case-insensitively by DNS, so the lower-cased form must be a label,
// and the combined host label must still fit.
func ValidateRegionName(shortName, regionName string) error {
	if IsInfra(regionName) {
		return model.Invalidf("region name %q is reserved", model.InfraRegionName)
	}
	if err := validateDNS1123Label(strings.ToLower(regionName), utilvalidation.DNS1123LabelMaxLength, "region name"); err != nil {
		return err
	}
	if prefix := RegionPrefix(shortName, regionName); len(prefix) > utilvalidation.DNS1123LabelMaxLength {
		return model.Invalidf("region host label %q exceeds %d characters", prefix, utilvalidation.DNS1123LabelMaxLength)
	}
	return nil
}

// ValidateTag checks a tag before it is merged into the comma-joined tag list.
func ValidateTag(tag string) error {
	tag = strings.TrimSpace(tag)
	switch {
	case tag == "":
		return model.Invalidf("tag must not be empty")
	case strings.Contains(tag, ","):
		return model.Invalidf("tag %q must not contain a comma", tag)
	case len(tag) > tagMaxLength:
		return model.Invalidf("tag exceeds %d characters", tagMaxLength)
	}
	return nil
}

// ValidateFQDN checks a region domain supplied directly by a caller.
func ValidateFQDN(fqdn string) error {
	if errs := utilvalidation.IsDNS1123Subdomain(strings.ToLower(fqdn)); len(errs) > 0 {
		return fmt.Errorf("%w: invalid region domain %q: %s", model.ErrValidation, fqdn, strings.Join(errs, ", "))
	}
	return nil
}
