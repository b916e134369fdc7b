// Package naming derives region domain names and validates the identifiers
// that end up in them.
package naming

import (
	"fmt"
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
)

// IsInfra reports whether regionName denotes the customer's Infra region.
// An empty name is treated as Infra.
func IsInfra(regionName string) bool {
	name := strings.TrimSpace(regionName)
	return name == "" || strings.EqualFold(name, model.InfraRegionName)
}

// RegionPrefix returns the host label of a region: the short name alone for
// Infra, "<shortName>-<regionName>" otherwise.
func RegionPrefix(shortName, regionName string) string {
	if IsInfra(regionName) {
		return shortName
	}
	return shortName + "-" + strings.TrimSpace(regionName)
}

// RegionDomain returns the fully-qualified region domain for an environment
// suffix such as ".app.dev-pcd.platform9.com".
func RegionDomain(shortName, regionName, suffix string) (string, error) {
	shortName = strings.TrimSpace(shortName)
	if shortName == "" {
		return "", fmt.Errorf("%w: short name must not be empty", model.ErrValidation)
	}
	if suffix != "" && !strings.HasPrefix(suffix, ".") {
		suffix = "." + suffix
	}
	return RegionPrefix(shortName, regionName) + suffix, nil
}

// PrefixFromFQDN strips the environment suffix from fqdn. ok is false when the
// suffix does not match.
func PrefixFromFQDN(fqdn, suffix string) (prefix string, ok bool) {
	if suffix == "" || !strings.HasSuffix(fqdn, suffix) {
		return "", false
	}
	prefix = strings.TrimSuffix(fqdn, suffix)
	return prefix, prefix != ""
}
