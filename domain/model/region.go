package model

import (
	"strconv"
	"strings"
)

// InfraRegionName is the region name of the per-customer anchor region.
const InfraRegionName = "Infra"

// Metadata keys understood by this system. Other keys are carried through untouched.
const (
	MetaOwner        = "owner"
	MetaLeaseDate    = "lease_date"
	MetaLeaseCounter = "lease_counter"
	MetaTags         = "tags"
	MetaNote         = "note"
	MetaDUCert       = "use_du_specific_le_http_cert"
)

// Region is a PCD region as reported by the control plane.
type Region struct {
	FQDN              string   `json:"fqdn"`
	Namespace         string   `json:"namespace"`
	CustomerShortName string   `json:"customer_shortname"`
	RegionName        string   `json:"region_name"`
	ChartURL          string   `json:"chart_url"`
	Cluster           string   `json:"cluster"`
	DBBackend         string   `json:"dbbackend,omitempty"`
	TaskState         string   `json:"task_state"`
	DeployedAt        string   `json:"deployed_at"`
	Metadata          Metadata `json:"metadata,omitempty"`
}

// IsInfra reports whether the region is its customer's Infra anchor.
func (r *Region) IsInfra() bool {
	return strings.EqualFold(r.RegionName, InfraRegionName)
}

// Metadata is the free-form metadata bag of a region. The control plane replaces
// the whole bag on write, so unknown keys must survive a read-modify-write cycle.
type Metadata map[string]any

// String returns the value at key rendered as a string, or "" when absent.
func (m Metadata) String(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// Clone returns a shallow copy of m. A nil receiver yields an empty bag.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Owner returns the owner email.
func (m Metadata) Owner() string { return m.String(MetaOwner) }

// LeaseDate returns the lease date (YYYY-MM-DD) or "".
func (m Metadata) LeaseDate() string { return m.String(MetaLeaseDate) }

// LeaseCounter parses lease_counter. Missing, malformed or negative values count as zero.
func (m Metadata) LeaseCounter() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.String(MetaLeaseCounter)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Customer is a control-plane customer, the owner of an Infra region and its siblings.
type Customer struct {
	ShortName  string `json:"shortname"`
	AdminEmail string `json:"admin_email"`
}

// Cluster is a dataplane cluster regions can be scheduled on.
type Cluster struct {
	FQDN      string `json:"fqdn"`
	Accepting bool   `json:"accepting"`
}

// Chart is a deployable chart release.
type Chart struct {
	Version  string `json:"version"`
	Location string `json:"location"`
}

// RegionGroup is the per-customer grouping used by the region listing.
type RegionGroup struct {
	Customer string    `json:"customer"`
	Regions  []*Region `json:"regions"`
}
