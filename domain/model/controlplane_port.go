package model

import "context"

// DefaultAIM is the identity manager every customer and deployment is created with.
const DefaultAIM = "opencloud"

// DeploySpec is the payload of the DEPLOY verb.
type DeploySpec struct {
	AdminPassword       string
	AIM                 string
	DBBackend           string
	RegionName          string
	MultiRegion         bool
	SkipComponents      string
	ChartURL            string
	UseDUSpecificLECert bool
}

// UpgradeSpec is the payload of the UPGRADE verb. Password and backend are never redeployed.
type UpgradeSpec struct {
	ChartURL            string
	UseDUSpecificLECert bool
}

// ControlPlane is the domain port for one environment of the remote control plane.
// Every method maps to exactly one remote call; none of them retry.
type ControlPlane interface {
	ListCustomers(ctx context.Context) ([]*Customer, error)
	CreateCustomer(ctx context.Context, c Customer) error
	DeleteCustomer(ctx context.Context, shortName string) error

	ListRegions(ctx context.Context) ([]*Region, error)
	CreateRegion(ctx context.Context, fqdn, customer string) error
	DeployRegion(ctx context.Context, fqdn string, spec DeploySpec) error
	UpgradeRegion(ctx context.Context, fqdn string, spec UpgradeSpec) error
	BurnRegion(ctx context.Context, fqdn string) error
	DeleteRegion(ctx context.Context, fqdn string) error
	SetRegionState(ctx context.Context, fqdn, state string) error

	GetMetadata(ctx context.Context, fqdn string) (Metadata, error)
	SetMetadata(ctx context.Context, fqdn string, md Metadata) error

	ListClusters(ctx context.Context) ([]*Cluster, error)
}

// ControlPlaneDialer binds a ControlPlane to an environment and bearer token.
// An empty token sends unauthenticated requests.
type ControlPlaneDialer interface {
	Dial(env *Environment, token string) ControlPlane
}

// CredentialPort resolves the bearer token for an environment.
type CredentialPort interface {
	// Token returns supplied unchanged when non-empty, otherwise the stored secret.
	Token(ctx context.Context, env *Environment, supplied string) (string, error)
}

// ExpiringRegion is one line of an expiry notification.
type ExpiringRegion struct {
	FQDN      string `json:"fqdn"`
	Owner     string `json:"owner"`
	LeaseDate string `json:"lease_date"`
}

// NotifierPort delivers batched expiry warnings.
type NotifierPort interface {
	NotifyExpiring(ctx context.Context, env *Environment, days int, regions []ExpiringRegion) error
}

// ChartCatalogPort lists deployable charts.
type ChartCatalogPort interface {
	Charts(ctx context.Context, env *Environment) ([]Chart, error)
}

// QueryResult is the data section of an instant metrics query.
type QueryResult struct {
	ResultType string   `json:"resultType"`
	Result     any      `json:"result"`
	Warnings   []string `json:"warnings,omitempty"`
}

// MetricsQueryPort runs instant queries against the metrics backend.
type MetricsQueryPort interface {
	Query(ctx context.Context, query string) (*QueryResult, error)
}
