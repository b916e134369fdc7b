// Package pcdcfg defines the configuration schema (structs) for pcdmanager.yml.
// Loading, defaults and validation live next to it; conversion to domain models
// is done by ToModels.
package pcdcfg

import "time"

// Root is the root structure of pcdmanager.yml.
type Root struct {
	Version      string        `yaml:"version"`
	SecretsDir   string        `yaml:"secretsDir"`
	Environments []Environment `yaml:"environments"`
	Server       Server        `yaml:"server"`
	Store        Store         `yaml:"store"`
	Cache        Cache         `yaml:"cache"`
	Sweep        Sweep         `yaml:"sweep"`
	Slack        Slack         `yaml:"slack"`
	Cortex       Cortex        `yaml:"cortex"`
	Tempus       Tempus        `yaml:"tempus"`
}

// Environment is one control-plane environment.
type Environment struct {
	ID           string `yaml:"id"`
	Label        string `yaml:"label"`
	BorkURL      string `yaml:"borkURL"`
	Domain       string `yaml:"domain"`
	Class        string `yaml:"class"`                  // dev|qa|stage|prod
	TempusURL    string `yaml:"tempusURL,omitempty"`    // UI link target
	SlackChannel string `yaml:"slackChannel,omitempty"` // per-environment channel override
	Teardown     string `yaml:"teardown,omitempty"`     // burn (default) | delete
	TokenFile    string `yaml:"tokenFile,omitempty"`    // overrides <secretsDir>/<id>-bork-token
}

// Server configures the HTTP API.
type Server struct {
	Listen         string        `yaml:"listen"`
	AllowedOrigins []string      `yaml:"allowedOrigins,omitempty"`
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"`
	SystemActor    string        `yaml:"systemActor,omitempty"` // actor recorded when no identity header is present
}

// Store selects the operation journal backend: "memory:" or "sqlite:<path>".
type Store struct {
	URL string `yaml:"url"`
}

// Cache configures the TTL caches.
type Cache struct {
	ListingTTL time.Duration `yaml:"listingTTL,omitempty"`
	ChartsTTL  time.Duration `yaml:"chartsTTL,omitempty"`
}

// Sweep configures the expiry sweep.
type Sweep struct {
	Schedule     string        `yaml:"schedule,omitempty"` // cron expression, empty disables scheduling
	Environments []string      `yaml:"environments,omitempty"`
	Windows      []int         `yaml:"windows,omitempty"` // days before expiry that trigger a warning
	SystemUser   string        `yaml:"systemUser,omitempty"`
	BurnTimeout  time.Duration `yaml:"burnTimeout,omitempty"`
}

// Slack configures the notification sink.
type Slack struct {
	TokenEnv string `yaml:"tokenEnv,omitempty"`
	Channel  string `yaml:"channel,omitempty"`
}

// Cortex configures the metrics query proxy.
type Cortex struct {
	URL         string `yaml:"url,omitempty"`
	UsernameEnv string `yaml:"usernameEnv,omitempty"`
	PasswordEnv string `yaml:"passwordEnv,omitempty"`
}

// Tempus configures the chart catalog.
type Tempus struct {
	ReleasesURL string `yaml:"releasesURL,omitempty"`
	TokenEnv    string `yaml:"tokenEnv,omitempty"`
}
