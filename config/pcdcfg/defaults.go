package pcdcfg

import "time"

const (
	DefaultSecretsDir  = "/var/run/secrets/platform9"
	DefaultListen      = ":8080"
	DefaultStoreURL    = "memory:"
	DefaultSystemUser  = "pcd-manager@platform9.com"
	DefaultReleasesURL = "https://tempus-prod.platform9.horse/api/v1/releases"
	DefaultSlackEnv    = "SLACK_BOT_TOKEN"
	DefaultSlackChan   = "C0935NGUC6B"
	DefaultBurnTimeout = 10 * time.Second
	DefaultListingTTL  = 60 * time.Second
	DefaultChartsTTL   = time.Hour
)

// DefaultEnvironments is the built-in environment table used when the
// configuration file lists none.
func DefaultEnvironments() []Environment {
	return []Environment{
		{ID: "us-dev", Label: "US Dev", BorkURL: "https://bork.app.dev-pcd.platform9.com", Domain: ".app.dev-pcd.platform9.com", Class: "dev", TempusURL: "https://tempus-dev.platform9.horse", SlackChannel: "C01E7254V9V"},
		{ID: "us-qa", Label: "US QA", BorkURL: "https://bork.app.qa-pcd.platform9.com", Domain: ".app.qa-pcd.platform9.com", Class: "qa", TempusURL: "https://tempus-dev.platform9.horse", SlackChannel: "C08G0RZG1A6"},
		{ID: "eu-stage", Label: "EU Stage", BorkURL: "https://bork.eu-central-1.app.staging-pcd.platform9.com", Domain: ".app.staging-pcd.platform9.com", Class: "stage", TempusURL: "https://tempus-prod.platform9.horse", SlackChannel: "C08GP881QSC"},
		{ID: "us-stage", Label: "US Stage", BorkURL: "https://bork.app.staging-pcd.platform9.com", Domain: ".app.staging-pcd.platform9.com", Class: "stage", TempusURL: "https://tempus-prod.platform9.horse", SlackChannel: "C08GP881QSC"},
		{ID: "eu-prod", Label: "EU Prod", BorkURL: "https://bork.eu-central-1.app.pcd.platform9.com", Domain: ".app.pcd.platform9.com", Class: "prod", TempusURL: "https://tempus-prod.platform9.horse", SlackChannel: "C037R987G"},
		{ID: "us-prod", Label: "US Prod", BorkURL: "https://bork.app.pcd.platform9.com", Domain: ".app.pcd.platform9.com", Class: "prod", TempusURL: "https://tempus-prod.platform9.horse", SlackChannel: "C037R987G"},
	}
}

// Default returns a fully defaulted configuration.
func Default() *Root {
	r := &Root{Version: "v1"}
	r.ApplyDefaults()
	return r
}

// ApplyDefaults fills every unset field with its default.
func (r *Root) ApplyDefaults() {
	if r.SecretsDir == "" {
		r.SecretsDir = DefaultSecretsDir
	}
	if len(r.Environments) == 0 {
		r.Environments = DefaultEnvironments()
	}
	for i := range r.Environments {
		if r.Environments[i].Teardown == "" {
			r.Environments[i].Teardown = "burn"
		}
	}
	if r.Server.Listen == "" {
		r.Server.Listen = DefaultListen
	}
	if r.Server.RequestTimeout == 0 {
		r.Server.RequestTimeout = 2 * time.Minute
	}
	if r.Server.SystemActor == "" {
		r.Server.SystemActor = "anonymous"
	}
	if r.Store.URL == "" {
		r.Store.URL = DefaultStoreURL
	}
	if r.Cache.ListingTTL == 0 {
		r.Cache.ListingTTL = DefaultListingTTL
	}
	if r.Cache.ChartsTTL == 0 {
		r.Cache.ChartsTTL = DefaultChartsTTL
	}
	if len(r.Sweep.Windows) == 0 {
		r.Sweep.Windows = []int{5, 1}
	}
	if r.Sweep.SystemUser == "" {
		r.Sweep.SystemUser = DefaultSystemUser
	}
	if r.Sweep.BurnTimeout == 0 {
		r.Sweep.BurnTimeout = DefaultBurnTimeout
	}
	if r.Slack.TokenEnv == "" {
		r.Slack.TokenEnv = DefaultSlackEnv
	}
	if r.Slack.Channel == "" {
		r.Slack.Channel = DefaultSlackChan
	}
	if r.Cortex.UsernameEnv == "" {
		r.Cortex.UsernameEnv = "CORTEX_USERNAME"
	}
	if r.Cortex.PasswordEnv == "" {
		r.Cortex.PasswordEnv = "CORTEX_PASSWORD"
	}
	if r.Tempus.ReleasesURL == "" {
		r.Tempus.ReleasesURL = DefaultReleasesURL
	}
}
