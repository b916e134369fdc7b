package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/utils/clock"

	"github.com/platform9/pcdmanager/adapters/bork"
	"github.com/platform9/pcdmanager/adapters/cortex"
	"github.com/platform9/pcdmanager/adapters/credential"
	"github.com/platform9/pcdmanager/adapters/httpapi"
	"github.com/platform9/pcdmanager/adapters/notify"
	"github.com/platform9/pcdmanager/adapters/store/inmem"
	"github.com/platform9/pcdmanager/adapters/store/rdb"
	"github.com/platform9/pcdmanager/adapters/tempus"
	"github.com/platform9/pcdmanager/config/pcdcfg"
	"github.com/platform9/pcdmanager/domain"
	"github.com/platform9/pcdmanager/domain/model"
	"github.com/platform9/pcdmanager/internal/observability"
	"github.com/platform9/pcdmanager/internal/ttlcache"
	"github.com/platform9/pcdmanager/usecase/access"
	"github.com/platform9/pcdmanager/usecase/chart"
	"github.com/platform9/pcdmanager/usecase/cluster"
	"github.com/platform9/pcdmanager/usecase/customer"
	"github.com/platform9/pcdmanager/usecase/metadata"
	"github.com/platform9/pcdmanager/usecase/operation"
	"github.com/platform9/pcdmanager/usecase/region"
	"github.com/platform9/pcdmanager/usecase/sweep"
)

const (
	borkTimeout   = 2 * time.Minute
	tempusTimeout = 30 * time.Second
)

// findFlag looks a flag up on cmd and its ancestors.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	if f := findFlag(cmd, name); f != nil {
		return f.Value.String()
	}
	return ""
}

// buildConfig loads the configuration named by --config and applies --store-url.
func buildConfig(cmd *cobra.Command) (*pcdcfg.Root, error) {
	cfg, err := pcdcfg.Load(flagString(cmd, "config"))
	if err != nil {
		return nil, err
	}
	if u := flagString(cmd, "store-url"); u != "" {
		cfg.Store.URL = u
	}
	return cfg, nil
}

// buildRepos opens the repositories selected by store.url. Environments always
// come from the configuration; only the journal is persisted.
func buildRepos(cfg *pcdcfg.Root) (*domain.Repositories, error) {
	mem := inmem.NewStore(cfg)
	repos := mem.Repositories()

	switch u := cfg.Store.URL; {
	case u == "" || strings.HasPrefix(u, "memory:"):
	case strings.HasPrefix(u, "sqlite:"), strings.HasPrefix(u, "sqlite3:"):
		db, err := rdb.OpenFromURL(u)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("migrate store: %w", err)
		}
		repos.Operation = rdb.NewOperationRepository(db)
	default:
		return nil, fmt.Errorf("unsupported store url: %s", u)
	}
	return &repos, nil
}

// buildServices wires every use case and adapter from cfg.
func buildServices(cfg *pcdcfg.Root) (*httpapi.Services, error) {
	repos, err := buildRepos(cfg)
	if err != nil {
		return nil, err
	}

	dialer := bork.NewDialer(borkTimeout)
	dialer.Observer = observability.ObserveBorkCall
	resolver := &access.Resolver{
		Environments: repos.Environment,
		Credentials:  credential.NewFileResolver(),
		Dialer:       dialer,
	}
	journal := &operation.UseCase{
		Repos: &operation.Repos{Operation: repos.Operation},
		Clock: clock.RealClock{},
	}
	listings := ttlcache.New[[]*model.RegionGroup]("listing", cfg.Cache.ListingTTL)

	regions := &region.UseCase{
		Access:      resolver,
		Journal:     journal,
		Listings:    listings,
		BurnTimeout: cfg.Sweep.BurnTimeout,
	}

	svc := &httpapi.Services{
		Environments: repos.Environment,
		Regions:      regions,
		Metadata:     &metadata.UseCase{Access: resolver, Journal: journal, Listings: listings},
		Customers:    &customer.UseCase{Access: resolver},
		Clusters:     &cluster.UseCase{Access: resolver},
		Charts: &chart.UseCase{
			Access:  resolver,
			Catalog: tempus.NewCatalog(cfg.Tempus.ReleasesURL, secretFromEnv(cfg.Tempus.TokenEnv), tempusTimeout),
			Cache:   ttlcache.New[[]model.Chart]("charts", cfg.Cache.ChartsTTL),
		},
		Sweep: &sweep.UseCase{
			Access:     resolver,
			Regions:    regions,
			Notifier:   buildNotifier(cfg),
			Clock:      clock.RealClock{},
			Windows:    cfg.Sweep.Windows,
			SystemUser: cfg.Sweep.SystemUser,
		},
		Operations:        journal,
		SweepEnvironments: sweepEnvironments(cfg),
	}

	if cfg.Cortex.URL != "" {
		c, err := cortex.New(cfg.Cortex.URL, secretFromEnv(cfg.Cortex.UsernameEnv), secretFromEnv(cfg.Cortex.PasswordEnv))
		if err != nil {
			return nil, fmt.Errorf("cortex client: %w", err)
		}
		svc.Metrics = c
	}
	return svc, nil
}

// buildCommandServices loads the configuration and wires services for a CLI command.
func buildCommandServices(cmd *cobra.Command) (*httpapi.Services, *pcdcfg.Root, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	svc, err := buildServices(cfg)
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

// buildNotifier picks Slack when its token is present, the log sink otherwise.
func buildNotifier(cfg *pcdcfg.Root) model.NotifierPort {
	if token := secretFromEnv(cfg.Slack.TokenEnv); token != "" {
		return notify.NewSlackWithToken(token, cfg.Slack.Channel)
	}
	return notify.Log{}
}

// sweepEnvironments returns the configured sweep list, or every environment.
func sweepEnvironments(cfg *pcdcfg.Root) []string {
	if len(cfg.Sweep.Environments) > 0 {
		return cfg.Sweep.Environments
	}
	ids := make([]string, 0, len(cfg.Environments))
	for _, e := range cfg.Environments {
		ids = append(ids, e.ID)
	}
	return ids
}

func secretFromEnv(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(os.Getenv(name))
}

// actorOf returns --user-email, falling back to the configured system actor.
func actorOf(cmd *cobra.Command, cfg *pcdcfg.Root) string {
	if v := strings.TrimSpace(flagString(cmd, "user-email")); v != "" {
		return v
	}
	return cfg.Server.SystemActor
}
