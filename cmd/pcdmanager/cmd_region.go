package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/naming"
	"github.com/platform9/pcdmanager/usecase/metadata"
	"github.com/platform9/pcdmanager/usecase/region"
)

func newCmdRegion() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "region",
		Short:              "Manage PCD regions",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(
		newCmdRegionCreate(),
		newCmdRegionUpgrade(),
		newCmdRegionDelete(),
		newCmdRegionReset(),
		newCmdRegionList(),
	)
	return cmd
}

// newCmdRegionCreate creates a customer with its Infra region, or adds a
// region to an existing customer when --region-name names one.
func newCmdRegionCreate() *cobra.Command {
	var in region.DeployInput
	var regionName, tags string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and deploy a region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			in.Owner = actorOf(cmd, cfg)
			in.Tags = metadata.SplitTags(tags)

			ctx, end := logging.Span(cmd.Context(), "CMD", "region.create", "env", in.Environment, "shortName", in.ShortName, "regionName", regionName)
			defer func() { end(err) }()

			var out *region.CreateOutput
			if naming.IsInfra(regionName) {
				out, err = svc.Regions.Create(ctx, &region.CreateInput{DeployInput: in})
			} else {
				out, err = svc.Regions.AddRegion(ctx, &region.AddRegionInput{DeployInput: in, RegionName: regionName})
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Environment, "env", "", "Environment id (required)")
	f.StringVar(&in.ShortName, "short-name", "", "Customer short name (required)")
	f.StringVar(&regionName, "region-name", "", "Region name, Infra when empty")
	f.StringVar(&in.AdminEmail, "admin-email", "", "Administrator email")
	f.StringVar(&in.AdminPassword, "admin-password", "", "Administrator password (required)")
	f.StringVar(&in.DBBackend, "db-backend", "", "Database backend (required)")
	f.StringVar(&in.ChartURL, "chart-url", "", "Chart URL (required)")
	f.BoolVar(&in.UseDUSpecificLECert, "du-le-cert", false, "Request a region-specific Let's Encrypt certificate")
	f.StringVar(&in.LeaseDate, "lease-date", "", "Lease date YYYY-MM-DD")
	f.StringVar(&tags, "tags", "", "Comma separated tags")
	f.StringVar(&in.Token, "token", "", "Control-plane token, the environment secret file when empty")
	for _, name := range []string{"env", "short-name", "admin-password", "db-backend", "chart-url"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newCmdRegionUpgrade() *cobra.Command {
	var t targetFlags
	var chartURL string
	var leCert bool
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade a region to another chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "region.upgrade", "env", t.env)
			defer func() { end(err) }()

			out, err := svc.Regions.Upgrade(ctx, &region.UpgradeInput{
				Environment:         t.env,
				FQDN:                t.fqdn,
				Namespace:           t.namespace,
				ShortName:           t.shortName,
				RegionName:          t.regionName,
				ChartURL:            chartURL,
				UseDUSpecificLECert: leCert,
				Token:               t.token,
				Actor:               actorOf(cmd, cfg),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	t.register(cmd)
	cmd.Flags().StringVar(&chartURL, "chart-url", "", "Chart URL (required)")
	cmd.Flags().BoolVar(&leCert, "du-le-cert", false, "Request a region-specific Let's Encrypt certificate")
	_ = cmd.MarkFlagRequired("chart-url")
	return cmd
}

func newCmdRegionDelete() *cobra.Command {
	var t targetFlags
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Tear down a region, and its customer when it is the last one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "region.delete", "env", t.env)
			defer func() { end(err) }()

			out, err := svc.Regions.Delete(ctx, &region.DeleteInput{
				Environment: t.env,
				FQDN:        t.fqdn,
				Namespace:   t.namespace,
				ShortName:   t.shortName,
				RegionName:  t.regionName,
				Token:       t.token,
				Actor:       actorOf(cmd, cfg),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	t.register(cmd)
	return cmd
}

func newCmdRegionReset() *cobra.Command {
	var t targetFlags
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a region task state to ready",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "region.reset", "env", t.env)
			defer func() { end(err) }()

			out, err := svc.Regions.ResetState(ctx, &region.ResetStateInput{
				Environment: t.env,
				FQDN:        t.fqdn,
				Namespace:   t.namespace,
				Token:       t.token,
				Actor:       actorOf(cmd, cfg),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&t.env, "env", "", "Environment id (required)")
	f.StringVar(&t.fqdn, "fqdn", "", "Region FQDN")
	f.StringVar(&t.namespace, "namespace", "", "Region namespace, the FQDN without the environment domain")
	f.StringVar(&t.token, "token", "", "Control-plane token, the environment secret file when empty")
	_ = cmd.MarkFlagRequired("env")
	return cmd
}

func newCmdRegionList() *cobra.Command {
	var in region.ListInput
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List regions grouped by customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			out, err := svc.Regions.List(cmd.Context(), &in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Groups)
		},
	}
	cmd.Flags().StringVar(&in.Environment, "env", "", "Environment id (required)")
	cmd.Flags().BoolVar(&in.Refresh, "refresh", false, "Bypass the listing cache")
	_ = cmd.MarkFlagRequired("env")
	return cmd
}
