package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/usecase/chart"
	"github.com/platform9/pcdmanager/usecase/cluster"
	"github.com/platform9/pcdmanager/usecase/customer"
)

func newCmdEnv() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect configured environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			envs, err := svc.Environments.List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, envs)
		},
	})
	return cmd
}

// newCmdEnvScopedList builds a "<noun> list --env" command around a listing call.
func newCmdEnvScopedList(noun, short string, list func(cmd *cobra.Command, env string) (any, error)) *cobra.Command {
	var env string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := list(cmd, env)
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	listCmd.Flags().StringVar(&env, "env", "", "Environment id (required)")
	_ = listCmd.MarkFlagRequired("env")

	cmd := &cobra.Command{
		Use:   noun,
		Short: "Inspect " + noun + "s",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(listCmd)
	return cmd
}

func newCmdCustomer() *cobra.Command {
	return newCmdEnvScopedList("customer", "List customers", func(cmd *cobra.Command, env string) (any, error) {
		svc, _, err := buildCommandServices(cmd)
		if err != nil {
			return nil, err
		}
		out, err := svc.Customers.List(cmd.Context(), &customer.ListInput{Environment: env})
		if err != nil {
			return nil, err
		}
		return out.Customers, nil
	})
}

func newCmdCluster() *cobra.Command {
	return newCmdEnvScopedList("cluster", "List clusters", func(cmd *cobra.Command, env string) (any, error) {
		svc, _, err := buildCommandServices(cmd)
		if err != nil {
			return nil, err
		}
		out, err := svc.Clusters.List(cmd.Context(), &cluster.ListInput{Environment: env})
		if err != nil {
			return nil, err
		}
		return out.Clusters, nil
	})
}

func newCmdChart() *cobra.Command {
	return newCmdEnvScopedList("chart", "List deployable charts", func(cmd *cobra.Command, env string) (any, error) {
		svc, _, err := buildCommandServices(cmd)
		if err != nil {
			return nil, err
		}
		out, err := svc.Charts.List(cmd.Context(), &chart.ListInput{Environment: env})
		if err != nil {
			return nil, err
		}
		return out.Charts, nil
	})
}

// newCmdQuery runs an instant query against the configured metrics backend.
func newCmdQuery() *cobra.Command {
	return &cobra.Command{
		Use:   "query <promql>",
		Short: "Run a metrics query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			if svc.Metrics == nil {
				return fmt.Errorf("metrics backend is not configured (cortex.url)")
			}
			out, err := svc.Metrics.Query(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
}
