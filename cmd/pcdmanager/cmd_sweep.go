package main

import (
	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/sweep"
)

// newCmdSweep runs the lease expiry sweep once.
func newCmdSweep() *cobra.Command {
	var envs []string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired regions and warn owners of upcoming expiries",
		Long: "Sweep the given environments (default: sweep.environments, or every environment).\n" +
			"Regions whose lease date has passed are deleted, Infra last; owners of regions\n" +
			"expiring within a warning window are notified.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			if len(envs) == 0 {
				envs = svc.SweepEnvironments
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "sweep", "environments", envs)
			defer func() { end(err) }()

			if len(envs) == 1 {
				out, err := svc.Sweep.Run(ctx, &sweep.RunInput{Environment: envs[0]})
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			}
			out, runErr := svc.Sweep.RunAll(ctx, &sweep.RunAllInput{Environments: envs})
			if out != nil {
				if err := printJSON(cmd, out); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringSliceVar(&envs, "env", nil, "Environment to sweep (repeatable)")
	return cmd
}
