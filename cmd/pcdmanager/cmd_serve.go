package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/adapters/httpapi"
	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/internal/schedule"
)

// newCmdServe runs the HTTP API and, when configured, the sweep scheduler.
func newCmdServe() *cobra.Command {
	var listen string
	var noSchedule bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Server.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, end := logging.Span(ctx, "CMD", "serve", "listen", cfg.Server.Listen, "store", cfg.Store.URL)
			defer func() { end(err) }()

			if cfg.Sweep.Schedule != "" && !noSchedule {
				sched, err := schedule.New(ctx, cfg.Sweep.Schedule, svc.SweepEnvironments, svc.Sweep)
				if err != nil {
					return err
				}
				sched.Start(ctx)
				defer sched.Stop()
			}

			handler := httpapi.NewRouter(svc, httpapi.Options{
				AllowedOrigins: cfg.Server.AllowedOrigins,
				RequestTimeout: cfg.Server.RequestTimeout,
				DefaultActor:   cfg.Server.SystemActor,
			})
			return httpapi.Serve(ctx, cfg.Server.Listen, handler)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address, overrides server.listen")
	cmd.Flags().BoolVar(&noSchedule, "no-schedule", false, "Do not start the sweep scheduler")
	return cmd
}
