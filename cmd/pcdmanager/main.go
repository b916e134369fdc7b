package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/internal/logging"
)

// envOr returns the environment variable key when set, otherwise def.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	var logFile *logging.LogFile

	cmd := &cobra.Command{
		Use:     "pcdmanager",
		Short:   "PCD region lifecycle manager",
		Long:    "Provision, upgrade, tag, lease and tear down PCD regions across control-plane environments.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.String("config", os.Getenv("PCD_CONFIG"), "Path to pcdmanager.yml, built-in defaults when empty (env PCD_CONFIG)")
	pf.String("store-url", os.Getenv("PCD_STORE_URL"), "Operation journal store (memory: | sqlite:/path/to.db), overrides store.url (env PCD_STORE_URL)")
	pf.String("user-email", os.Getenv("PCD_USER_EMAIL"), "Actor recorded on mutations, server.systemActor when empty (env PCD_USER_EMAIL)")
	pf.String("log-format", "human", "Log format (human|text|json) (env PCD_LOG_FORMAT)")
	pf.String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR) (env PCD_LOG_LEVEL)")
	pf.String("log-output", "-", "Log output: path, - for stderr, none to disable, empty for a generated file in --log-dir")
	pf.String("log-dir", ".", "Directory for generated and relative log files")
	pf.Int("log-retention-days", 7, "Days to keep generated log files, 0 keeps everything")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		level, _ := c.Flags().GetString("log-level")
		output, _ := c.Flags().GetString("log-output")
		dir, _ := c.Flags().GetString("log-dir")
		retention, _ := c.Flags().GetInt("log-retention-days")

		l, lf, err := logging.Open(&logging.LogConfig{
			Format:        envOr("PCD_LOG_FORMAT", format),
			Level:         envOr("PCD_LOG_LEVEL", level),
			Output:        output,
			Dir:           dir,
			RetentionDays: retention,
		})
		if err != nil {
			return err
		}
		logFile = lf
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}
	cmd.PersistentPostRunE = func(c *cobra.Command, _ []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	}

	cmd.AddCommand(
		newCmdVersion(),
		newCmdServe(),
		newCmdSweep(),
		newCmdRegion(),
		newCmdTag(),
		newCmdLease(),
		newCmdOwner(),
		newCmdEnv(),
		newCmdCustomer(),
		newCmdCluster(),
		newCmdChart(),
		newCmdQuery(),
		newCmdOperation(),
	)
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
