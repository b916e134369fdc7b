package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/usecase/operation"
)

func newCmdOperation() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operation",
		Aliases: []string{"op"},
		Short:   "Inspect the operation journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdOperationList(), newCmdOperationGet())
	return cmd
}

func newCmdOperationList() *cobra.Command {
	var in operation.ListInput
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded operations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			out, err := svc.Operations.List(cmd.Context(), &in)
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Operations)
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.Environment, "env", "", "Filter by environment")
	f.StringVar(&in.FQDN, "fqdn", "", "Filter by region FQDN")
	f.StringVar(&in.Actor, "actor", "", "Filter by actor")
	f.IntVar(&in.Limit, "limit", 50, "Maximum number of operations")
	return cmd
}

func newCmdOperationGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			op, err := svc.Operations.Get(cmd.Context(), &operation.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd, op)
		},
	}
}
