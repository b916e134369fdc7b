package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform9/pcdmanager/internal/logging"
	"github.com/platform9/pcdmanager/usecase/metadata"
)

func newCmdTag() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "tag",
		Short:              "Add or remove region tags",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("invalid command")
		},
	}
	cmd.AddCommand(newCmdTagEdit("add"), newCmdTagEdit("remove"))
	return cmd
}

// newCmdTagEdit builds the add and remove subcommands, which differ only in the use case method.
func newCmdTagEdit(verb string) *cobra.Command {
	var t targetFlags
	var tag string
	cmd := &cobra.Command{
		Use:   verb,
		Short: verb + " a tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "tag."+verb, "env", t.env, "tag", tag)
			defer func() { end(err) }()

			in := &metadata.TagInput{RegionRef: t.ref(actorOf(cmd, cfg)), Tag: tag}
			var out *metadata.TagOutput
			if verb == "add" {
				out, err = svc.Metadata.AddTag(ctx, in)
			} else {
				out, err = svc.Metadata.RemoveTag(ctx, in)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	t.register(cmd)
	cmd.Flags().StringVar(&tag, "tag", "", "Tag value (required)")
	_ = cmd.MarkFlagRequired("tag")
	return cmd
}

func newCmdLease() *cobra.Command {
	var t targetFlags
	var leaseDate, note string
	cmd := &cobra.Command{
		Use:   "lease",
		Short: "Extend or change a region lease",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "lease", "env", t.env, "leaseDate", leaseDate)
			defer func() { end(err) }()

			out, err := svc.Metadata.UpdateLease(ctx, &metadata.LeaseInput{
				RegionRef: t.ref(actorOf(cmd, cfg)),
				LeaseDate: leaseDate,
				Note:      note,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	t.register(cmd)
	cmd.Flags().StringVar(&leaseDate, "date", "", "New lease date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&note, "note", "", "Lease note")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newCmdOwner() *cobra.Command {
	var t targetFlags
	var owner string
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Set a region owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			svc, cfg, err := buildCommandServices(cmd)
			if err != nil {
				return err
			}
			ctx, end := logging.Span(cmd.Context(), "CMD", "owner", "env", t.env, "owner", owner)
			defer func() { end(err) }()

			out, err := svc.Metadata.SetOwner(ctx, &metadata.OwnerInput{RegionRef: t.ref(actorOf(cmd, cfg)), Owner: owner})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	t.register(cmd)
	cmd.Flags().StringVar(&owner, "owner", "", "Owner email (required)")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
