package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rinna/internal/api"
)

func newReleaseCommand(ctx *commandContext) *cobra.Command {
	releaseCmd := &cobra.Command{
		Use:   "release",
		Short: "Manage releases",
	}

	releaseCmd.AddCommand(newReleaseCreateCommand(ctx))
	releaseCmd.AddCommand(newReleaseAddCommand(ctx))
	releaseCmd.AddCommand(newReleaseShowCommand(ctx))
	releaseCmd.AddCommand(newReleaseListCommand(ctx))

	return releaseCmd
}

func newReleaseCreateCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create <version>",
		Short: "Create a release with a semantic version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			created, err := api.CreateRelease(cmd.Context(), cfg, ctx.logger(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created release %s (%s)\n", created.Version, created.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newReleaseAddCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add <release> <item-id>",
		Short: "Add a work item to a release (by version or release id)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			updated, err := api.AddReleaseItem(cmd.Context(), cfg, ctx.logger(), args[0], args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, updated)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Release %s now contains %d item(s)\n", updated.Version, len(updated.Items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newReleaseShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <release>",
		Short: "Show a release and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			view, err := api.GetRelease(cmd.Context(), cfg, ctx.logger(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, view)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Release: %s\n", view.Version)
			fmt.Fprintf(out, "ID:      %s\n", view.ID)
			fmt.Fprintf(out, "Created: %s\n", formatTime(view.CreatedAt))
			if len(view.Items) == 0 {
				fmt.Fprintln(out, "Items:   none")
				return nil
			}
			fmt.Fprintln(out, "Items:")
			for _, id := range view.Items {
				fmt.Fprintf(out, "  %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newReleaseListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List releases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			releases, err := api.ListReleases(cmd.Context(), cfg, ctx.logger())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, releases)
			}
			if len(releases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No releases found")
				return nil
			}
			rows := make([][]string, 0, len(releases))
			for _, view := range releases {
				rows = append(rows, []string{
					view.Version,
					strconv.Itoa(len(view.Items)),
					formatTime(view.CreatedAt),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Version", "Items", "Created"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
