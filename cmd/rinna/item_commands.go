package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rinna/internal/api"
)

func newItemCommand(ctx *commandContext) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}

	itemCmd.AddCommand(newItemCreateCommand(ctx))
	itemCmd.AddCommand(newItemShowCommand(ctx))
	itemCmd.AddCommand(newItemListCommand(ctx))
	itemCmd.AddCommand(newItemMoveCommand(ctx))
	itemCmd.AddCommand(newItemAssignCommand(ctx))
	itemCmd.AddCommand(newItemWatchCommand(ctx))
	itemCmd.AddCommand(newItemReparentCommand(ctx))

	return itemCmd
}

func newItemCreateCommand(ctx *commandContext) *cobra.Command {
	var itemType string
	var description string
	var priority string
	var assignee string
	var parentID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			created, err := api.CreateItem(cmd.Context(), cfg, ctx.logger(), api.CreateItemRequest{
				Title:       args[0],
				Type:        itemType,
				Description: description,
				Priority:    priority,
				Assignee:    assignee,
				ParentID:    parentID,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", created.Type, created.ID, created.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&itemType, "type", "t", "task", "Item type (bug, feature, chore, task)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Item description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high, urgent)")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Initial assignee")
	cmd.Flags().StringVar(&parentID, "parent", "", "Parent item id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newItemShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			view, err := api.GetItem(cmd.Context(), cfg, ctx.logger(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, view)
			}
			renderItemDetail(cmd, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func renderItemDetail(cmd *cobra.Command, view api.ItemView) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:          %s\n", view.ID)
	fmt.Fprintf(out, "Title:       %s\n", view.Title)
	fmt.Fprintf(out, "Type:        %s\n", view.Type)
	fmt.Fprintf(out, "Status:      %s\n", view.Status)
	fmt.Fprintf(out, "Priority:    %s\n", view.Priority)
	if view.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", view.Description)
	}
	if view.Assignee != "" {
		fmt.Fprintf(out, "Assignee:    %s\n", view.Assignee)
	}
	if view.ParentID != "" {
		fmt.Fprintf(out, "Parent:      %s\n", view.ParentID)
	}
	if len(view.Watchers) > 0 {
		fmt.Fprintf(out, "Watchers:    %s\n", strings.Join(view.Watchers, ", "))
	}
	fmt.Fprintf(out, "Created:     %s\n", formatTime(view.CreatedAt))
	fmt.Fprintf(out, "Updated:     %s\n", formatTime(view.UpdatedAt))
	fmt.Fprintf(out, "Version:     %d\n", view.Version)
	if len(view.NextStates) > 0 {
		fmt.Fprintf(out, "Next states: %s\n", strings.Join(view.NextStates, ", "))
	}
}

func newItemListCommand(ctx *commandContext) *cobra.Command {
	var status string
	var itemType string
	var assignee string
	var parentID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			items, err := api.ListItems(cmd.Context(), cfg, ctx.logger(), api.ItemFilter{
				Status:   status,
				Type:     itemType,
				Assignee: assignee,
				ParentID: parentID,
			})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No work items found")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, view := range items {
				rows = append(rows, []string{
					view.ID,
					truncate(view.Title, 40),
					view.Type,
					view.Status,
					view.Priority,
					view.Assignee,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Title", "Type", "Status", "Priority", "Assignee"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	cmd.Flags().StringVarP(&itemType, "type", "t", "", "Filter by type")
	cmd.Flags().StringVarP(&assignee, "assignee", "a", "", "Filter by assignee")
	cmd.Flags().StringVar(&parentID, "parent", "", "Filter by parent id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newItemMoveCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "move <id> <state>",
		Short: "Transition a work item to a new state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			moved, err := api.TransitionItem(cmd.Context(), cfg, ctx.logger(), args[0], args[1], ctx.actor())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, moved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s (version %d)\n", moved.ID, moved.Status, moved.Version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newItemAssignCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assign <id> [assignee]",
		Short: "Assign a work item (omit assignee to clear)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			assignee := ""
			if len(args) == 2 {
				assignee = args[1]
			}
			assigned, err := api.AssignItem(cmd.Context(), cfg, ctx.logger(), args[0], assignee, ctx.actor())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, assigned)
			}
			out := cmd.OutOrStdout()
			if assigned.Assignee == "" {
				fmt.Fprintf(out, "Cleared assignee on %s\n", assigned.ID)
			} else {
				fmt.Fprintf(out, "Assigned %s to %s\n", assigned.ID, assigned.Assignee)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newItemWatchCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Watch a work item for lifecycle notifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			watched, err := api.WatchItem(cmd.Context(), cfg, ctx.logger(), args[0], ctx.actor())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, watched)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now watching %s\n", ctx.actor(), watched.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func newItemReparentCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reparent <id> [parent-id]",
		Short: "Move a work item under a new parent (omit parent to detach)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			parentID := ""
			if len(args) == 2 {
				parentID = args[1]
			}
			moved, err := api.ReparentItem(cmd.Context(), cfg, ctx.logger(), args[0], parentID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, moved)
			}
			out := cmd.OutOrStdout()
			if moved.ParentID == "" {
				fmt.Fprintf(out, "Detached %s from its parent\n", moved.ID)
			} else {
				fmt.Fprintf(out, "Moved %s under %s\n", moved.ID, moved.ParentID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}
