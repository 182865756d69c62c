package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jaekwang-park/todolist/internal/model"
)

var (
	doneColor    = color.New(color.FgGreen)
	pendingColor = color.New(color.FgYellow)
	okColor      = color.New(color.FgHiGreen)
)

func statusMark(item model.TodoItem) string {
	if item.IsCompleted {
		return doneColor.Sprint("✔")
	}
	return pendingColor.Sprint("•")
}

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all todo items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list todos: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No todos found")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", statusMark(it), it.ID, it.Title, it.DescriptionOrEmpty())
			}
			return w.Flush()
		},
	}
}

func showCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one todo item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			item, err := opts.client().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get todo: %w", err)
			}
			printItem(cmd.OutOrStdout(), item)
			return nil
		},
	}
}

func addCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a todo item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")

			created, err := opts.client().Create(cmd.Context(), model.TodoItem{
				Title:       args[0],
				Description: model.StringPtr(description),
			})
			if err != nil {
				return fmt.Errorf("failed to create todo: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Created todo %d: %s\n", okColor.Sprint("✓"), created.ID, created.Title)
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "optional description")
	return cmd
}

func toggleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Flip the completion state of a todo item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			c := opts.client()
			item, err := c.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get todo: %w", err)
			}
			toggled := item.Toggled(time.Now())
			if err := c.Update(cmd.Context(), id, toggled); err != nil {
				return fmt.Errorf("failed to update todo: %w", err)
			}

			state := "pending"
			if toggled.IsCompleted {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s (%s)\n", statusMark(toggled), toggled.ID, toggled.Title, state)
			return nil
		},
	}
}

func rmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [id]",
		Aliases: []string{"delete"},
		Short:   "Delete a todo item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.client().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete todo: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted todo %d\n", okColor.Sprint("✓"), id)
			return nil
		},
	}
}

func printItem(w io.Writer, item model.TodoItem) {
	fmt.Fprintf(w, "%s %d: %s\n", statusMark(item), item.ID, item.Title)
	if item.Description != nil {
		fmt.Fprintf(w, "  Description: %s\n", *item.Description)
	}
	fmt.Fprintf(w, "  Created: %s\n", item.CreatedAt.Format(time.RFC3339))
	if item.CompletedAt != nil {
		fmt.Fprintf(w, "  Completed: %s\n", item.CompletedAt.Format(time.RFC3339))
	}
}
