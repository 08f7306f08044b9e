package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasksync/internal/model"
)

func listCmd(opts *rootOptions) *cobra.Command {
	var filter string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := model.ParseFilterMode(filter)
			if err != nil {
				return err
			}
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctl, err := sess.openController(cmd)
			if err != nil {
				return err
			}
			if err := ctl.SetFilterMode(mode); err != nil {
				return err
			}
			tasks := ctl.FilteredTasks()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), tasks)
			}
			printTasks(cmd.OutOrStdout(), tasks)
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "filter mode (all, active, completed)")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func statsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctl, err := sess.openController(cmd)
			if err != nil {
				return err
			}
			stats := ctl.Stats()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-10s %d\n", "total:", stats.Total)
			fmt.Fprintf(out, "%-10s %d\n", "active:", stats.Active)
			fmt.Fprintf(out, "%-10s %d\n", "completed:", stats.Completed)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "output as JSON")
	return cmd
}

func addCmd(opts *rootOptions) *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if err := model.ValidateTitle(title); err != nil {
				return err
			}
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctl, err := sess.openController(cmd)
			if err != nil {
				return err
			}
			if err := ctl.AddTask(cmd.Context(), title, description); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added task: %s\n", title)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description (markdown)")
	return cmd
}

func toggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctl, err := sess.openController(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if err := ctl.ToggleTask(cmd.Context(), id); err != nil {
				return err
			}
			if task, ok := ctl.Task(id); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(task), task.Title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "toggled task %s\n", id)
			return nil
		},
	}
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(opts)
			if err != nil {
				return err
			}
			defer sess.Close()

			ctl, err := sess.openController(cmd)
			if err != nil {
				return err
			}
			id := args[0]
			if !yes {
				label := id
				if task, ok := ctl.Task(id); ok {
					label = fmt.Sprintf("%q (%s)", task.Title, id)
				}
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("delete %s? [y/N]: ", label))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "canceled")
					return nil
				}
			}
			if err := ctl.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %s\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "(no tasks)")
		return
	}
	for _, task := range tasks {
		fmt.Fprintf(w, "%s %-36s %s\n", checkbox(task), task.ID, task.Title)
	}
}

func checkbox(task model.Task) string {
	if task.Completed() {
		return "[x]"
	}
	return "[ ]"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
