package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/amirbrooks/absorb/internal/store"
	"github.com/amirbrooks/absorb/internal/ui"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks with due dates, priorities and groups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <due_date> <priority> <group>",
		Short: "Add a task",
		Long: `Add a task.

due_date is "." for now, "+1d 5h 30m 10s" for an offset from now, or an
absolute "YYYY-MM-DD HH:MM:SS.ffffff" timestamp. group holds @tags, e.g. "@work @q3".`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.ws.AddTask(cmd.Context(), store.AddTaskInput{
				Name:     args[0],
				Due:      store.ParseField(args[1]),
				Priority: store.ParseField(args[2]),
				Group:    store.ParseField(args[3]),
			})
			if err != nil {
				return a.writeFailed("tasks add", err)
			}
			a.println(ui.Success(fmt.Sprintf("%q has been added to the list!", task.Name)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <name> <due_date> <priority> <group>",
		Short: "Edit a task; \".\" keeps a field",
		Long: `Edit every task carrying <id>. Pass "." to keep a field.
Relative due dates are applied to the task's current due date.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			n, err := a.ws.EditTask(cmd.Context(), id, store.EditTaskInput{
				Name:     store.ParseField(args[1]),
				Due:      store.ParseField(args[2]),
				Priority: store.ParseField(args[3]),
				Group:    store.ParseField(args[4]),
			})
			if err != nil {
				return a.writeFailed("tasks edit", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No task with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Task %s has been modified in the list!", id)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			n, err := a.ws.DeleteTask(cmd.Context(), id)
			if err != nil {
				return a.writeFailed("tasks delete", err)
			}
			if n == 0 {
				a.warn(fmt.Sprintf("No task with id %s.", id))
				return nil
			}
			a.println(ui.Success(fmt.Sprintf("Task %s has been removed from the list!", id)))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show all tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.ws.ListTasks(store.ListFilter{})
			if err != nil {
				return a.readFailed("tasks show", err, true)
			}
			a.println(ui.Tasks(tasks, time.Now()))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show-group <@name>",
		Short: "Show the tasks tagged with a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := a.ws.ListTasks(store.ListFilter{Group: args[0]})
			if err != nil {
				return a.readFailed("tasks show-group", err, true)
			}
			if len(tasks) == 0 {
				fmt.Fprintln(a.errOut, ui.Failure(fmt.Sprintf("No tasks found in group %s.", args[0])))
				return silent(ExitNotFound)
			}
			a.println(ui.Tasks(tasks, time.Now()))
			return nil
		},
	})

	return cmd
}
