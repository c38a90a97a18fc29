package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/todolist/internal/logging"
	"github.com/ShayCichocki/todolist/internal/store"
	"github.com/ShayCichocki/todolist/pkg/models"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the todo list and completed tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg, logging.Discard())
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		printLists(cmd.OutOrStdout(),
			store.LoadList[models.TodoItem](ctx, st, models.KeyTodos),
			store.LoadList[models.CompletedTask](ctx, st, models.KeyCompletedTasks))
		return nil
	},
}

func printLists(out io.Writer, todos []models.TodoItem, completed []models.CompletedTask) {
	heading := color.New(color.Bold)

	heading.Fprintln(out, "Todo List:")
	if len(todos) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, item := range todos {
		fmt.Fprintf(out, "  - %s\n", item.Text)
	}

	fmt.Fprintln(out)
	heading.Fprintln(out, "Completed Tasks:")
	if len(completed) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	done := color.New(color.FgGreen)
	for _, task := range completed {
		done.Fprintf(out, "  ✓ %s\n", task.Text)
	}
}
