package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/model"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks within projects",
	}

	cmd.AddCommand(addTaskCmd())
	cmd.AddCommand(listTasksCmd())

	return cmd
}

func addTaskCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <project-id> <name>",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			project, err := store.GetProjectByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}
			if project == nil {
				return fmt.Errorf("no project with id %q", args[0])
			}
			if project.Status == model.ProjectClosed {
				return fmt.Errorf("project %q is closed; reopen it first", project.Name)
			}

			task := &model.Task{
				Name:        args[1],
				Description: description,
				ProjectID:   project.ID,
			}
			if err := store.SaveTask(ctx, task); err != nil {
				return fmt.Errorf("failed to save task: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added task %q to project %q", task.Name, project.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")

	return cmd
}

func listTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			project, err := store.GetProjectByID(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}
			if project == nil {
				return fmt.Errorf("no project with id %q", args[0])
			}

			tasks, err := store.GetTasks(ctx, project.ID)
			if err != nil {
				return fmt.Errorf("failed to get tasks: %w", err)
			}
			if len(tasks) == 0 {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No tasks in %q yet.", project.Name)))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(project.Name))
			cli.RenderTasks(os.Stdout, tasks)
			return nil
		},
	}
}
