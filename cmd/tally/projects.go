package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joe5h/tally/internal/cli"
	"github.com/joe5h/tally/internal/model"
	"github.com/joe5h/tally/internal/view"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}

	cmd.AddCommand(addProjectCmd())
	cmd.AddCommand(listProjectsCmd())
	cmd.AddCommand(closeProjectCmd())
	cmd.AddCommand(reopenProjectCmd())
	cmd.AddCommand(deleteProjectCmd())

	return cmd
}

func addProjectCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			project := &model.Project{Name: args[0], Description: description}
			if err := store.SaveProject(ctx, project); err != nil {
				return fmt.Errorf("failed to save project: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added project %q", project.Name)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")

	return cmd
}

func listProjectsCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			projects, err := store.GetProjects(ctx)
			if err != nil {
				return fmt.Errorf("failed to get projects: %w", err)
			}

			var filters []view.Predicate[model.Project]
			if status != "" {
				want := model.ProjectStatus(status)
				filters = append(filters, func(p model.Project) bool { return p.Status == want })
			}

			projects = view.Apply(projects, filters,
				func(p model.Project) view.Comparable { return view.Str(p.Name) },
				view.Ascending)

			if len(projects) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No projects found."))
				return nil
			}

			cli.RenderProjects(os.Stdout, projects)
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "filter by status (open, closed)")

	return cmd
}

func closeProjectCmd() *cobra.Command {
	return setProjectStatusCmd("close", "Close a project", model.ProjectClosed)
}

func reopenProjectCmd() *cobra.Command {
	return setProjectStatusCmd("reopen", "Reopen a closed project", model.ProjectOpen)
}

func setProjectStatusCmd(use, short string, status model.ProjectStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.UpdateProjectStatus(ctx, args[0], status); err != nil {
				return fmt.Errorf("failed to update project: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Project marked %s", status)))
			return nil
		},
	}
}

func deleteProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Long:  `Delete a project. Its tasks are left in place and keep their project reference.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteProject(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("Project deleted"))
			return nil
		},
	}
}
