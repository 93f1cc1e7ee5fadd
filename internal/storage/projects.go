package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joe5h/tally/internal/model"
)

// SaveProject inserts a new project, defaulting its status to open.
func (s *SQLiteStorage) SaveProject(ctx context.Context, project *model.Project) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProject(project); err != nil {
		return err
	}

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	if project.Status == "" {
		project.Status = model.ProjectOpen
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, description, status)
		VALUES (?, ?, ?, ?)`,
		project.ID, project.Name, project.Description, string(project.Status))
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	slog.Debug("saved project", "id", project.ID, "name", project.Name)
	return nil
}

// GetProjects returns all projects, open and closed, ordered by name.
func (s *SQLiteStorage) GetProjects(ctx context.Context) ([]model.Project, error) {
	return s.queryProjects(ctx, `
		SELECT id, name, description, status, created_at
		FROM projects
		ORDER BY name`)
}

// GetOpenProjects returns only open projects, for new-entry pickers. Closed
// projects remain reachable through GetProjects for historical views.
func (s *SQLiteStorage) GetOpenProjects(ctx context.Context) ([]model.Project, error) {
	return s.queryProjects(ctx, `
		SELECT id, name, description, status, created_at
		FROM projects
		WHERE status = 'open'
		ORDER BY name`)
}

func (s *SQLiteStorage) queryProjects(ctx context.Context, query string) ([]model.Project, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		var status string
		var description sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &description, &status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		p.Description = description.String
		p.Status = model.ProjectStatus(status)
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// GetProjectByID returns a single project, or nil when it does not exist.
func (s *SQLiteStorage) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var p model.Project
	var status string
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, status, created_at
		FROM projects
		WHERE id = ?`, id).Scan(&p.ID, &p.Name, &description, &status, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	p.Description = description.String
	p.Status = model.ProjectStatus(status)

	return &p, nil
}

// UpdateProjectStatus transitions a project between open and closed.
func (s *SQLiteStorage) UpdateProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if status != model.ProjectOpen && status != model.ProjectClosed {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidProject, status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE projects SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}

	return requireRowAffected(result, "project", id)
}

// DeleteProject removes a project. Tasks referencing it are left in place;
// deletions do not cascade.
func (s *SQLiteStorage) DeleteProject(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return requireRowAffected(result, "project", id)
}

// SaveTask inserts a new task under a project.
func (s *SQLiteStorage) SaveTask(ctx context.Context, task *model.Task) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("%w: task", ErrNilParameter)
	}
	if err := validateString(task.Name, "task.Name"); err != nil {
		return err
	}
	if err := validateString(task.ProjectID, "task.ProjectID"); err != nil {
		return err
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, name, description, project_id)
		VALUES (?, ?, ?, ?)`,
		task.ID, task.Name, task.Description, task.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	slog.Debug("saved task", "id", task.ID, "project_id", task.ProjectID)
	return nil
}

// GetTasks returns all tasks for a project ordered by name.
func (s *SQLiteStorage) GetTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(projectID, "projectID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, project_id, created_at
		FROM tasks
		WHERE project_id = ?
		ORDER BY name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var description sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &description, &t.ProjectID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.Description = description.String
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// GetTaskByID returns a single task, or nil when it does not exist.
func (s *SQLiteStorage) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var t model.Task
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, project_id, created_at
		FROM tasks
		WHERE id = ?`, id).Scan(&t.ID, &t.Name, &description, &t.ProjectID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	t.Description = description.String

	return &t, nil
}
