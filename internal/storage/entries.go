package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joe5h/tally/internal/model"
)

// SaveTimeEntry inserts a new time entry.
func (s *SQLiteStorage) SaveTimeEntry(ctx context.Context, entry *model.TimeEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTimeEntry(entry); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO time_entries (id, task_id, work_date, start_time, end_time, duration, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.TaskID, entry.WorkDate, entry.StartTime, entry.EndTime, entry.Duration, entry.Description)
	if err != nil {
		return fmt.Errorf("failed to save time entry: %w", err)
	}

	slog.Debug("saved time entry", "id", entry.ID, "duration", entry.Duration)
	return nil
}

// GetTimeEntries returns all time entries joined with their task and project
// names. Entries whose task or project has been deleted come back with empty
// names; the presentation layer renders those as "Unknown".
func (s *SQLiteStorage) GetTimeEntries(ctx context.Context) ([]model.TimeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.task_id, e.work_date, e.start_time, e.end_time, e.duration, e.description, e.created_at,
		       t.name, p.id, p.name
		FROM time_entries e
		LEFT JOIN tasks t ON t.id = e.task_id
		LEFT JOIN projects p ON p.id = t.project_id
		ORDER BY e.work_date DESC, e.start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.TimeEntry
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time entries: %w", err)
	}

	slog.Debug("retrieved time entries", "count", len(entries))
	return entries, nil
}

func scanTimeEntry(rows *sql.Rows) (model.TimeEntry, error) {
	var entry model.TimeEntry
	var startTime, endTime, description sql.NullString
	var taskName, projectID, projectName sql.NullString
	if err := rows.Scan(
		&entry.ID, &entry.TaskID, &entry.WorkDate, &startTime, &endTime,
		&entry.Duration, &description, &entry.CreatedAt,
		&taskName, &projectID, &projectName,
	); err != nil {
		return model.TimeEntry{}, fmt.Errorf("failed to scan time entry: %w", err)
	}
	entry.StartTime = startTime.String
	entry.EndTime = endTime.String
	entry.Description = description.String
	entry.TaskName = taskName.String
	entry.ProjectID = projectID.String
	entry.ProjectName = projectName.String
	return entry, nil
}

// GetTimeEntryByID returns a single time entry, or nil when it does not exist.
func (s *SQLiteStorage) GetTimeEntryByID(ctx context.Context, id string) (*model.TimeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.task_id, e.work_date, e.start_time, e.end_time, e.duration, e.description, e.created_at,
		       t.name, p.id, p.name
		FROM time_entries e
		LEFT JOIN tasks t ON t.id = e.task_id
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE e.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entry: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query time entry: %w", err)
		}
		return nil, nil
	}

	entry, err := scanTimeEntry(rows)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateTimeEntry updates the mutable fields of a time entry keyed by ID.
func (s *SQLiteStorage) UpdateTimeEntry(ctx context.Context, entry *model.TimeEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(entry.ID, "entry.ID"); err != nil {
		return err
	}
	if err := validateTimeEntry(entry); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE time_entries
		SET work_date = ?, start_time = ?, end_time = ?, duration = ?, description = ?
		WHERE id = ?`,
		entry.WorkDate, entry.StartTime, entry.EndTime, entry.Duration, entry.Description, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update time entry: %w", err)
	}

	return requireRowAffected(result, "time entry", entry.ID)
}
