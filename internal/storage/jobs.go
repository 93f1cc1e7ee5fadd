package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joe5h/tally/internal/model"
)

// SaveApplication inserts a single job application.
func (s *SQLiteStorage) SaveApplication(ctx context.Context, app *model.JobApplication) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateApplication(app); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertApplicationTx(ctx, tx, app); err != nil {
		return err
	}

	return tx.Commit()
}

// SaveApplications inserts a batch of applications in one transaction. The
// CSV importer calls this once per chunk; a failing chunk rolls back only
// itself, leaving prior chunks committed.
func (s *SQLiteStorage) SaveApplications(ctx context.Context, apps []model.JobApplication) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(apps) == 0 {
		return nil
	}
	for i := range apps {
		if err := validateApplication(&apps[i]); err != nil {
			return fmt.Errorf("application at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range apps {
		if err := insertApplicationTx(ctx, tx, &apps[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertApplicationTx(ctx context.Context, tx *sql.Tx, app *model.JobApplication) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.Currency == "" {
		app.Currency = "USD"
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO job_applications (
			id, company, position, status, date_applied, salary, currency,
			location, url, portal_url, resume_path, cover_letter_path,
			description, has_interview, is_salary_listed, has_bonus
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.Company, app.Position, string(app.Status), app.DateApplied,
		app.Salary, app.Currency, app.Location, app.URL, app.PortalURL,
		app.ResumePath, app.CoverLetterPath, app.Description,
		app.HasInterview, app.IsSalaryListed, app.HasBonus)
	if err != nil {
		return fmt.Errorf("failed to save application: %w", err)
	}
	return nil
}

// GetApplications returns a full snapshot ordered by application date,
// newest first.
func (s *SQLiteStorage) GetApplications(ctx context.Context) ([]model.JobApplication, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, position, status, date_applied, salary, currency,
		       location, url, portal_url, resume_path, cover_letter_path,
		       description, has_interview, is_salary_listed, has_bonus, created_at
		FROM job_applications
		ORDER BY date_applied DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []model.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}

	slog.Debug("retrieved applications", "count", len(apps))
	return apps, nil
}

func scanApplication(rows *sql.Rows) (model.JobApplication, error) {
	var app model.JobApplication
	var status string
	var salary, location, url, portalURL, resumePath, coverLetterPath, description sql.NullString
	if err := rows.Scan(
		&app.ID, &app.Company, &app.Position, &status, &app.DateApplied,
		&salary, &app.Currency, &location, &url, &portalURL,
		&resumePath, &coverLetterPath, &description,
		&app.HasInterview, &app.IsSalaryListed, &app.HasBonus, &app.CreatedAt,
	); err != nil {
		return model.JobApplication{}, fmt.Errorf("failed to scan application: %w", err)
	}
	app.Status = model.ApplicationStatus(status)
	app.Salary = salary.String
	app.Location = location.String
	app.URL = url.String
	app.PortalURL = portalURL.String
	app.ResumePath = resumePath.String
	app.CoverLetterPath = coverLetterPath.String
	app.Description = description.String
	return app, nil
}

// GetApplicationByID returns a single application, or nil when it does not
// exist.
func (s *SQLiteStorage) GetApplicationByID(ctx context.Context, id string) (*model.JobApplication, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company, position, status, date_applied, salary, currency,
		       location, url, portal_url, resume_path, cover_letter_path,
		       description, has_interview, is_salary_listed, has_bonus, created_at
		FROM job_applications
		WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query application: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to query application: %w", err)
		}
		return nil, nil
	}

	app, err := scanApplication(rows)
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplication updates all mutable fields of an application keyed by ID.
func (s *SQLiteStorage) UpdateApplication(ctx context.Context, app *model.JobApplication) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(app.ID, "app.ID"); err != nil {
		return err
	}
	if err := validateApplication(app); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE job_applications
		SET company = ?, position = ?, status = ?, date_applied = ?, salary = ?,
		    currency = ?, location = ?, url = ?, portal_url = ?, resume_path = ?,
		    cover_letter_path = ?, description = ?, has_interview = ?,
		    is_salary_listed = ?, has_bonus = ?
		WHERE id = ?`,
		app.Company, app.Position, string(app.Status), app.DateApplied, app.Salary,
		app.Currency, app.Location, app.URL, app.PortalURL, app.ResumePath,
		app.CoverLetterPath, app.Description, app.HasInterview,
		app.IsSalaryListed, app.HasBonus, app.ID)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	return requireRowAffected(result, "application", app.ID)
}

// DeleteApplication removes one application permanently.
func (s *SQLiteStorage) DeleteApplication(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM job_applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	return requireRowAffected(result, "application", id)
}

// DeleteAllApplications clears the whole table. Used by `jobs clear`.
func (s *SQLiteStorage) DeleteAllApplications(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM job_applications`)
	if err != nil {
		return fmt.Errorf("failed to delete applications: %w", err)
	}

	affected, _ := result.RowsAffected()
	slog.Info("deleted all applications", "count", affected)
	return nil
}
