package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joe5h/tally/internal/model"
)

// SaveBill inserts a new bill, assigning an ID when absent.
func (s *SQLiteStorage) SaveBill(ctx context.Context, bill *model.Bill) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBill(bill); err != nil {
		return err
	}

	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bills (id, name, amount, frequency, bill_date)
		VALUES (?, ?, ?, ?, ?)`,
		bill.ID, bill.Name, bill.Amount, string(bill.Frequency), bill.BillDate)
	if err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}

	slog.Debug("saved bill", "id", bill.ID, "name", bill.Name)
	return nil
}

// GetBills returns a full snapshot of all bills ordered by anchor date.
func (s *SQLiteStorage) GetBills(ctx context.Context) ([]model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, amount, frequency, bill_date, created_at
		FROM bills
		ORDER BY bill_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bills []model.Bill
	for rows.Next() {
		var bill model.Bill
		var frequency string
		if err := rows.Scan(&bill.ID, &bill.Name, &bill.Amount, &frequency, &bill.BillDate, &bill.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bill.Frequency = model.Frequency(frequency)
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	slog.Debug("retrieved bills", "count", len(bills))
	return bills, nil
}

// GetBillByID returns a single bill, or nil when it does not exist.
func (s *SQLiteStorage) GetBillByID(ctx context.Context, id string) (*model.Bill, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var bill model.Bill
	var frequency string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, amount, frequency, bill_date, created_at
		FROM bills
		WHERE id = ?`, id).Scan(&bill.ID, &bill.Name, &bill.Amount, &frequency, &bill.BillDate, &bill.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query bill: %w", err)
	}
	bill.Frequency = model.Frequency(frequency)

	return &bill, nil
}

// UpdateBill updates all mutable fields of a bill keyed by its ID.
func (s *SQLiteStorage) UpdateBill(ctx context.Context, bill *model.Bill) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(bill.ID, "bill.ID"); err != nil {
		return err
	}
	if err := validateBill(bill); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE bills
		SET name = ?, amount = ?, frequency = ?, bill_date = ?
		WHERE id = ?`,
		bill.Name, bill.Amount, string(bill.Frequency), bill.BillDate, bill.ID)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	return requireRowAffected(result, "bill", bill.ID)
}

// DeleteBill removes a bill permanently. Bills are never soft-deleted.
func (s *SQLiteStorage) DeleteBill(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM bills WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	return requireRowAffected(result, "bill", id)
}
