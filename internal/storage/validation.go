package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joe5h/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidBill    = errors.New("invalid bill")
	ErrInvalidEntry   = errors.New("invalid time entry")
	ErrInvalidApp     = errors.New("invalid job application")
	ErrInvalidTxn     = errors.New("invalid transaction")
	ErrInvalidProject = errors.New("invalid project")
)

// validateContext ensures the context is not nil and not already cancelled,
// so a torn-down caller never mutates state late.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateBill(bill *model.Bill) error {
	if bill == nil {
		return fmt.Errorf("%w: bill", ErrNilParameter)
	}
	if bill.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidBill)
	}
	if bill.Amount < 0 {
		return fmt.Errorf("%w: amount must be >= 0", ErrInvalidBill)
	}
	if _, err := model.ParseFrequency(string(bill.Frequency)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBill, err)
	}
	if bill.BillDate.IsZero() {
		return fmt.Errorf("%w: missing anchor date", ErrInvalidBill)
	}
	return nil
}

func validateProject(project *model.Project) error {
	if project == nil {
		return fmt.Errorf("%w: project", ErrNilParameter)
	}
	if project.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidProject)
	}
	return nil
}

func validateTimeEntry(entry *model.TimeEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if entry.TaskID == "" {
		return fmt.Errorf("%w: missing task", ErrInvalidEntry)
	}
	if entry.WorkDate.IsZero() {
		return fmt.Errorf("%w: missing work date", ErrInvalidEntry)
	}
	if entry.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0", ErrInvalidEntry)
	}
	return nil
}

func validateApplication(app *model.JobApplication) error {
	if app == nil {
		return fmt.Errorf("%w: application", ErrNilParameter)
	}
	if app.Company == "" {
		return fmt.Errorf("%w: missing company", ErrInvalidApp)
	}
	if app.Position == "" {
		return fmt.Errorf("%w: missing position", ErrInvalidApp)
	}
	if _, err := model.ParseApplicationStatus(string(app.Status)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidApp, err)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTxn)
	}
	if txn.TransactionDate.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTxn)
	}
	return nil
}
