// Package service defines the contracts between the CLI surface and the
// persistence layer.
package service

import (
	"context"
	"time"

	"github.com/joe5h/tally/internal/model"
)

// Storage is the persistence contract. Every entity list returns a full
// snapshot; filtering and sorting happen in memory on the caller's side.
type Storage interface {
	// Bills
	SaveBill(ctx context.Context, bill *model.Bill) error
	GetBills(ctx context.Context) ([]model.Bill, error)
	GetBillByID(ctx context.Context, id string) (*model.Bill, error)
	UpdateBill(ctx context.Context, bill *model.Bill) error
	DeleteBill(ctx context.Context, id string) error

	// Projects and tasks
	SaveProject(ctx context.Context, project *model.Project) error
	GetProjects(ctx context.Context) ([]model.Project, error)
	GetOpenProjects(ctx context.Context) ([]model.Project, error)
	GetProjectByID(ctx context.Context, id string) (*model.Project, error)
	UpdateProjectStatus(ctx context.Context, id string, status model.ProjectStatus) error
	DeleteProject(ctx context.Context, id string) error
	SaveTask(ctx context.Context, task *model.Task) error
	GetTasks(ctx context.Context, projectID string) ([]model.Task, error)
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)

	// Time entries
	SaveTimeEntry(ctx context.Context, entry *model.TimeEntry) error
	GetTimeEntries(ctx context.Context) ([]model.TimeEntry, error)
	GetTimeEntryByID(ctx context.Context, id string) (*model.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, entry *model.TimeEntry) error

	// Job applications
	SaveApplication(ctx context.Context, app *model.JobApplication) error
	SaveApplications(ctx context.Context, apps []model.JobApplication) error
	GetApplications(ctx context.Context) ([]model.JobApplication, error)
	GetApplicationByID(ctx context.Context, id string) (*model.JobApplication, error)
	UpdateApplication(ctx context.Context, app *model.JobApplication) error
	DeleteApplication(ctx context.Context, id string) error
	DeleteAllApplications(ctx context.Context) error

	// Transactions and lookups
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	SaveTransactions(ctx context.Context, txns []model.Transaction) (int, error)
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	SaveTransactionType(ctx context.Context, tt *model.TransactionType) error
	GetTransactionTypes(ctx context.Context) ([]model.TransactionType, error)
	DeleteTransactionType(ctx context.Context, id string) error
	SavePaymentMethod(ctx context.Context, pm *model.PaymentMethod) error
	GetPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for remote operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DriveFile is one file returned by the cloud drive listing boundary.
type DriveFile struct {
	ID          string
	Name        string
	WebViewLink string
}

// DriveClient is the cloud file-listing contract.
type DriveClient interface {
	ListFiles(ctx context.Context, folderID string) ([]DriveFile, error)
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)
}
