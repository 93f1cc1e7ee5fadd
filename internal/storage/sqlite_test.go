package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/joe5h/tally/internal/common"
	"github.com/joe5h/tally/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestSQLiteStorage_BillCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	bill := &model.Bill{
		Name:      "Rent",
		Frequency: model.FrequencyMonthly,
		Amount:    1450,
		BillDate:  testDate(2024, time.January, 1),
	}

	if err := store.SaveBill(ctx, bill); err != nil {
		t.Fatalf("SaveBill() error = %v", err)
	}
	if bill.ID == "" {
		t.Error("SaveBill() did not assign an ID")
	}

	got, err := store.GetBillByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBillByID() error = %v", err)
	}
	if got == nil || got.Name != "Rent" || got.Amount != 1450 {
		t.Errorf("GetBillByID() = %+v, want saved bill", got)
	}

	got.Amount = 1500
	if err := store.UpdateBill(ctx, got); err != nil {
		t.Fatalf("UpdateBill() error = %v", err)
	}

	bills, err := store.GetBills(ctx)
	if err != nil {
		t.Fatalf("GetBills() error = %v", err)
	}
	if len(bills) != 1 || bills[0].Amount != 1500 {
		t.Errorf("GetBills() = %+v, want single updated bill", bills)
	}

	if err := store.DeleteBill(ctx, bill.ID); err != nil {
		t.Fatalf("DeleteBill() error = %v", err)
	}
	got, err = store.GetBillByID(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBillByID() after delete error = %v", err)
	}
	if got != nil {
		t.Errorf("GetBillByID() after delete = %+v, want nil", got)
	}
}

func TestSQLiteStorage_DeleteBillNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.DeleteBill(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("DeleteBill() error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStorage_ValidateBill(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		bill *model.Bill
		name string
	}{
		{name: "nil bill", bill: nil},
		{name: "missing name", bill: &model.Bill{Frequency: model.FrequencyMonthly, BillDate: testDate(2024, 1, 1)}},
		{name: "negative amount", bill: &model.Bill{Name: "x", Frequency: model.FrequencyMonthly, Amount: -1, BillDate: testDate(2024, 1, 1)}},
		{name: "bad frequency", bill: &model.Bill{Name: "x", Frequency: "fortnightly-ish", BillDate: testDate(2024, 1, 1)}},
		{name: "zero anchor date", bill: &model.Bill{Name: "x", Frequency: model.FrequencyMonthly}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveBill(ctx, tt.bill); err == nil {
				t.Error("SaveBill() expected error, got nil")
			}
		})
	}
}

func TestSQLiteStorage_CancelledContext(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.GetBills(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("GetBills() with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestSQLiteStorage_ProjectTaskFlow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	project := &model.Project{Name: "Homelab", Description: "rack rebuild"}
	if err := store.SaveProject(ctx, project); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}
	if project.Status != model.ProjectOpen {
		t.Errorf("SaveProject() status = %q, want open default", project.Status)
	}

	task := &model.Task{ProjectID: project.ID, Name: "Wire switch"}
	if err := store.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error = %v", err)
	}

	tasks, err := store.GetTasks(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetTasks() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Name != "Wire switch" {
		t.Errorf("GetTasks() = %+v, want the saved task", tasks)
	}

	if err := store.UpdateProjectStatus(ctx, project.ID, model.ProjectClosed); err != nil {
		t.Fatalf("UpdateProjectStatus() error = %v", err)
	}

	open, err := store.GetOpenProjects(ctx)
	if err != nil {
		t.Fatalf("GetOpenProjects() error = %v", err)
	}
	if len(open) != 0 {
		t.Errorf("GetOpenProjects() after close = %d projects, want 0", len(open))
	}

	all, err := store.GetProjects(ctx)
	if err != nil {
		t.Fatalf("GetProjects() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("GetProjects() = %d projects, want 1", len(all))
	}
}

func TestSQLiteStorage_TimeEntryJoins(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	project := &model.Project{Name: "Garden"}
	if err := store.SaveProject(ctx, project); err != nil {
		t.Fatalf("SaveProject() error = %v", err)
	}
	task := &model.Task{ProjectID: project.ID, Name: "Weeding"}
	if err := store.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask() error = %v", err)
	}

	entry := &model.TimeEntry{
		TaskID:      task.ID,
		WorkDate:    testDate(2024, time.June, 3),
		StartTime:   "09:00",
		EndTime:     "10:30",
		Duration:    1.5,
		Description: "front beds",
	}
	if err := store.SaveTimeEntry(ctx, entry); err != nil {
		t.Fatalf("SaveTimeEntry() error = %v", err)
	}

	entries, err := store.GetTimeEntries(ctx)
	if err != nil {
		t.Fatalf("GetTimeEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("GetTimeEntries() = %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.TaskName != "Weeding" || got.ProjectName != "Garden" || got.ProjectID != project.ID {
		t.Errorf("GetTimeEntries() joins = %+v, want task and project names filled", got)
	}

	got.Duration = 1.75
	if err := store.UpdateTimeEntry(ctx, &got); err != nil {
		t.Fatalf("UpdateTimeEntry() error = %v", err)
	}
	updated, err := store.GetTimeEntryByID(ctx, got.ID)
	if err != nil {
		t.Fatalf("GetTimeEntryByID() error = %v", err)
	}
	if updated == nil || updated.Duration != 1.75 {
		t.Errorf("GetTimeEntryByID() = %+v, want duration 1.75", updated)
	}
}
