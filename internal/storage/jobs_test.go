package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
)

func createTestApplications(count int) []model.JobApplication {
	apps := make([]model.JobApplication, count)
	base := testDate(2024, time.February, 1)

	for i := 0; i < count; i++ {
		apps[i] = model.JobApplication{
			Company:     fmt.Sprintf("Company %d", i+1),
			Position:    "Platform Engineer",
			Status:      model.StatusApplied,
			DateApplied: base.AddDate(0, 0, i),
			Salary:      "120000",
			Location:    "Remote",
		}
	}
	return apps
}

func TestSQLiteStorage_ApplicationCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	app := &model.JobApplication{
		Company:        "Initech",
		Position:       "SRE",
		Status:         model.StatusContacted,
		DateApplied:    testDate(2024, time.February, 10),
		Salary:         "100000 - 120000",
		Location:       "Austin, TX",
		URL:            "https://initech.example/jobs/42",
		IsSalaryListed: true,
	}

	if err := store.SaveApplication(ctx, app); err != nil {
		t.Fatalf("SaveApplication() error = %v", err)
	}
	if app.ID == "" {
		t.Error("SaveApplication() did not assign an ID")
	}

	got, err := store.GetApplicationByID(ctx, app.ID)
	if err != nil {
		t.Fatalf("GetApplicationByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetApplicationByID() = nil, want saved application")
	}
	if got.Company != "Initech" || got.Salary != "100000 - 120000" || !got.IsSalaryListed {
		t.Errorf("GetApplicationByID() = %+v, want saved fields", got)
	}
	if got.Currency != "USD" {
		t.Errorf("GetApplicationByID() currency = %q, want USD default", got.Currency)
	}

	got.Status = model.StatusInterview
	got.HasInterview = true
	if err := store.UpdateApplication(ctx, got); err != nil {
		t.Fatalf("UpdateApplication() error = %v", err)
	}

	apps, err := store.GetApplications(ctx)
	if err != nil {
		t.Fatalf("GetApplications() error = %v", err)
	}
	if len(apps) != 1 || apps[0].Status != model.StatusInterview || !apps[0].HasInterview {
		t.Errorf("GetApplications() = %+v, want updated status", apps)
	}

	if err := store.DeleteApplication(ctx, app.ID); err != nil {
		t.Fatalf("DeleteApplication() error = %v", err)
	}
}

func TestSQLiteStorage_SaveApplicationsBatch(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveApplications(ctx, createTestApplications(25)); err != nil {
		t.Fatalf("SaveApplications() error = %v", err)
	}

	apps, err := store.GetApplications(ctx)
	if err != nil {
		t.Fatalf("GetApplications() error = %v", err)
	}
	if len(apps) != 25 {
		t.Errorf("GetApplications() = %d rows, want 25", len(apps))
	}

	// Newest first.
	if len(apps) >= 2 && apps[0].DateApplied.Before(apps[1].DateApplied) {
		t.Errorf("GetApplications() not ordered newest first: %v then %v",
			apps[0].DateApplied, apps[1].DateApplied)
	}
}

func TestSQLiteStorage_DeleteAllApplications(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveApplications(ctx, createTestApplications(5)); err != nil {
		t.Fatalf("SaveApplications() error = %v", err)
	}

	if err := store.DeleteAllApplications(ctx); err != nil {
		t.Fatalf("DeleteAllApplications() error = %v", err)
	}

	apps, err := store.GetApplications(ctx)
	if err != nil {
		t.Fatalf("GetApplications() error = %v", err)
	}
	if len(apps) != 0 {
		t.Errorf("GetApplications() after clear = %d rows, want 0", len(apps))
	}
}
