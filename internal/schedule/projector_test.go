package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestProject_AdvancesPastToday(t *testing.T) {
	bill := model.Bill{
		ID:        "rent",
		Name:      "Rent",
		Amount:    100,
		Frequency: model.FrequencyMonthly,
		BillDate:  date(2024, time.January, 15),
	}

	got := Project(bill, date(2024, time.March, 20), 3)
	want := []time.Time{
		date(2024, time.April, 15),
		date(2024, time.May, 15),
		date(2024, time.June, 15),
	}

	if len(got) != len(want) {
		t.Fatalf("Project() returned %d occurrences, want %d", len(got), len(want))
	}
	for i, occ := range got {
		if !occ.NextDueDate.Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, occ.NextDueDate, want[i])
		}
	}
}

func TestProject_AnchorInFuture(t *testing.T) {
	bill := model.Bill{
		ID:        "ins",
		Frequency: model.FrequencyYearly,
		BillDate:  date(2025, time.June, 1),
	}

	got := Project(bill, date(2024, time.March, 1), 2)
	if len(got) != 2 {
		t.Fatalf("Project() returned %d occurrences, want 2", len(got))
	}
	if !got[0].NextDueDate.Equal(date(2025, time.June, 1)) {
		t.Errorf("first occurrence = %v, want the anchor itself", got[0].NextDueDate)
	}
	if !got[1].NextDueDate.Equal(date(2026, time.June, 1)) {
		t.Errorf("second occurrence = %v, want 2026-06-01", got[1].NextDueDate)
	}
}

func TestProject_AnchorEqualsToday(t *testing.T) {
	bill := model.Bill{
		ID:        "gym",
		Frequency: model.FrequencyWeekly,
		BillDate:  date(2024, time.March, 4),
	}

	got := Project(bill, date(2024, time.March, 4), 1)
	if len(got) != 1 || !got[0].NextDueDate.Equal(date(2024, time.March, 4)) {
		t.Errorf("Project() = %v, want the anchor date when it falls on today", got)
	}
}

func TestProject_MonthEndClamping(t *testing.T) {
	bill := model.Bill{
		ID:        "card",
		Frequency: model.FrequencyMonthly,
		BillDate:  date(2024, time.January, 31),
	}

	got := Project(bill, date(2024, time.February, 1), 4)
	want := []time.Time{
		date(2024, time.February, 29), // leap year, clamped
		date(2024, time.March, 31),    // anchor day restored
		date(2024, time.April, 30),
		date(2024, time.May, 31),
	}

	for i, occ := range got {
		if !occ.NextDueDate.Equal(want[i]) {
			t.Errorf("occurrence %d = %v, want %v", i, occ.NextDueDate, want[i])
		}
	}
}

func TestProject_StrictlyIncreasing(t *testing.T) {
	frequencies := []model.Frequency{
		model.FrequencyWeekly,
		model.FrequencyBiWeekly,
		model.FrequencyMonthly,
		model.FrequencyQuarterly,
		model.FrequencyYearly,
	}

	today := date(2024, time.July, 1)
	for _, freq := range frequencies {
		bill := model.Bill{ID: string(freq), Frequency: freq, BillDate: date(2023, time.December, 31)}
		got := Project(bill, today, 8)

		if len(got) != 8 {
			t.Fatalf("%s: Project() returned %d occurrences, want 8", freq, len(got))
		}
		if got[0].NextDueDate.Before(today) {
			t.Errorf("%s: first occurrence %v is before today", freq, got[0].NextDueDate)
		}
		for i := 1; i < len(got); i++ {
			if !got[i].NextDueDate.After(got[i-1].NextDueDate) {
				t.Errorf("%s: occurrence %d (%v) not after %d (%v)",
					freq, i, got[i].NextDueDate, i-1, got[i-1].NextDueDate)
			}
		}
	}
}

func TestProject_ZeroCount(t *testing.T) {
	bill := model.Bill{Frequency: model.FrequencyMonthly, BillDate: date(2024, time.January, 1)}
	if got := Project(bill, date(2024, time.June, 1), 0); got != nil {
		t.Errorf("Project() with count 0 = %v, want nil", got)
	}
}

func TestProject_InstanceIDsUnique(t *testing.T) {
	bill := model.Bill{ID: "hoa", Frequency: model.FrequencyMonthly, BillDate: date(2024, time.January, 5)}
	got := Project(bill, date(2024, time.January, 1), 6)

	seen := make(map[string]bool)
	for i, occ := range got {
		if want := fmt.Sprintf("hoa-%d", i); occ.InstanceID != want {
			t.Errorf("instance id = %q, want %q", occ.InstanceID, want)
		}
		if seen[occ.InstanceID] {
			t.Errorf("duplicate instance id %q", occ.InstanceID)
		}
		seen[occ.InstanceID] = true
	}
}

func TestUpcoming_MergesAndTruncates(t *testing.T) {
	bills := []model.Bill{
		{ID: "a", Name: "Internet", Frequency: model.FrequencyMonthly, BillDate: date(2024, time.January, 1)},
		{ID: "b", Name: "Water", Frequency: model.FrequencyMonthly, BillDate: date(2024, time.January, 15)},
		{ID: "c", Name: "Trash", Frequency: model.FrequencyQuarterly, BillDate: date(2024, time.January, 10)},
	}

	got := Upcoming(bills, date(2024, time.March, 20), 6)
	if len(got) != 6 {
		t.Fatalf("Upcoming() returned %d occurrences, want 6", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].NextDueDate.Before(got[i-1].NextDueDate) {
			t.Errorf("Upcoming() not sorted: %v before %v", got[i].NextDueDate, got[i-1].NextDueDate)
		}
	}
}

func TestUpcoming_NoBills(t *testing.T) {
	if got := Upcoming(nil, date(2024, time.March, 20), 6); len(got) != 0 {
		t.Errorf("Upcoming() with no bills = %v, want empty", got)
	}
}
