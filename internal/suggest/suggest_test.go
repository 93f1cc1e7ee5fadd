package suggest

import (
	"testing"
	"time"

	"github.com/joe5h/tally/internal/model"
)

func monthly(desc string, amount float64, day int, months ...string) []model.Transaction {
	var txns []model.Transaction
	for _, m := range months {
		date, err := time.Parse("2006-01", m)
		if err != nil {
			panic(err)
		}
		txns = append(txns, model.Transaction{
			TransactionDate: date.AddDate(0, 0, day-1),
			Description:     desc,
			Amount:          amount,
		})
	}
	return txns
}

func TestRecurringBills_DetectsMonthlyCharge(t *testing.T) {
	txns := monthly("NETFLIX.COM", -15.99, 12, "2024-01", "2024-02", "2024-03", "2024-04")

	got := RecurringBills(txns, nil, 0)
	if len(got) != 1 {
		t.Fatalf("RecurringBills() = %d candidates, want 1", len(got))
	}

	c := got[0]
	if c.Name != "NETFLIX.COM" || c.MonthCount != 4 || c.TypicalDay != 12 {
		t.Errorf("candidate = %+v, want NETFLIX.COM over 4 months on day 12", c)
	}
	if c.AvgAmount != 15.99 {
		t.Errorf("AvgAmount = %v, want 15.99", c.AvgAmount)
	}

	bill := c.Bill()
	if bill.Frequency != model.FrequencyMonthly || bill.Amount != 15.99 {
		t.Errorf("Bill() = %+v, want monthly at 15.99", bill)
	}
}

func TestRecurringBills_TooFewMonths(t *testing.T) {
	txns := monthly("SPOTIFY", -10.99, 5, "2024-01", "2024-02")
	if got := RecurringBills(txns, nil, 0); len(got) != 0 {
		t.Errorf("RecurringBills() = %v, want none under %d months", got, MinMonths)
	}
}

func TestRecurringBills_RejectsMultiplePerMonth(t *testing.T) {
	txns := monthly("COFFEE SHOP", -4.50, 3, "2024-01", "2024-02", "2024-03")
	txns = append(txns, model.Transaction{
		TransactionDate: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
		Description:     "COFFEE SHOP",
		Amount:          -4.50,
	})

	if got := RecurringBills(txns, nil, 0); len(got) != 0 {
		t.Errorf("RecurringBills() = %v, want none for repeat purchases", got)
	}
}

func TestRecurringBills_RejectsUnstableAmounts(t *testing.T) {
	txns := []model.Transaction{
		{TransactionDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "UTILITY", Amount: -40},
		{TransactionDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Description: "UTILITY", Amount: -90},
		{TransactionDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Description: "UTILITY", Amount: -40},
	}

	if got := RecurringBills(txns, nil, 0.10); len(got) != 0 {
		t.Errorf("RecurringBills() = %v, want none for swinging amounts", got)
	}
}

func TestRecurringBills_ToleratesPriceCreep(t *testing.T) {
	txns := []model.Transaction{
		{TransactionDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Description: "GYM", Amount: -50},
		{TransactionDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Description: "GYM", Amount: -52},
		{TransactionDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Description: "GYM", Amount: -54},
	}

	if got := RecurringBills(txns, nil, 0.10); len(got) != 1 {
		t.Errorf("RecurringBills() = %d candidates, want 1 despite small increases", len(got))
	}
}

func TestRecurringBills_GroupsTrailingReferenceDigits(t *testing.T) {
	txns := []model.Transaction{
		{TransactionDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), Description: "NETFLIX 0124", Amount: -15.99},
		{TransactionDate: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), Description: "NETFLIX 0224", Amount: -15.99},
		{TransactionDate: time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), Description: "NETFLIX 0324", Amount: -15.99},
	}

	got := RecurringBills(txns, nil, 0)
	if len(got) != 1 {
		t.Fatalf("RecurringBills() = %d candidates, want trailing digits normalized", len(got))
	}
}

func TestRecurringBills_SkipsExistingBills(t *testing.T) {
	txns := monthly("Netflix", -15.99, 12, "2024-01", "2024-02", "2024-03")
	existing := []model.Bill{{Name: "NETFLIX"}}

	if got := RecurringBills(txns, existing, 0); len(got) != 0 {
		t.Errorf("RecurringBills() = %v, want none for already-tracked bills", got)
	}
}

func TestRecurringBills_IgnoresIncome(t *testing.T) {
	txns := monthly("PAYROLL", 2500, 1, "2024-01", "2024-02", "2024-03", "2024-04")
	if got := RecurringBills(txns, nil, 0); len(got) != 0 {
		t.Errorf("RecurringBills() = %v, want income ignored", got)
	}
}

func TestRecurringBills_EmptyInput(t *testing.T) {
	if got := RecurringBills(nil, nil, 0); len(got) != 0 {
		t.Errorf("RecurringBills(nil) = %v, want empty", got)
	}
}
