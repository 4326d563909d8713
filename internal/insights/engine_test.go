package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

type fakeTransactionRepo struct {
	transactions []core.Transaction
	err          error

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeTransactionRepo) FindByUserAndDateRange(_ context.Context, _ string, from, to time.Time) ([]core.Transaction, error) {
	f.lastFrom, f.lastTo = from, to
	return f.transactions, f.err
}

func (f *fakeTransactionRepo) FindByUserCategoryAndDateRange(_ context.Context, _, category string, from, to time.Time, txType core.TransactionType) ([]core.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Transaction
	for _, t := range f.transactions {
		if t.Category == category && t.Type == txType && !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeBudgetRepo struct {
	budgets []core.Budget
	err     error
	spent   map[string]core.Money
}

func (f *fakeBudgetRepo) FindActiveByUser(context.Context, string) ([]core.Budget, error) {
	return f.budgets, f.err
}

func (f *fakeBudgetRepo) UpdateSpentAmount(_ context.Context, budgetID string, amount core.Money) error {
	if f.spent == nil {
		f.spent = make(map[string]core.Money)
	}
	f.spent[budgetID] = amount
	return nil
}

func fixedEngine(txs *fakeTransactionRepo, budgets *fakeBudgetRepo) *Engine {
	e := NewEngine(txs, budgets)
	e.now = func() time.Time {
		return time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func TestOverviewComposesEverything(t *testing.T) {
	txs := &fakeTransactionRepo{transactions: []core.Transaction{
		income(100000),
		expense("groceries", -30000),
		expense("dining", -10000),
	}}
	budgets := &fakeBudgetRepo{budgets: []core.Budget{monthlyBudget("groceries", 40000)}}

	overview, err := fixedEngine(txs, budgets).Overview(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if overview.Summary.TotalIncome.Cents != 100000 {
		t.Fatalf("expected income 100000, got %d", overview.Summary.TotalIncome.Cents)
	}
	if overview.Summary.TotalExpenses.Cents != 40000 {
		t.Fatalf("expected expenses 40000, got %d", overview.Summary.TotalExpenses.Cents)
	}
	if overview.Summary.NetSavings.Cents != 60000 {
		t.Fatalf("expected net savings 60000, got %d", overview.Summary.NetSavings.Cents)
	}
	if overview.Summary.TransactionCount != 3 {
		t.Fatalf("expected 3 transactions, got %d", overview.Summary.TransactionCount)
	}
	if len(overview.Insights) == 0 {
		t.Fatal("expected insights")
	}
	if overview.Predictions.NextMonth.Cents != 42000 { // 40000 * 1.05
		t.Fatalf("expected prediction 42000, got %d", overview.Predictions.NextMonth.Cents)
	}
}

func TestOverviewFailsWhole(t *testing.T) {
	// A budget load failure fails the whole overview rather than returning
	// partial fields.
	txs := &fakeTransactionRepo{transactions: []core.Transaction{income(100000)}}
	budgets := &fakeBudgetRepo{err: errors.New("boom")}

	overview, err := fixedEngine(txs, budgets).Overview(context.Background(), "user-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if overview != nil {
		t.Fatalf("expected nil overview on failure, got %+v", overview)
	}
}

func TestSpendingAnalysisWindows(t *testing.T) {
	cases := []struct {
		period string
		days   int
	}{
		{"week", 7},
		{"month", 30},
		{"quarter", 90},
		{"year", 365},
		{"bogus", 30},
	}
	for _, tc := range cases {
		txs := &fakeTransactionRepo{}
		engine := fixedEngine(txs, &fakeBudgetRepo{})

		if _, err := engine.SpendingAnalysisForPeriod(context.Background(), "user-1", tc.period); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.period, err)
		}
		gotDays := int(txs.lastTo.Sub(txs.lastFrom).Hours() / 24)
		if gotDays != tc.days {
			t.Fatalf("%s: expected %d day window, got %d", tc.period, tc.days, gotDays)
		}
	}
}

func TestBudgetRecommendationsCounts(t *testing.T) {
	txs := &fakeTransactionRepo{transactions: []core.Transaction{
		expense("dining", -12100),   // 121% of budget, high priority
		expense("groceries", -5000), // 50% of budget, low priority
	}}
	budgets := &fakeBudgetRepo{budgets: []core.Budget{
		monthlyBudget("dining", 10000),
		monthlyBudget("groceries", 10000),
	}}

	set, err := fixedEngine(txs, budgets).BudgetRecommendations(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.TotalRecommendations != 2 {
		t.Fatalf("expected 2 recommendations, got %d", set.TotalRecommendations)
	}
	if set.HighPriority != 1 {
		t.Fatalf("expected 1 high priority, got %d", set.HighPriority)
	}
}

func TestPredictionsFromCurrentMonth(t *testing.T) {
	txs := &fakeTransactionRepo{transactions: []core.Transaction{
		expense("groceries", -10000),
	}}

	prediction, err := fixedEngine(txs, &fakeBudgetRepo{}).Predictions(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prediction.NextMonth.Cents != 10500 {
		t.Fatalf("expected 10500, got %d", prediction.NextMonth.Cents)
	}
}
