package insights

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func expense(category string, cents int64) core.Transaction {
	return core.Transaction{
		UserID:   "user-1",
		Date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Type:     core.TypeExpense,
		Category: category,
		Amount:   core.Money{Cents: cents},
	}
}

func income(cents int64) core.Transaction {
	return core.Transaction{
		UserID:   "user-1",
		Date:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Type:     core.TypeIncome,
		Category: "salary",
		Amount:   core.Money{Cents: cents},
	}
}

func TestAnalyzeIgnoresIncome(t *testing.T) {
	analysis := Analyze([]core.Transaction{
		income(100000),
		expense("groceries", -3000),
	})

	if len(analysis.Categories) != 1 {
		t.Fatalf("expected 1 category, got %d", len(analysis.Categories))
	}
	if _, ok := analysis.Categories["salary"]; ok {
		t.Fatal("income must not appear in the category distribution")
	}
}

func TestAnalyzeDailyAverageDividesByThirty(t *testing.T) {
	// 9000 cents over any window still divides by 30.
	analysis := Analyze([]core.Transaction{
		expense("groceries", -3000),
		expense("groceries", -6000),
	})

	if analysis.DailyAverage != 300 {
		t.Fatalf("expected daily average 300, got %v", analysis.DailyAverage)
	}
}

func TestAnalyzeUsesAbsoluteAmounts(t *testing.T) {
	// Same category recorded with mixed signs.
	analysis := Analyze([]core.Transaction{
		expense("dining", -2000),
		expense("dining", 2000),
	})

	stat := analysis.Categories["dining"]
	if stat.Total != 4000 || stat.Count != 2 || stat.Average != 2000 {
		t.Fatalf("unexpected stat: %+v", stat)
	}
}

func TestAnalyzeUnusualBoundaryIsStrict(t *testing.T) {
	// Three 1000s and one 3000: average is 1500, threshold 3000. Exactly
	// double the average is not unusual.
	analysis := Analyze([]core.Transaction{
		expense("dining", -1000),
		expense("dining", -1000),
		expense("dining", -1000),
		expense("dining", -3000),
	})
	if len(analysis.Unusual) != 0 {
		t.Fatalf("expected no unusual transactions, got %d", len(analysis.Unusual))
	}

	// Push the big one just over 2x the inclusive average.
	analysis = Analyze([]core.Transaction{
		expense("dining", -1000),
		expense("dining", -1000),
		expense("dining", -1000),
		expense("dining", -4000),
	})
	if len(analysis.Unusual) != 1 {
		t.Fatalf("expected 1 unusual transaction, got %d", len(analysis.Unusual))
	}
	got := analysis.Unusual[0]
	if got.Transaction.Amount.Cents != -4000 {
		t.Fatalf("flagged the wrong transaction: %+v", got.Transaction)
	}
	// Average is 1750, so deviation is (4000-1750)/1750 = 128.57...%
	if got.DeviationPercent != 128.6 {
		t.Fatalf("expected deviation 128.6, got %v", got.DeviationPercent)
	}
}

func TestAnalyzeUnusualAgainstInclusiveAverage(t *testing.T) {
	// A single transaction can never exceed twice its own inclusive average.
	analysis := Analyze([]core.Transaction{expense("travel", -99999)})
	if len(analysis.Unusual) != 0 {
		t.Fatalf("lone transaction flagged as unusual: %+v", analysis.Unusual)
	}
}

func TestAnalyzeIsPure(t *testing.T) {
	input := []core.Transaction{
		expense("a", -1000),
		expense("b", -2000),
	}
	first := Analyze(input)
	second := Analyze(input)

	if first.DailyAverage != second.DailyAverage {
		t.Fatal("repeated analysis diverged")
	}
	if input[0].Amount.Cents != -1000 || input[1].Amount.Cents != -2000 {
		t.Fatal("input slice was modified")
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	analysis := Analyze(nil)
	if analysis.DailyAverage != 0 {
		t.Fatalf("expected zero daily average, got %v", analysis.DailyAverage)
	}
	if len(analysis.Categories) != 0 || len(analysis.Unusual) != 0 {
		t.Fatal("expected empty analysis")
	}
	if analysis.TotalSpent().Cents != 0 || analysis.ExpenseCount() != 0 {
		t.Fatal("expected zero totals")
	}
}
