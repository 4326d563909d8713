package insights

import (
	"testing"

	"fintrack/internal/core"
)

func TestScoreHealthTypicalMonth(t *testing.T) {
	// 1000 income, 700 expenses, one budget 10% over its limit.
	over := monthlyBudget("dining", 10000)
	over.SpentAmount = core.Money{Cents: 11000}

	health := ScoreHealth([]core.Transaction{
		income(100000),
		expense("dining", -70000),
	}, []core.Budget{over})

	if health.SavingsRate != 30 {
		t.Fatalf("expected savings rate 30, got %v", health.SavingsRate)
	}
	if health.BudgetAdherence != 95 {
		t.Fatalf("expected adherence 95, got %v", health.BudgetAdherence)
	}
	if health.BudgetsOverLimit != 1 {
		t.Fatalf("expected 1 budget over limit, got %d", health.BudgetsOverLimit)
	}
	if health.Score != 98 {
		t.Fatalf("expected score 98, got %d", health.Score)
	}
	if health.Status != HealthExcellent {
		t.Fatalf("expected status %q, got %q", HealthExcellent, health.Status)
	}
}

func TestScoreHealthZeroIncome(t *testing.T) {
	health := ScoreHealth([]core.Transaction{
		expense("dining", -5000),
	}, nil)

	// No income: savings rate stays zero instead of dividing by zero, the
	// income component is withheld, savings still earns the floor bracket.
	if health.SavingsRate != 0 {
		t.Fatalf("expected savings rate 0, got %v", health.SavingsRate)
	}
	if health.Score != 55 { // 20 savings + 35 adherence + 0 income
		t.Fatalf("expected score 55, got %d", health.Score)
	}
	if health.Status != HealthFair {
		t.Fatalf("expected status %q, got %q", HealthFair, health.Status)
	}
}

func TestScoreHealthZeroBudgetedAmountIsSkipped(t *testing.T) {
	zero := monthlyBudget("dining", 0)
	zero.SpentAmount = core.Money{Cents: 5000}

	health := ScoreHealth([]core.Transaction{income(100000)}, []core.Budget{zero})
	if health.BudgetAdherence != 100 {
		t.Fatalf("zero-amount budget must not affect adherence, got %v", health.BudgetAdherence)
	}
	if health.BudgetsOverLimit != 0 {
		t.Fatalf("expected 0 budgets over limit, got %d", health.BudgetsOverLimit)
	}
}

func TestScoreHealthAdherenceFloor(t *testing.T) {
	// 400% usage on each of two budgets drives the raw score negative; it
	// must clamp at zero.
	blown := monthlyBudget("a", 10000)
	blown.SpentAmount = core.Money{Cents: 40000}
	blown2 := monthlyBudget("b", 10000)
	blown2.SpentAmount = core.Money{Cents: 40000}

	health := ScoreHealth(nil, []core.Budget{blown, blown2})
	if health.BudgetAdherence != 0 {
		t.Fatalf("expected adherence clamped to 0, got %v", health.BudgetAdherence)
	}
}

func TestScoreHealthSavingsBrackets(t *testing.T) {
	cases := []struct {
		name     string
		income   int64
		expenses int64
		score    int
	}{
		// adherence 35 and income 25 are constant here
		{"rate 20 earns top bracket", 100000, -80000, 100},
		{"rate 10 earns middle bracket", 100000, -90000, 90},
		{"rate 0 earns floor bracket", 100000, -100000, 80},
		{"negative rate earns nothing", 100000, -120000, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			health := ScoreHealth([]core.Transaction{
				income(tc.income),
				expense("stuff", tc.expenses),
			}, nil)
			if health.Score != tc.score {
				t.Fatalf("expected score %d, got %d", tc.score, health.Score)
			}
		})
	}
}

func TestHealthStatusBoundaries(t *testing.T) {
	cases := []struct {
		score  int
		status string
	}{
		{80, HealthExcellent},
		{79, HealthGood},
		{60, HealthGood},
		{59, HealthFair},
		{40, HealthFair},
		{39, HealthNeedsImprovement},
		{0, HealthNeedsImprovement},
	}
	for _, tc := range cases {
		if got := healthStatus(tc.score); got != tc.status {
			t.Fatalf("score %d expected %q, got %q", tc.score, tc.status, got)
		}
	}
}
