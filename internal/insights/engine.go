// Package insights derives spending analytics, budget recommendations, a
// financial-health score and naive forecasts from a user's transaction
// ledger and budgets. Everything here is computed per call from a fresh
// snapshot; nothing is cached or persisted.
package insights

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type (
	// Summary is the headline totals block of an overview.
	Summary struct {
		TotalIncome      core.Money `json:"totalIncome"`
		TotalExpenses    core.Money `json:"totalExpenses"`
		NetSavings       core.Money `json:"netSavings"`
		TransactionCount int        `json:"transactionCount"`
	}

	// Overview bundles every derivation over the current month. Composition
	// is all-or-nothing: a failure in any input fails the whole call rather
	// than returning partially-filled fields.
	Overview struct {
		Insights              []Insight              `json:"insights"`
		Summary               Summary                `json:"summary"`
		SpendingPatterns      SpendingAnalysis       `json:"spendingPatterns"`
		BudgetRecommendations []BudgetRecommendation `json:"budgetRecommendations"`
		FinancialHealth       FinancialHealth        `json:"financialHealth"`
		Predictions           SpendingPrediction     `json:"predictions"`
	}

	// PeriodAnalysis is the response shape of SpendingAnalysisForPeriod.
	PeriodAnalysis struct {
		Period            string           `json:"period"`
		Analysis          SpendingAnalysis `json:"analysis"`
		TotalTransactions int              `json:"totalTransactions"`
		TotalSpent        core.Money       `json:"totalSpent"`
	}

	// RecommendationSet is the response shape of BudgetRecommendations.
	RecommendationSet struct {
		Recommendations      []BudgetRecommendation `json:"recommendations"`
		TotalRecommendations int                    `json:"totalRecommendations"`
		HighPriority         int                    `json:"highPriority"`
	}

	// Engine computes per-user insights from the two repository ports.
	Engine struct {
		transactions ledger.TransactionRepository
		budgets      ledger.BudgetRepository
		now          func() time.Time
	}
)

func NewEngine(transactions ledger.TransactionRepository, budgets ledger.BudgetRepository) *Engine {
	return &Engine{
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

// windowDaysFor maps a requested analysis period to a lookback in days.
// Unrecognized values fall back to the monthly window.
func windowDaysFor(period string) int {
	switch period {
	case "week":
		return 7
	case "month":
		return 30
	case "quarter":
		return 90
	case "year":
		return 365
	default:
		return 30
	}
}

// fetchMonth loads the current-month snapshot: transactions from the last 30
// days plus the user's active budgets, fetched concurrently.
func (e *Engine) fetchMonth(ctx context.Context, userID string) ([]core.Transaction, []core.Budget, error) {
	now := e.now()
	from := now.AddDate(0, 0, -30)

	var (
		transactions []core.Transaction
		budgets      []core.Budget
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = e.transactions.FindByUserAndDateRange(gctx, userID, from, now)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = e.budgets.FindActiveByUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("load budgets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return transactions, budgets, nil
}

// Overview computes the full current-month insight bundle for a user.
func (e *Engine) Overview(ctx context.Context, userID string) (*Overview, error) {
	transactions, budgets, err := e.fetchMonth(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("compose overview: %w", err)
	}

	analysis := Analyze(transactions)
	recommendations := Recommend(transactions, budgets)
	health := ScoreHealth(transactions, budgets)

	total, byCategory := expenseTotals(analysis)
	prediction := Forecast(total, byCategory)

	return &Overview{
		Insights:              Compose(analysis, recommendations, health, prediction),
		Summary:               summarize(transactions),
		SpendingPatterns:      analysis,
		BudgetRecommendations: recommendations,
		FinancialHealth:       health,
		Predictions:           prediction,
	}, nil
}

// SpendingAnalysisForPeriod aggregates spending over the requested window:
// week, month, quarter or year.
func (e *Engine) SpendingAnalysisForPeriod(ctx context.Context, userID, period string) (*PeriodAnalysis, error) {
	now := e.now()
	from := now.AddDate(0, 0, -windowDaysFor(period))

	transactions, err := e.transactions.FindByUserAndDateRange(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	analysis := Analyze(transactions)
	return &PeriodAnalysis{
		Period:            period,
		Analysis:          analysis,
		TotalTransactions: len(transactions),
		TotalSpent:        analysis.TotalSpent(),
	}, nil
}

// BudgetRecommendations computes suggestions over the current month.
func (e *Engine) BudgetRecommendations(ctx context.Context, userID string) (*RecommendationSet, error) {
	transactions, budgets, err := e.fetchMonth(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendations := Recommend(transactions, budgets)
	high := 0
	for _, r := range recommendations {
		if r.Priority == PriorityHigh {
			high++
		}
	}

	return &RecommendationSet{
		Recommendations:      recommendations,
		TotalRecommendations: len(recommendations),
		HighPriority:         high,
	}, nil
}

// FinancialHealth scores the current month.
func (e *Engine) FinancialHealth(ctx context.Context, userID string) (*FinancialHealth, error) {
	transactions, budgets, err := e.fetchMonth(ctx, userID)
	if err != nil {
		return nil, err
	}
	health := ScoreHealth(transactions, budgets)
	return &health, nil
}

// Predictions forecasts from current-month spending.
func (e *Engine) Predictions(ctx context.Context, userID string) (*SpendingPrediction, error) {
	now := e.now()
	from := now.AddDate(0, 0, -30)

	transactions, err := e.transactions.FindByUserAndDateRange(ctx, userID, from, now)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	analysis := Analyze(transactions)
	total, byCategory := expenseTotals(analysis)
	prediction := Forecast(total, byCategory)
	return &prediction, nil
}

func summarize(transactions []core.Transaction) Summary {
	var income, expenses core.Money
	for _, t := range transactions {
		switch t.Type {
		case core.TypeIncome:
			income = income.Add(t.Amount.Abs())
		case core.TypeExpense:
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return Summary{
		TotalIncome:      income,
		TotalExpenses:    expenses,
		NetSavings:       core.Money{Cents: income.Cents - expenses.Cents},
		TransactionCount: len(transactions),
	}
}

func expenseTotals(analysis SpendingAnalysis) (core.Money, map[string]core.Money) {
	byCategory := make(map[string]core.Money, len(analysis.Categories))
	for category, stat := range analysis.Categories {
		byCategory[category] = core.Money{Cents: stat.Total}
	}
	return analysis.TotalSpent(), byCategory
}
