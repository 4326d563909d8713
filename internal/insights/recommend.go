package insights

import (
	"fmt"
	"math"
	"sort"

	"fintrack/internal/core"
)

const (
	RecommendIncrease RecommendationType = "increase_budget"
	RecommendDecrease RecommendationType = "decrease_budget"
	RecommendCreate   RecommendationType = "create_budget"
)

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// createBudgetThresholdCents is the absolute spend above which an unbudgeted
// category earns a create_budget suggestion: 100 whole currency units,
// regardless of currency or locale.
const createBudgetThresholdCents = 100_00

type (
	RecommendationType string

	Priority string

	// BudgetRecommendation is one actionable suggestion for a category.
	BudgetRecommendation struct {
		Type            RecommendationType `json:"type"`
		Category        string             `json:"category"`
		Message         string             `json:"message"`
		Priority        Priority           `json:"priority"`
		CurrentBudget   *core.Money        `json:"currentBudget,omitempty"`
		SuggestedBudget core.Money         `json:"suggestedBudget"`
	}
)

// Recommend compares current-month category spending against the user's
// active budgets and emits suggestions. Output is sorted by category for
// determinism; callers may re-rank by priority.
//
// Thresholds are strict: exactly 120% of budget does not trigger an increase
// and exactly 60% does not trigger a decrease.
func Recommend(transactions []core.Transaction, budgets []core.Budget) []BudgetRecommendation {
	spending := make(map[string]core.Money)
	for _, t := range transactions {
		if t.Type != core.TypeExpense {
			continue
		}
		spending[t.Category] = spending[t.Category].Add(t.Amount.Abs())
	}

	budgetByCategory := make(map[string]core.Budget, len(budgets))
	for _, b := range budgets {
		budgetByCategory[b.Category] = b
	}

	categories := make([]string, 0, len(spending))
	for c := range spending {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var recs []BudgetRecommendation
	for _, category := range categories {
		spent := spending[category]

		budget, exists := budgetByCategory[category]
		if !exists {
			if spent.Cents > createBudgetThresholdCents {
				suggested := spent.MulRound(1.2)
				recs = append(recs, BudgetRecommendation{
					Type:     RecommendCreate,
					Category: category,
					Message: fmt.Sprintf("You spent %s on %s this month with no budget set. Consider creating a budget of %s.",
						formatUnits(spent), category, formatUnits(suggested)),
					Priority:        PriorityMedium,
					SuggestedBudget: suggested,
				})
			}
			continue
		}

		var percentage float64
		if budget.BudgetedAmount.Cents > 0 {
			percentage = spent.Units() / budget.BudgetedAmount.Units() * 100
		}

		switch {
		case percentage > 120:
			suggested := spent.MulRound(1.1)
			overshoot := core.Money{Cents: spent.Cents - budget.BudgetedAmount.Cents}.MulRound(1.1)
			current := budget.BudgetedAmount
			recs = append(recs, BudgetRecommendation{
				Type:     RecommendIncrease,
				Category: category,
				Message: fmt.Sprintf("You're consistently over your %s budget. Consider increasing it by about %s.",
					category, formatUnits(overshoot)),
				Priority:        PriorityHigh,
				CurrentBudget:   &current,
				SuggestedBudget: suggested,
			})
		case percentage < 60:
			suggested := spent.MulRound(1.2)
			slack := core.Money{Cents: budget.BudgetedAmount.Cents - suggested.Cents}
			current := budget.BudgetedAmount
			recs = append(recs, BudgetRecommendation{
				Type:     RecommendDecrease,
				Category: category,
				Message: fmt.Sprintf("Your %s budget has about %s of headroom. You could lower it and free that up.",
					category, formatUnits(slack)),
				Priority:        PriorityLow,
				CurrentBudget:   &current,
				SuggestedBudget: suggested,
			})
		}
	}

	return recs
}

// formatUnits renders an amount rounded to whole currency units for messages.
func formatUnits(m core.Money) string {
	return fmt.Sprintf("%d", int64(math.Round(m.Units())))
}
