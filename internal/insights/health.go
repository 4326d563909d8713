package insights

import (
	"math"

	"fintrack/internal/core"
)

const (
	HealthExcellent        = "Excellent"
	HealthGood             = "Good"
	HealthFair             = "Fair"
	HealthNeedsImprovement = "Needs Improvement"
)

// FinancialHealth is a single 0-100 score with its inputs exposed.
type FinancialHealth struct {
	Score            int     `json:"score"`
	SavingsRate      float64 `json:"savingsRate"`
	BudgetAdherence  float64 `json:"budgetAdherence"`
	BudgetsOverLimit int     `json:"budgetsOverLimit"`
	Status           string  `json:"status"`
}

// ScoreHealth combines savings rate, budget adherence and income presence
// into one score. Pure and deterministic for a given snapshot.
//
// Weighting: savings contributes up to 40 points, budget adherence up to 35,
// and having any income this month a flat 25.
func ScoreHealth(transactions []core.Transaction, budgets []core.Budget) FinancialHealth {
	var income, expenses float64
	var incomeCount int
	for _, t := range transactions {
		switch t.Type {
		case core.TypeIncome:
			income += t.Amount.Abs().Units()
			incomeCount++
		case core.TypeExpense:
			expenses += t.Amount.Abs().Units()
		}
	}

	var savingsRate float64
	if income > 0 {
		savingsRate = (income - expenses) / income * 100
	}

	budgetScore := 100.0
	var overLimit int
	for _, b := range budgets {
		if b.BudgetedAmount.Cents <= 0 {
			continue
		}
		usage := b.SpentAmount.Units() / b.BudgetedAmount.Units() * 100
		if usage > 100 {
			budgetScore -= (usage - 100) / 2
			overLimit++
		}
	}
	if budgetScore < 0 {
		budgetScore = 0
	}

	var savingsComponent float64
	switch {
	case savingsRate >= 20:
		savingsComponent = 40
	case savingsRate >= 10:
		savingsComponent = 30
	case savingsRate >= 0:
		savingsComponent = 20
	}

	adherenceComponent := budgetScore / 100 * 35

	var incomeComponent float64
	if incomeCount > 0 {
		incomeComponent = 25
	}

	score := int(math.Round(savingsComponent + adherenceComponent + incomeComponent))

	return FinancialHealth{
		Score:            score,
		SavingsRate:      savingsRate,
		BudgetAdherence:  budgetScore,
		BudgetsOverLimit: overLimit,
		Status:           healthStatus(score),
	}
}

func healthStatus(score int) string {
	switch {
	case score >= 80:
		return HealthExcellent
	case score >= 60:
		return HealthGood
	case score >= 40:
		return HealthFair
	default:
		return HealthNeedsImprovement
	}
}
