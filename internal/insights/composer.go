package insights

import (
	"fmt"

	"fintrack/internal/core"
)

// Insight type tags consumers pattern-match on.
const (
	InsightSuccess        InsightType = "success"
	InsightWarning        InsightType = "warning"
	InsightError          InsightType = "error"
	InsightInfo           InsightType = "info"
	InsightRecommendation InsightType = "recommendation"
)

// Stable insight IDs. Consumers key off these strings; never change them.
const (
	InsightIDUnusualSpending  = "unusual-spending"
	InsightIDRecommendations  = "budget-recommendations"
	InsightIDFinancialHealth  = "financial-health"
	InsightIDSavingsChance    = "savings-opportunity"
	InsightIDSpendingForecast = "spending-prediction"
)

type (
	InsightType string

	// Insight is one ranked, user-facing observation.
	Insight struct {
		ID          string      `json:"id"`
		Type        InsightType `json:"type"`
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Priority    Priority    `json:"priority"`
		ActionText  string      `json:"actionText,omitempty"`
		Data        any         `json:"data,omitempty"`
	}
)

// Compose turns the four derivations into the ordered insight list shown to
// the user. The emission rules and their order are fixed.
func Compose(analysis SpendingAnalysis, recommendations []BudgetRecommendation, health FinancialHealth, prediction SpendingPrediction) []Insight {
	var insights []Insight

	if len(analysis.Unusual) > 0 {
		insights = append(insights, Insight{
			ID:          InsightIDUnusualSpending,
			Type:        InsightWarning,
			Title:       "Unusual spending detected",
			Description: fmt.Sprintf("%d transaction(s) were well above the usual amount for their category.", len(analysis.Unusual)),
			Priority:    PriorityHigh,
			ActionText:  "Review transactions",
			Data:        analysis.Unusual,
		})
	}

	if hasHighPriority(recommendations) {
		insights = append(insights, Insight{
			ID:          InsightIDRecommendations,
			Type:        InsightRecommendation,
			Title:       "Budget adjustments suggested",
			Description: fmt.Sprintf("You have %d budget recommendation(s), some high priority.", len(recommendations)),
			Priority:    PriorityHigh,
			ActionText:  "Review budgets",
			Data:        recommendations,
		})
	}

	insights = append(insights, Insight{
		ID:          InsightIDFinancialHealth,
		Type:        healthInsightType(health.Score),
		Title:       fmt.Sprintf("Financial health: %s", health.Status),
		Description: fmt.Sprintf("Your financial health score is %d out of 100.", health.Score),
		Priority:    PriorityMedium,
		Data:        health,
	})

	if topCategory, topTotal, ok := largestCategory(analysis); ok {
		potential := topTotal.MulRound(0.1)
		insights = append(insights, Insight{
			ID:          InsightIDSavingsChance,
			Type:        InsightRecommendation,
			Title:       "Savings opportunity",
			Description: fmt.Sprintf("%s is your biggest spending category. Cutting it by 10%% would save about %s.", topCategory, formatUnits(potential)),
			Priority:    PriorityMedium,
			ActionText:  "See breakdown",
			Data: map[string]any{
				"category":         topCategory,
				"potentialSavings": potential,
			},
		})
	}

	insights = append(insights, Insight{
		ID:          InsightIDSpendingForecast,
		Type:        InsightInfo,
		Title:       "Next month's spending forecast",
		Description: fmt.Sprintf("At the current pace you'll spend about %s next month.", formatUnits(prediction.NextMonth)),
		Priority:    PriorityLow,
		Data:        prediction,
	})

	return insights
}

func hasHighPriority(recs []BudgetRecommendation) bool {
	for _, r := range recs {
		if r.Priority == PriorityHigh {
			return true
		}
	}
	return false
}

func healthInsightType(score int) InsightType {
	switch {
	case score >= 70:
		return InsightSuccess
	case score >= 40:
		return InsightWarning
	default:
		return InsightError
	}
}

// largestCategory returns the category with the highest total, breaking ties
// by name so the result is deterministic. ok is false when nothing was spent.
func largestCategory(analysis SpendingAnalysis) (string, core.Money, bool) {
	var best string
	var bestTotal int64
	found := false
	for category, stat := range analysis.Categories {
		if stat.Total > bestTotal || (stat.Total == bestTotal && found && category < best) {
			best = category
			bestTotal = stat.Total
			found = true
		}
	}
	if !found || bestTotal == 0 {
		return "", core.Money{}, false
	}
	return best, core.Money{Cents: bestTotal}, true
}
