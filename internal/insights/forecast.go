package insights

import (
	"fintrack/internal/core"
)

type (
	// CategoryPrediction projects one category a month ahead.
	CategoryPrediction struct {
		NextMonth core.Money `json:"nextMonth"`
		Trend     string     `json:"trend"`
	}

	// SpendingPrediction projects current-period spend forward with fixed
	// growth multipliers. This is a heuristic, not a model.
	SpendingPrediction struct {
		NextMonth   core.Money                    `json:"nextMonth"`
		NextQuarter core.Money                    `json:"nextQuarter"`
		NextYear    core.Money                    `json:"nextYear"`
		Confidence  string                        `json:"confidenceLevel"`
		Categories  map[string]CategoryPrediction `json:"categoryPredictions"`
	}
)

// Forecast applies the fixed multipliers to the current-period totals:
// next month 1.05x, next quarter 3x at 1.03, next year 12x at 1.02. The
// per-category trend is the constant "stable" and confidence is always
// "medium". Changing any of these constants is a behavior change that every
// consumer must sign off on.
func Forecast(total core.Money, byCategory map[string]core.Money) SpendingPrediction {
	prediction := SpendingPrediction{
		NextMonth:   total.MulRound(1.05),
		NextQuarter: total.MulRound(3 * 1.03),
		NextYear:    total.MulRound(12 * 1.02),
		Confidence:  "medium",
		Categories:  make(map[string]CategoryPrediction, len(byCategory)),
	}

	for category, spent := range byCategory {
		prediction.Categories[category] = CategoryPrediction{
			NextMonth: spent.MulRound(1.05),
			Trend:     "stable",
		}
	}

	return prediction
}
