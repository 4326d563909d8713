package insights

import (
	"math"

	"fintrack/internal/core"
)

type (
	// CategoryStat is the per-category aggregate over one analysis window.
	CategoryStat struct {
		Category string  `json:"category"`
		Total    int64   `json:"totalCents"`
		Count    int     `json:"count"`
		Average  float64 `json:"averageCents"`
	}

	// UnusualTransaction flags an expense well above its category average.
	UnusualTransaction struct {
		Transaction      core.Transaction `json:"transaction"`
		DeviationPercent float64          `json:"deviationPercent"`
	}

	// SpendingAnalysis is the aggregator output. Purely derived, never stored.
	SpendingAnalysis struct {
		DailyAverage float64                 `json:"dailyAverageCents"`
		Categories   map[string]CategoryStat `json:"categoryDistribution"`
		Unusual      []UnusualTransaction    `json:"unusualSpending"`
	}
)

// Analyze aggregates a window of transactions into per-category totals and
// flags unusual expenses. Pure function: identical input produces identical
// output, and the input slice is not modified.
//
// The daily average always divides by 30 regardless of the window the caller
// selected. The outlier check compares each expense against a category
// average that includes the expense itself. Both are long-standing documented
// behaviors; changing either changes every consumer downstream.
func Analyze(transactions []core.Transaction) SpendingAnalysis {
	analysis := SpendingAnalysis{
		Categories: make(map[string]CategoryStat),
	}

	var totalCents int64
	for _, t := range transactions {
		if t.Type != core.TypeExpense {
			continue
		}
		abs := t.Amount.Abs().Cents
		totalCents += abs

		stat := analysis.Categories[t.Category]
		stat.Category = t.Category
		stat.Total += abs
		stat.Count++
		stat.Average = float64(stat.Total) / float64(stat.Count)
		analysis.Categories[t.Category] = stat
	}

	analysis.DailyAverage = float64(totalCents) / 30.0

	// Second pass, in input order, against the final inclusive averages.
	for _, t := range transactions {
		if t.Type != core.TypeExpense {
			continue
		}
		avg := analysis.Categories[t.Category].Average
		abs := float64(t.Amount.Abs().Cents)
		if avg > 0 && abs > 2*avg {
			deviation := (abs - avg) / avg * 100
			analysis.Unusual = append(analysis.Unusual, UnusualTransaction{
				Transaction:      t,
				DeviationPercent: math.Round(deviation*10) / 10,
			})
		}
	}

	return analysis
}

// TotalSpent sums the absolute expense amounts across categories.
func (a SpendingAnalysis) TotalSpent() core.Money {
	var total int64
	for _, stat := range a.Categories {
		total += stat.Total
	}
	return core.Money{Cents: total}
}

// ExpenseCount counts the aggregated expense transactions.
func (a SpendingAnalysis) ExpenseCount() int {
	var n int
	for _, stat := range a.Categories {
		n += stat.Count
	}
	return n
}
