package insights

import (
	"testing"

	"fintrack/internal/core"
)

func TestForecastMultipliers(t *testing.T) {
	total := core.Money{Cents: 10000}
	byCategory := map[string]core.Money{
		"groceries": {Cents: 6000},
		"dining":    {Cents: 4000},
	}

	prediction := Forecast(total, byCategory)

	if prediction.NextMonth.Cents != 10500 {
		t.Fatalf("expected next month 10500, got %d", prediction.NextMonth.Cents)
	}
	if prediction.NextQuarter.Cents != 30900 {
		t.Fatalf("expected next quarter 30900, got %d", prediction.NextQuarter.Cents)
	}
	if prediction.NextYear.Cents != 122400 {
		t.Fatalf("expected next year 122400, got %d", prediction.NextYear.Cents)
	}
	if prediction.Confidence != "medium" {
		t.Fatalf("expected medium confidence, got %q", prediction.Confidence)
	}

	if len(prediction.Categories) != 2 {
		t.Fatalf("expected 2 category predictions, got %d", len(prediction.Categories))
	}
	groceries := prediction.Categories["groceries"]
	if groceries.NextMonth.Cents != 6300 || groceries.Trend != "stable" {
		t.Fatalf("unexpected groceries prediction: %+v", groceries)
	}
}

func TestForecastZeroSpend(t *testing.T) {
	prediction := Forecast(core.Money{}, nil)
	if prediction.NextMonth.Cents != 0 || prediction.NextQuarter.Cents != 0 || prediction.NextYear.Cents != 0 {
		t.Fatalf("expected zero forecast, got %+v", prediction)
	}
	if len(prediction.Categories) != 0 {
		t.Fatal("expected no category predictions")
	}
}
