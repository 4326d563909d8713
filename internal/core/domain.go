package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

const (
	Weekly    Period = "weekly"
	Monthly   Period = "monthly"
	Quarterly Period = "quarterly"
	Yearly    Period = "yearly"
)

type (
	TransactionType string

	Period string

	Transaction struct {
		ID       string
		UserID   string
		Date     time.Time
		Type     TransactionType
		Category string
		Amount   Money
		Note     string
	}

	Budget struct {
		ID             string
		UserID         string
		Category       string
		BudgetedAmount Money
		SpentAmount    Money // derived, owned by the reconciler
		Period         Period
		StartDate      time.Time
		EndDate        time.Time
		AlertThreshold float64 // percent 0-100
		IsActive       bool
	}
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidPeriod    = errors.New("invalid budget period")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyUserID      = errors.New("empty user id")
	ErrEmptyCategory    = errors.New("empty category")
	ErrZeroDate         = errors.New("date cannot be zero")
	ErrInvalidDateRange = errors.New("end date must not precede start date")
	ErrInvalidThreshold = errors.New("alert threshold must be between 0 and 100")
)

// WindowDays returns the analysis window length in days for a period.
// Unrecognized periods fall back to the monthly window.
func (p Period) WindowDays() int {
	switch p {
	case Weekly:
		return 7
	case Monthly:
		return 30
	case Quarterly:
		return 90
	case Yearly:
		return 365
	default:
		return 30
	}
}

func (p Period) Validate() error {
	switch p {
	case Weekly, Monthly, Quarterly, Yearly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (t TransactionType) Validate() error {
	switch t {
	case TypeIncome, TypeExpense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.UserID) == "" {
		return ErrEmptyUserID
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.Cents == 0 {
		return ErrInvalidAmount
	}
	if len(t.Note) > 500 {
		return errors.New("note too long (max 500 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrEmptyUserID
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.BudgetedAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := b.Period.Validate(); err != nil {
		return err
	}
	if b.StartDate.IsZero() || b.EndDate.IsZero() {
		return ErrZeroDate
	}
	if b.EndDate.Before(b.StartDate) {
		return ErrInvalidDateRange
	}
	if b.AlertThreshold < 0 || b.AlertThreshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

// Covers reports whether the budget window contains the given date.
// Both endpoints are inclusive.
func (b Budget) Covers(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}
