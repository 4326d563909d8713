// Package ledger defines the repository ports the engine consumes. The
// SQLite repository in internal/storage implements all of them; tests use
// in-memory fakes.
package ledger

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// TransactionRepository reads the transaction ledger. The engine never
// writes transactions.
type TransactionRepository interface {
	// FindByUserAndDateRange returns the user's transactions dated within
	// [from, to], both endpoints inclusive.
	FindByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]core.Transaction, error)

	// FindByUserCategoryAndDateRange narrows further to one category and one
	// transaction type.
	FindByUserCategoryAndDateRange(ctx context.Context, userID, category string, from, to time.Time, txType core.TransactionType) ([]core.Transaction, error)
}

// BudgetRepository reads budget definitions and writes the single
// engine-owned field, spentAmount.
type BudgetRepository interface {
	FindActiveByUser(ctx context.Context, userID string) ([]core.Budget, error)
	UpdateSpentAmount(ctx context.Context, budgetID string, amount core.Money) error
}

// TransactionWriter is the ledger write side used by the CRUD services.
type TransactionWriter interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (string, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// BudgetWriter is the budget-definition write side used by the CRUD services.
type BudgetWriter interface {
	CreateBudget(ctx context.Context, b core.Budget) (string, error)
	UpdateBudget(ctx context.Context, b core.Budget) error
	DeleteBudget(ctx context.Context, userID, id string) error
}

// UserLister enumerates users with data, for the worker's periodic sweep.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}
