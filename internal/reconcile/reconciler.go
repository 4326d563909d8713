// Package reconcile recomputes the derived spentAmount of every active
// budget from the transaction ledger. The recompute is a full overwrite,
// never an increment, so running it any number of times against the same
// ledger converges on the same result.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type Reconciler struct {
	transactions ledger.TransactionRepository
	budgets      ledger.BudgetRepository
	logger       *slog.Logger
}

func NewReconciler(transactions ledger.TransactionRepository, budgets ledger.BudgetRepository, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		transactions: transactions,
		budgets:      budgets,
		logger:       logger,
	}
}

// Recalculate rebuilds spentAmount for all of the user's active budgets.
// A budget's spent amount is the sum of absolute expense amounts in its
// category dated within [startDate, endDate], inclusive. Budgets that fail
// to recompute are logged and skipped so one bad budget never blocks the
// rest; only the initial budget load is fatal.
func (r *Reconciler) Recalculate(ctx context.Context, userID string) error {
	budgets, err := r.budgets.FindActiveByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load budgets: %w", err)
	}

	for _, budget := range budgets {
		if err := r.recalculateBudget(ctx, budget); err != nil {
			r.logger.ErrorContext(ctx, "failed to recalculate budget",
				"budget_id", budget.ID,
				"user_id", userID,
				"category", budget.Category,
				"error", err)
			continue
		}
	}

	r.logger.InfoContext(ctx, "budgets reconciled",
		"user_id", userID,
		"budget_count", len(budgets))

	return nil
}

func (r *Reconciler) recalculateBudget(ctx context.Context, budget core.Budget) error {
	transactions, err := r.transactions.FindByUserCategoryAndDateRange(
		ctx, budget.UserID, budget.Category, budget.StartDate, budget.EndDate, core.TypeExpense)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	var spent core.Money
	for _, t := range transactions {
		spent = spent.Add(t.Amount.Abs())
	}

	if err := r.budgets.UpdateSpentAmount(ctx, budget.ID, spent); err != nil {
		return fmt.Errorf("update spent amount: %w", err)
	}

	return nil
}
