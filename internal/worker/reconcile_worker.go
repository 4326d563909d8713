// Package worker drives budget reconciliation in the background process.
// Triggers arrive over AMQP after every write; a periodic sweep covers
// messages lost to broker or worker downtime.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/ledger"
	"fintrack/internal/reconcile"
)

type ReconcileWorker struct {
	reconciler *reconcile.Reconciler
	users      ledger.UserLister
}

func NewReconcileWorker(reconciler *reconcile.Reconciler, users ledger.UserLister) *ReconcileWorker {
	return &ReconcileWorker{
		reconciler: reconciler,
		users:      users,
	}
}

// HandleMessage processes one reconcile trigger. Returning an error makes
// the consumer nack and requeue, which is safe because reconciliation is
// idempotent.
func (w *ReconcileWorker) HandleMessage(ctx context.Context, msg *amqp.ReconcileMessage) error {
	slog.InfoContext(ctx, "Processing reconcile trigger",
		"user_id", msg.UserID,
		"reason", msg.Reason)

	if err := w.reconciler.Recalculate(ctx, msg.UserID); err != nil {
		return fmt.Errorf("recalculate budgets: %w", err)
	}

	return nil
}

// SweepAll reconciles every known user. Failures are logged per user and
// the sweep continues; the next run retries them.
func (w *ReconcileWorker) SweepAll(ctx context.Context) error {
	userIDs, err := w.users.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	if len(userIDs) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Starting reconcile sweep", "user_count", len(userIDs))

	failed := 0
	for _, userID := range userIDs {
		if err := w.reconciler.Recalculate(ctx, userID); err != nil {
			slog.ErrorContext(ctx, "Sweep failed for user", "user_id", userID, "error", err)
			failed++
		}
	}

	slog.InfoContext(ctx, "Reconcile sweep completed",
		"total", len(userIDs),
		"failed", failed)

	return nil
}
