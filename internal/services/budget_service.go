package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type BudgetService struct {
	store     ledger.BudgetWriter
	publisher ReconcilePublisher
}

func NewBudgetService(store ledger.BudgetWriter, publisher ReconcilePublisher) *BudgetService {
	return &BudgetService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and saves a budget, then asks for a reconcile so its
// spent amount is filled in from existing transactions.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.CreateBudget(ctx, b)
	if err != nil {
		return "", fmt.Errorf("save budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", id,
		"user_id", b.UserID,
		"category", b.Category,
		"budgeted_cents", b.BudgetedAmount.Cents,
		"period", b.Period)

	s.triggerReconcile(ctx, b.UserID, "budget_created")
	return id, nil
}

func (s *BudgetService) Update(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}

	s.triggerReconcile(ctx, b.UserID, "budget_updated")
	return nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteBudget(ctx, userID, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}

	s.triggerReconcile(ctx, userID, "budget_deleted")
	return nil
}

func (s *BudgetService) triggerReconcile(ctx context.Context, userID, reason string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, skipping reconcile trigger",
			"user_id", userID, "reason", reason)
		return
	}

	if err := s.publisher.PublishReconcile(ctx, userID, reason); err != nil {
		slog.ErrorContext(ctx, "Failed to publish reconcile trigger",
			"user_id", userID,
			"reason", reason,
			"error", err)
	}
}
