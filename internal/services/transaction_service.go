// Package services orchestrates writes across storage and AMQP. Every
// mutation saves locally first, then publishes a reconciliation trigger.
// Publishing is best effort: a broker outage never fails the request, the
// worker's periodic sweep catches up later.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// ReconcilePublisher is the AMQP side of the services. Nil-able: a service
// without a publisher just skips the trigger.
type ReconcilePublisher interface {
	PublishReconcile(ctx context.Context, userID, reason string) error
}

type TransactionService struct {
	store     ledger.TransactionWriter
	publisher ReconcilePublisher
}

func NewTransactionService(store ledger.TransactionWriter, publisher ReconcilePublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Create validates and saves a transaction, then asks for a reconcile.
func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	id, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return "", fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"user_id", t.UserID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	s.triggerReconcile(ctx, t.UserID, "transaction_created")
	return id, nil
}

func (s *TransactionService) Update(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.triggerReconcile(ctx, t.UserID, "transaction_updated")
	return nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.triggerReconcile(ctx, userID, "transaction_deleted")
	return nil
}

func (s *TransactionService) triggerReconcile(ctx context.Context, userID, reason string) {
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
