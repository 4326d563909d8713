package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

type fakeTransactionStore struct {
	created  []core.Transaction
	updated  []core.Transaction
	deleted  []string
	storeErr error
}

func (f *fakeTransactionStore) CreateTransaction(_ context.Context, t core.Transaction) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.created = append(f.created, t)
	return "tx-1", nil
}

func (f *fakeTransactionStore) UpdateTransaction(_ context.Context, t core.Transaction) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.updated = append(f.updated, t)
	return nil
}

func (f *fakeTransactionStore) DeleteTransaction(_ context.Context, _, id string) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakePublisher struct {
	published []string // "userID/reason"
	err       error
}

func (f *fakePublisher) PublishReconcile(_ context.Context, userID, reason string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, userID+"/"+reason)
	return nil
}

func testTransaction() core.Transaction {
	return core.Transaction{
		UserID:   "user-1",
		Date:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Type:     core.TypeExpense,
		Category: "groceries",
		Amount:   core.Money{Cents: -4500},
	}
}

func TestTransactionCreatePublishesTrigger(t *testing.T) {
	store := &fakeTransactionStore{}
	publisher := &fakePublisher{}
	svc := NewTransactionService(store, publisher)

	id, err := svc.Create(context.Background(), testTransaction())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "tx-1" {
		t.Fatalf("expected tx-1, got %s", id)
	}
	if len(publisher.published) != 1 || publisher.published[0] != "user-1/transaction_created" {
		t.Fatalf("unexpected publishes: %v", publisher.published)
	}
}

func TestTransactionCreateSurvivesPublishFailure(t *testing.T) {
	store := &fakeTransactionStore{}
	publisher := &fakePublisher{err: errors.New("broker down")}
	svc := NewTransactionService(store, publisher)

	id, err := svc.Create(context.Background(), testTransaction())
	if err != nil {
		t.Fatalf("publish failure must not fail the request: %v", err)
	}
	if id != "tx-1" {
		t.Fatalf("expected tx-1, got %s", id)
	}
	if len(store.created) != 1 {
		t.Fatal("transaction should still be saved")
	}
}

func TestTransactionCreateNilPublisher(t *testing.T) {
	svc := NewTransactionService(&fakeTransactionStore{}, nil)
	if _, err := svc.Create(context.Background(), testTransaction()); err != nil {
		t.Fatalf("nil publisher must be tolerated: %v", err)
	}
}

func TestTransactionCreateValidatesFirst(t *testing.T) {
	store := &fakeTransactionStore{}
	publisher := &fakePublisher{}
	svc := NewTransactionService(store, publisher)

	bad := testTransaction()
	bad.Amount = core.Money{}

	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if len(store.created) != 0 || len(publisher.published) != 0 {
		t.Fatal("invalid transaction must not reach store or broker")
	}
}

func TestTransactionCreateStoreFailureSkipsPublish(t *testing.T) {
	store := &fakeTransactionStore{storeErr: errors.New("disk full")}
	publisher := &fakePublisher{}
	svc := NewTransactionService(store, publisher)

	if _, err := svc.Create(context.Background(), testTransaction()); err == nil {
		t.Fatal("expected error")
	}
	if len(publisher.published) != 0 {
		t.Fatal("failed save must not publish a trigger")
	}
}

func TestTransactionDeletePublishesTrigger(t *testing.T) {
	store := &fakeTransactionStore{}
	publisher := &fakePublisher{}
	svc := NewTransactionService(store, publisher)

	if err := svc.Delete(context.Background(), "user-1", "tx-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "tx-9" {
		t.Fatalf("unexpected deletes: %v", store.deleted)
	}
	if len(publisher.published) != 1 || publisher.published[0] != "user-1/transaction_deleted" {
		t.Fatalf("unexpected publishes: %v", publisher.published)
	}
}
