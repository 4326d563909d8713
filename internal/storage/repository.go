// Package storage is the SQLite persistence layer. SQLiteRepository
// implements every port in internal/ledger.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
)

// dateLayout is how dates are stored. RFC 3339 text sorts correctly, so
// range queries can compare strings directly.
const dateLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FindByUserAndDateRange implements ledger.TransactionRepository. Both
// endpoints are inclusive.
func (r *SQLiteRepository) FindByUserAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, type, category, amount_cents, note
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date, id`,
		userID, from.UTC().Format(dateLayout), to.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// FindByUserCategoryAndDateRange implements ledger.TransactionRepository.
func (r *SQLiteRepository) FindByUserCategoryAndDateRange(ctx context.Context, userID, category string, from, to time.Time, txType core.TransactionType) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, date, type, category, amount_cents, note
		FROM transactions
		WHERE user_id = ? AND category = ? AND type = ? AND date >= ? AND date <= ?
		ORDER BY date, id`,
		userID, category, string(txType), from.UTC().Format(dateLayout), to.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query transactions by category: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var transactions []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			rawDate string
			txType  string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &rawDate, &txType, &t.Category, &t.Amount.Cents, &t.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse transaction date: %w", err)
		}
		t.Date = date
		t.Type = core.TransactionType(txType)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction implements ledger.TransactionWriter. The ID is minted
// here so callers never pick one.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, date, type, category, amount_cents, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, t.UserID, t.Date.UTC().Format(dateLayout), string(t.Type), t.Category, t.Amount.Cents, t.Note)
	if err != nil {
		return "", fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id string) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, date, type, category, amount_cents, note
		FROM transactions
		WHERE id = ? AND user_id = ?`, id, userID)

	var (
		t       core.Transaction
		rawDate string
		txType  string
	)
	err := row.Scan(&t.ID, &t.UserID, &rawDate, &txType, &t.Category, &t.Amount.Cents, &t.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	date, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date: %w", err)
	}
	t.Date = date
	t.Type = core.TransactionType(txType)
	return &t, nil
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET date = ?, type = ?, category = ?, amount_cents = ?, note = ?, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`,
		t.Date.UTC().Format(dateLayout), string(t.Type), t.Category, t.Amount.Cents, t.Note, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(result)
}

// FindActiveByUser implements ledger.BudgetRepository.
func (r *SQLiteRepository) FindActiveByUser(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, category, budgeted_cents, spent_cents, period,
		       start_date, end_date, alert_threshold, is_active
		FROM budgets
		WHERE user_id = ? AND is_active = 1
		ORDER BY category, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows.Scan)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// UpdateSpentAmount implements ledger.BudgetRepository. The value is an
// overwrite, not an increment.
func (r *SQLiteRepository) UpdateSpentAmount(ctx context.Context, budgetID string, amount core.Money) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET spent_cents = ?, updated_at = datetime('now') WHERE id = ?`,
		amount.Cents, budgetID)
	if err != nil {
		return fmt.Errorf("update spent amount: %w", err)
	}
	return requireRow(result)
}

// CreateBudget implements ledger.BudgetWriter.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category, budgeted_cents, spent_cents, period,
		                     start_date, end_date, alert_threshold, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, b.UserID, b.Category, b.BudgetedAmount.Cents, b.SpentAmount.Cents, string(b.Period),
		b.StartDate.UTC().Format(dateLayout), b.EndDate.UTC().Format(dateLayout),
		b.AlertThreshold, boolToInt(b.IsActive))
	if err != nil {
		return "", fmt.Errorf("insert budget: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, userID, id string) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, budgeted_cents, spent_cents, period,
		       start_date, end_date, alert_threshold, is_active
		FROM budgets
		WHERE id = ? AND user_id = ?`, id, userID)

	b, err := scanBudget(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE budgets
		SET category = ?, budgeted_cents = ?, period = ?, start_date = ?, end_date = ?,
		    alert_threshold = ?, is_active = ?, updated_at = datetime('now')
		WHERE id = ? AND user_id = ?`,
		b.Category, b.BudgetedAmount.Cents, string(b.Period),
		b.StartDate.UTC().Format(dateLayout), b.EndDate.UTC().Format(dateLayout),
		b.AlertThreshold, boolToInt(b.IsActive), b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRow(result)
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(result)
}

// ListUserIDs implements ledger.UserLister. A user counts as present if
// they own either a transaction or a budget.
func (r *SQLiteRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM transactions
		UNION
		SELECT user_id FROM budgets
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query user ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w", err)
	}
	return ids, nil
}

func scanBudget(scan func(dest ...any) error) (*core.Budget, error) {
	var (
		b                core.Budget
		period           string
		rawStart, rawEnd string
		isActive         int
	)
	err := scan(&b.ID, &b.UserID, &b.Category, &b.BudgetedAmount.Cents, &b.SpentAmount.Cents,
		&period, &rawStart, &rawEnd, &b.AlertThreshold, &isActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan budget: %w", err)
	}

	start, err := time.Parse(dateLayout, rawStart)
	if err != nil {
		return nil, fmt.Errorf("parse budget start date: %w", err)
	}
	end, err := time.Parse(dateLayout, rawEnd)
	if err != nil {
		return nil, fmt.Errorf("parse budget end date: %w", err)
	}

	b.Period = core.Period(period)
	b.StartDate = start
	b.EndDate = end
	b.IsActive = isActive != 0
	return &b, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
