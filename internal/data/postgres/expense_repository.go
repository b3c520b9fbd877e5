package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/platform/persistence"
)

// ExpenseRepository implements the expense.Repository interface for PostgreSQL
type ExpenseRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewExpenseRepository creates a new PostgreSQL expense repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewExpenseRepository(logger *slog.Logger, db *persistence.PostgresDB) expense.Repository {
	return &ExpenseRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic operations
// across multiple repository calls. The returned repository will use the provided
// transaction for all database operations.
func (r *ExpenseRepository) WithTx(tx pgx.Tx) expense.Repository {
	return &ExpenseRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// CreateWithShares persists the expense header first, then each share row
// referencing it. Callers are expected to run this inside a transaction via
// WithTx so a failed share write rolls back the header.
func (r *ExpenseRepository) CreateWithShares(ctx context.Context, exp *expense.Expense) error {
	headerQuery := `
		INSERT INTO expenses (id, description, amount, split_kind, group_id, paid_by, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.querier.Exec(ctx, headerQuery,
		exp.ID,
		exp.Description,
		exp.Amount,
		exp.SplitKind,
		exp.GroupID,
		exp.PaidByID,
		exp.OccurredAt,
		exp.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create expense", "error", err)
		return fmt.Errorf("failed to create expense: %w", err)
	}

	shareQuery := `
		INSERT INTO expense_shares (id, expense_id, user_id, share_amount, percentage, settled)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range exp.Shares {
		sh := &exp.Shares[i]
		if _, err := r.querier.Exec(ctx, shareQuery,
			sh.ID,
			sh.ExpenseID,
			sh.UserID,
			sh.ShareAmount,
			sh.Percentage,
			sh.Settled,
		); err != nil {
			r.logger.Error("Failed to create expense share", "expense_id", exp.ID.String(), "user_id", sh.UserID.String(), "error", err)
			return fmt.Errorf("failed to create expense share: %w", err)
		}
	}

	return nil
}

// GetByID retrieves an expense by its ID, including its shares
func (r *ExpenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `
		SELECT id, description, amount, split_kind, group_id, paid_by, occurred_at, created_at
		FROM expenses
		WHERE id = $1
	`

	var exp expense.Expense
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&exp.ID,
		&exp.Description,
		&exp.Amount,
		&exp.SplitKind,
		&exp.GroupID,
		&exp.PaidByID,
		&exp.OccurredAt,
		&exp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, expense.ErrExpenseNotFound{ExpenseID: id}
		}
		r.logger.Error("Failed to get expense", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	shares, err := r.listSharesByExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	exp.Shares = shares

	return &exp, nil
}

// ListByGroup retrieves the expenses of a group, newest first, with shares
func (r *ExpenseRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*expense.Expense, error) {
	query := `
		SELECT id, description, amount, split_kind, group_id, paid_by, occurred_at, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at DESC
	`
	return r.listExpenses(ctx, query, groupID)
}

// ListByPayer retrieves the expenses paid by a user, newest first, with shares
func (r *ExpenseRepository) ListByPayer(ctx context.Context, userID uuid.UUID) ([]*expense.Expense, error) {
	query := `
		SELECT id, description, amount, split_kind, group_id, paid_by, occurred_at, created_at
		FROM expenses
		WHERE paid_by = $1
		ORDER BY created_at DESC
	`
	return r.listExpenses(ctx, query, userID)
}

// Delete removes an expense. Share rows cascade at the schema level.
func (r *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM expenses
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete expense", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound{ExpenseID: id}
	}

	return nil
}

// GetShareByID retrieves a single share by its ID
func (r *ExpenseRepository) GetShareByID(ctx context.Context, shareID uuid.UUID) (*expense.Share, error) {
	query := `
		SELECT id, expense_id, user_id, share_amount, percentage, settled
		FROM expense_shares
		WHERE id = $1
	`

	var sh expense.Share
	err := r.querier.QueryRow(ctx, query, shareID).Scan(
		&sh.ID,
		&sh.ExpenseID,
		&sh.UserID,
		&sh.ShareAmount,
		&sh.Percentage,
		&sh.Settled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, expense.ErrShareNotFound{ShareID: shareID}
		}
		r.logger.Error("Failed to get expense share", "id", shareID.String(), "error", err)
		return nil, fmt.Errorf("failed to get expense share: %w", err)
	}

	return &sh, nil
}

// ListSharesByUser retrieves every share held by a user
func (r *ExpenseRepository) ListSharesByUser(ctx context.Context, userID uuid.UUID) ([]*expense.Share, error) {
	query := `
		SELECT id, expense_id, user_id, share_amount, percentage, settled
		FROM expense_shares
		WHERE user_id = $1
	`
	return r.listShares(ctx, query, userID)
}

// ListUnsettledSharesByUser retrieves a user's outstanding shares
func (r *ExpenseRepository) ListUnsettledSharesByUser(ctx context.Context, userID uuid.UUID) ([]*expense.Share, error) {
	query := `
		SELECT id, expense_id, user_id, share_amount, percentage, settled
		FROM expense_shares
		WHERE user_id = $1 AND settled = FALSE
	`
	return r.listShares(ctx, query, userID)
}

// ListUnsettledSharesByGroupAndUser retrieves a user's outstanding shares
// within one group
func (r *ExpenseRepository) ListUnsettledSharesByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) ([]*expense.Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.share_amount, s.percentage, s.settled
		FROM expense_shares s
		JOIN expenses e ON e.id = s.expense_id
		WHERE e.group_id = $1 AND s.user_id = $2 AND s.settled = FALSE
	`
	return r.listShares(ctx, query, groupID, userID)
}

// MarkShareSettled flips a share to settled. Settling an already-settled
// share succeeds without changing anything.
func (r *ExpenseRepository) MarkShareSettled(ctx context.Context, shareID uuid.UUID) error {
	query := `
		UPDATE expense_shares
		SET settled = TRUE
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, shareID)
	if err != nil {
		r.logger.Error("Failed to settle expense share", "id", shareID.String(), "error", err)
		return fmt.Errorf("failed to settle expense share: %w", err)
	}

	if result.RowsAffected() == 0 {
		return expense.ErrShareNotFound{ShareID: shareID}
	}

	return nil
}

func (r *ExpenseRepository) listExpenses(ctx context.Context, query string, args ...interface{}) ([]*expense.Expense, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list expenses", "error", err)
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense
	for rows.Next() {
		var exp expense.Expense
		if err := rows.Scan(
			&exp.ID,
			&exp.Description,
			&exp.Amount,
			&exp.SplitKind,
			&exp.GroupID,
			&exp.PaidByID,
			&exp.OccurredAt,
			&exp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, &exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense rows: %w", err)
	}

	for _, exp := range expenses {
		shares, err := r.listSharesByExpense(ctx, exp.ID)
		if err != nil {
			return nil, err
		}
		exp.Shares = shares
	}

	return expenses, nil
}

func (r *ExpenseRepository) listSharesByExpense(ctx context.Context, expenseID uuid.UUID) ([]expense.Share, error) {
	query := `
		SELECT id, expense_id, user_id, share_amount, percentage, settled
		FROM expense_shares
		WHERE expense_id = $1
	`

	shares, err := r.listShares(ctx, query, expenseID)
	if err != nil {
		return nil, err
	}

	out := make([]expense.Share, len(shares))
	for i, sh := range shares {
		out[i] = *sh
	}
	return out, nil
}

func (r *ExpenseRepository) listShares(ctx context.Context, query string, args ...interface{}) ([]*expense.Share, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list expense shares", "error", err)
		return nil, fmt.Errorf("failed to list expense shares: %w", err)
	}
	defer rows.Close()

	var shares []*expense.Share
	for rows.Next() {
		var sh expense.Share
		if err := rows.Scan(
			&sh.ID,
			&sh.ExpenseID,
			&sh.UserID,
			&sh.ShareAmount,
			&sh.Percentage,
			&sh.Settled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense share row: %w", err)
		}
		shares = append(shares, &sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense share rows: %w", err)
	}

	return shares, nil
}
