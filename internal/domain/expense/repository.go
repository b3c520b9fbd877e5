package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Repository manages expense and share persistence.
//
// CreateWithShares must persist the expense header before its shares so that
// every share row carries a valid expense back-reference; implementations run
// both writes inside one transaction and roll back on any failure.
type Repository interface {
	CreateWithShares(ctx context.Context, exp *Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*Expense, error)
	ListByPayer(ctx context.Context, userID uuid.UUID) ([]*Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetShareByID(ctx context.Context, shareID uuid.UUID) (*Share, error)
	ListSharesByUser(ctx context.Context, userID uuid.UUID) ([]*Share, error)
	ListUnsettledSharesByUser(ctx context.Context, userID uuid.UUID) ([]*Share, error)
	ListUnsettledSharesByGroupAndUser(ctx context.Context, groupID, userID uuid.UUID) ([]*Share, error)
	MarkShareSettled(ctx context.Context, shareID uuid.UUID) error

	WithTx(tx pgx.Tx) Repository
}
