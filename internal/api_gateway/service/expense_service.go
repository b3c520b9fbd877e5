package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"log/slog"

	"github.com/splitshare-service/internal/domain/activity"
	"github.com/splitshare-service/internal/domain/expense"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/domain/user"
	"github.com/splitshare-service/internal/platform/messaging/producers"
	"github.com/splitshare-service/internal/splitter"
)

// TxRunner runs a function inside one database transaction, rolling back
// on error or panic. Satisfied by persistence.PostgresDB.
type TxRunner interface {
	ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// ExpenseServiceImpl implements the ExpenseService interface
type ExpenseServiceImpl struct {
	logger      *slog.Logger
	expenseRepo expense.Repository
	groupRepo   group.Repository
	userRepo    user.Repository
	tx          TxRunner
	producer    producers.MessagePublisher
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	logger *slog.Logger,
	expenseRepo expense.Repository,
	groupRepo group.Repository,
	userRepo user.Repository,
	tx TxRunner,
	producer producers.MessagePublisher,
) ExpenseService {
	return &ExpenseServiceImpl{
		logger:      logger,
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		tx:          tx,
		producer:    producer,
	}
}

// CreateExpense resolves the group, payer and share members, derives the
// per-participant shares for the requested split kind, and persists the
// expense header with its shares inside one transaction.
func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, in *CreateExpenseInput) (*expense.Expense, error) {
	g, err := s.groupRepo.GetByID(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}

	payer, err := s.userRepo.GetByID(ctx, in.PaidByID)
	if err != nil {
		return nil, err
	}
	if !g.HasMember(payer.ID) {
		return nil, expense.NewDomainError(expense.ErrorPayerNotGroupMember, "paidById",
			"payer "+payer.ID.String()+" is not a member of group "+g.ID.String())
	}

	for _, sh := range in.Shares {
		if !g.HasMember(sh.UserID) {
			return nil, expense.NewDomainError(expense.ErrorShareUserNotGroupMember, "shares",
				"user "+sh.UserID.String()+" is not a member of group "+g.ID.String())
		}
	}

	exp, err := expense.NewExpense(in.Description, in.Amount, in.SplitKind, in.GroupID, in.PaidByID)
	if err != nil {
		return nil, err
	}

	policy, err := splitter.ForKind(in.SplitKind)
	if err != nil {
		return nil, err
	}
	computed, err := policy.ValidateAndDerive(splitter.Input{
		Total:            exp.Amount,
		Shares:           in.Shares,
		PercentageFormat: in.PercentageFormat,
	})
	if err != nil {
		return nil, err
	}

	exp.Shares = make([]expense.Share, len(computed))
	for i, c := range computed {
		exp.Shares[i] = expense.Share{
			ID:          uuid.New(),
			ExpenseID:   exp.ID,
			UserID:      c.UserID,
			ShareAmount: c.Amount,
			Percentage:  c.Percentage,
		}
	}

	err = s.tx.ExecuteTx(ctx, func(tx pgx.Tx) error {
		return s.expenseRepo.WithTx(tx).CreateWithShares(ctx, exp)
	})
	if err != nil {
		s.logger.Error("Failed to persist expense",
			"expense_id", exp.ID.String(),
			"group_id", exp.GroupID.String(),
			"error", err,
		)
		return nil, err
	}

	s.logger.Info("Expense created",
		"expense_id", exp.ID.String(),
		"group_id", exp.GroupID.String(),
		"split_kind", string(exp.SplitKind),
		"amount", exp.Amount.String(),
		"shares", len(exp.Shares),
	)

	s.publishEvent(ctx, &activity.Event{
		EventID:       uuid.New(),
		Type:          activity.EventExpenseCreated,
		GroupID:       exp.GroupID,
		ExpenseID:     exp.ID,
		ActorID:       exp.PaidByID,
		Description:   exp.Description,
		Amount:        exp.Amount,
		CorrelationID: in.CorrelationID,
		OccurredAt:    time.Now().UTC(),
	})

	return exp, nil
}

// GetExpenseByID retrieves an expense with its shares. The requester must
// be a member of the expense's group.
func (s *ExpenseServiceImpl) GetExpenseByID(ctx context.Context, id, requestedBy uuid.UUID) (*expense.Expense, error) {
	exp, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(ctx, exp.GroupID, requestedBy); err != nil {
		return nil, err
	}
	return exp, nil
}

// GetGroupExpenses retrieves the expenses of a group, newest first. The
// requester must be a member.
func (s *ExpenseServiceImpl) GetGroupExpenses(ctx context.Context, groupID, requestedBy uuid.UUID) ([]*expense.Expense, error) {
	if err := s.requireMember(ctx, groupID, requestedBy); err != nil {
		return nil, err
	}
	return s.expenseRepo.ListByGroup(ctx, groupID)
}

// GetUserExpenses retrieves the expenses paid by a user
func (s *ExpenseServiceImpl) GetUserExpenses(ctx context.Context, userID uuid.UUID) ([]*expense.Expense, error) {
	return s.expenseRepo.ListByPayer(ctx, userID)
}

// GetUserShares retrieves every share held by a user
func (s *ExpenseServiceImpl) GetUserShares(ctx context.Context, userID uuid.UUID) ([]*expense.Share, error) {
	return s.expenseRepo.ListSharesByUser(ctx, userID)
}

// GetUserUnsettledShares retrieves a user's outstanding shares, optionally
// scoped to one group
func (s *ExpenseServiceImpl) GetUserUnsettledShares(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) ([]*expense.Share, error) {
	if groupID != nil {
		return s.expenseRepo.ListUnsettledSharesByGroupAndUser(ctx, *groupID, userID)
	}
	return s.expenseRepo.ListUnsettledSharesByUser(ctx, userID)
}

// SettleShare marks a share as settled. Only the user who owes the share
// may settle it. Settling an already-settled share succeeds without
// changing anything.
func (s *ExpenseServiceImpl) SettleShare(ctx context.Context, shareID, requestedBy uuid.UUID, correlationID string) (*expense.Share, error) {
	sh, err := s.expenseRepo.GetShareByID(ctx, shareID)
	if err != nil {
		return nil, err
	}
	if sh.UserID != requestedBy {
		return nil, expense.ErrNotShareOwner{ShareID: sh.ID, UserID: requestedBy}
	}

	exp, err := s.expenseRepo.GetByID(ctx, sh.ExpenseID)
	if err != nil {
		return nil, err
	}

	if sh.Settled {
		s.logger.Info("Share already settled",
			"share_id", sh.ID.String(),
			"expense_id", sh.ExpenseID.String(),
		)
		return sh, nil
	}

	if err := s.expenseRepo.MarkShareSettled(ctx, shareID); err != nil {
		return nil, err
	}
	sh.Settle()

	s.logger.Info("Share settled",
		"share_id", sh.ID.String(),
		"expense_id", sh.ExpenseID.String(),
		"user_id", sh.UserID.String(),
		"amount", sh.ShareAmount.String(),
	)

	s.publishEvent(ctx, &activity.Event{
		EventID:       uuid.New(),
		Type:          activity.EventShareSettled,
		GroupID:       exp.GroupID,
		ExpenseID:     exp.ID,
		ActorID:       requestedBy,
		Description:   exp.Description,
		Amount:        sh.ShareAmount,
		CorrelationID: correlationID,
		OccurredAt:    time.Now().UTC(),
	})

	return sh, nil
}

// DeleteExpense removes an expense and its shares on behalf of a group member
func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, expenseID, requestedBy uuid.UUID, correlationID string) error {
	exp, err := s.expenseRepo.GetByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.requireMember(ctx, exp.GroupID, requestedBy); err != nil {
		return err
	}

	if err := s.expenseRepo.Delete(ctx, expenseID); err != nil {
		return err
	}

	s.logger.Info("Expense deleted",
		"expense_id", expenseID.String(),
		"group_id", exp.GroupID.String(),
	)

	s.publishEvent(ctx, &activity.Event{
		EventID:       uuid.New(),
		Type:          activity.EventExpenseDeleted,
		GroupID:       exp.GroupID,
		ExpenseID:     exp.ID,
		ActorID:       requestedBy,
		Description:   exp.Description,
		Amount:        exp.Amount,
		CorrelationID: correlationID,
		OccurredAt:    time.Now().UTC(),
	})

	return nil
}

func (s *ExpenseServiceImpl) requireMember(ctx context.Context, groupID, userID uuid.UUID) error {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !g.HasMember(userID) {
		return group.ErrNotMember{GroupID: groupID, UserID: userID}
	}
	return nil
}

// publishEvent sends an activity event, best-effort. A failed publish never
// fails the operation that produced it.
func (s *ExpenseServiceImpl) publishEvent(ctx context.Context, ev *activity.Event) {
	if s.producer == nil {
		return
	}
	if err := s.producer.Publish(ctx, ev.GroupID.String(), ev); err != nil {
		s.logger.Error("Failed to publish activity event",
			"event_id", ev.EventID.String(),
			"type", string(ev.Type),
			"group_id", ev.GroupID.String(),
			"error", err,
		)
	}
}
