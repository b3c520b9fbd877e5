package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/splitshare-service/internal/domain/group"
	"github.com/splitshare-service/internal/platform/persistence"
)

// GroupRepository implements the group.Repository interface for PostgreSQL
type GroupRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewGroupRepository creates a new PostgreSQL group repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewGroupRepository(logger *slog.Logger, db *persistence.PostgresDB) group.Repository {
	return &GroupRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new group together with its initial member rows.
func (r *GroupRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO groups (id, name, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.querier.Exec(ctx, query,
		g.ID,
		g.Name,
		g.Description,
		g.CreatedByID,
		g.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create group", "error", err)
		return fmt.Errorf("failed to create group: %w", err)
	}

	memberQuery := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	for _, memberID := range g.MemberIDs {
		if _, err := r.querier.Exec(ctx, memberQuery, g.ID, memberID); err != nil {
			r.logger.Error("Failed to add initial group member", "group_id", g.ID.String(), "user_id", memberID.String(), "error", err)
			return fmt.Errorf("failed to add initial group member: %w", err)
		}
	}

	return nil
}

// GetByID retrieves a group by its ID, including the full member set
func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	query := `
		SELECT id, name, description, created_by, created_at
		FROM groups
		WHERE id = $1
	`

	var g group.Group
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.CreatedByID,
		&g.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, group.ErrGroupNotFound{GroupID: id}
		}
		r.logger.Error("Failed to get group", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := r.listMemberIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	g.MemberIDs = members

	return &g, nil
}

// ListByMember retrieves every group the user belongs to, newest first
func (r *GroupRepository) ListByMember(ctx context.Context, userID uuid.UUID) ([]*group.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.created_by, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to list groups by member", "user_id", userID.String(), "error", err)
		return nil, fmt.Errorf("failed to list groups by member: %w", err)
	}
	defer rows.Close()

	var groups []*group.Group
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedByID, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group rows: %w", err)
	}

	for _, g := range groups {
		members, err := r.listMemberIDs(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		g.MemberIDs = members
	}

	return groups, nil
}

// AddMember records a membership. Adding an existing member returns
// group.ErrAlreadyMember.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
	`

	_, err := r.querier.Exec(ctx, query, groupID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return group.ErrAlreadyMember{GroupID: groupID, UserID: userID}
		}
		r.logger.Error("Failed to add group member", "group_id", groupID.String(), "user_id", userID.String(), "error", err)
		return fmt.Errorf("failed to add group member: %w", err)
	}

	return nil
}

// RemoveMember removes a membership. Removing a non-member returns
// group.ErrNotMember.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `
		DELETE FROM group_members
		WHERE group_id = $1 AND user_id = $2
	`

	result, err := r.querier.Exec(ctx, query, groupID, userID)
	if err != nil {
		r.logger.Error("Failed to remove group member", "group_id", groupID.String(), "user_id", userID.String(), "error", err)
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return group.ErrNotMember{GroupID: groupID, UserID: userID}
	}

	return nil
}

// Delete removes a group. Member rows and expenses cascade at the schema level.
func (r *GroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM groups
		WHERE id = $1
	`

	result, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete group", "id", id.String(), "error", err)
		return fmt.Errorf("failed to delete group: %w", err)
	}

	if result.RowsAffected() == 0 {
		return group.ErrGroupNotFound{GroupID: id}
	}

	return nil
}

func (r *GroupRepository) listMemberIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY joined_at
	`

	rows, err := r.querier.Query(ctx, query, groupID)
	if err != nil {
		r.logger.Error("Failed to list group members", "group_id", groupID.String(), "error", err)
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		members = append(members, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group member rows: %w", err)
	}

	return members, nil
}
