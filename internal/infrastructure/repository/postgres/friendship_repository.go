package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/friendship"
	qb "github.com/astorrey/TackleHogs/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type friendshipTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	UserID       string     `db:"user_id"`
	FriendUserID string     `db:"friend_user_id"`
	Status       string     `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type friendshipInsertModel struct {
	PublicID     string `db:"public_id"`
	UserID       string `db:"user_id"`
	FriendUserID string `db:"friend_user_id"`
	Status       string `db:"status"`
}

type FriendshipRepository struct {
	db *sqlx.DB
}

func NewFriendshipRepository(db *sqlx.DB) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

func (r *FriendshipRepository) Create(ctx context.Context, f friendship.Friendship) error {
	insertModel := friendshipInsertModel{
		PublicID:     f.ID,
		UserID:       f.UserID,
		FriendUserID: f.FriendID,
		Status:       string(f.Status),
	}
	query, args, err := qb.InsertModel("friendships", insertModel, "")
	if err != nil {
		return fmt.Errorf("build create friendship query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create friendship: %w", err)
	}

	return nil
}

func (r *FriendshipRepository) UpdateStatus(ctx context.Context, friendshipID string, status friendship.Status) error {
	query, args, err := qb.Update("friendships").
		Set("status", string(status)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", friendshipID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update friendship status query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update friendship status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update friendship status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update friendship status: not found")
	}

	return nil
}

func (r *FriendshipRepository) Get(ctx context.Context, userID, friendID string) (friendship.Friendship, bool, error) {
	query, args, err := qb.Select("*").From("friendships").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("friend_user_id", friendID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return friendship.Friendship{}, false, fmt.Errorf("build get friendship query: %w", err)
	}

	var row friendshipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return friendship.Friendship{}, false, nil
		}
		return friendship.Friendship{}, false, fmt.Errorf("get friendship: %w", err)
	}

	return friendshipFromRow(row), true, nil
}

func (r *FriendshipRepository) ListAcceptedFriendIDs(ctx context.Context, userID string) ([]string, error) {
	// Edges are directed; either side of an accepted edge counts as a friend.
	const query = `SELECT CASE WHEN user_id = $1 THEN friend_user_id ELSE user_id END AS friend_id
FROM friendships
WHERE (user_id = $1 OR friend_user_id = $1)
  AND status = $2
  AND deleted_at IS NULL
ORDER BY friend_id`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, userID, string(friendship.StatusAccepted)); err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}

	return ids, nil
}

func friendshipFromRow(row friendshipTableModel) friendship.Friendship {
	return friendship.Friendship{
		ID:        row.PublicID,
		UserID:    row.UserID,
		FriendID:  row.FriendUserID,
		Status:    friendship.Status(row.Status),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
