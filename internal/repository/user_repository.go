package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"partyup/internal/domain"
	"partyup/pkg/database"
)

type UserRepository struct {
	db *database.PostgresDB
}

func NewUserRepository(db *database.PostgresDB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertUser records the identity from a validated token. Called before any
// write that references the user so foreign keys always resolve; username
// and avatar refresh on every call.
func (r *UserRepository) UpsertUser(ctx context.Context, profile *domain.UserProfile) (*domain.User, error) {
	query := `
		INSERT INTO users (id, username, avatar)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			username = EXCLUDED.username,
			avatar = EXCLUDED.avatar
		RETURNING id, username, avatar, created_at
	`

	var user domain.User
	err := r.db.Pool.QueryRow(ctx, query,
		profile.ID,
		profile.Username,
		profile.Avatar,
	).Scan(&user.ID, &user.Username, &user.Avatar, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &user, nil
}

// GetUserByID returns a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT id, username, avatar, created_at FROM users WHERE id = $1`

	var user domain.User
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.Avatar,
		&user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
