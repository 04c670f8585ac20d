package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"partyup/internal/domain"
	"partyup/pkg/database"
)

type GameRepository struct {
	db *database.PostgresDB
}

func NewGameRepository(db *database.PostgresDB) *GameRepository {
	return &GameRepository{db: db}
}

// UpsertGame stores a catalog entry locally so parties and comments can
// reference it after the external search result has gone away
func (r *GameRepository) UpsertGame(ctx context.Context, game *domain.Game) error {
	query := `
		INSERT INTO games (id, name, cover_url)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			cover_url = EXCLUDED.cover_url
	`

	if _, err := r.db.Pool.Exec(ctx, query, game.ID, game.Name, game.CoverURL); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return nil
}

// GetGameByID returns a locally stored catalog entry
func (r *GameRepository) GetGameByID(ctx context.Context, gameID int64) (*domain.Game, error) {
	query := `SELECT id, name, cover_url FROM games WHERE id = $1`

	var game domain.Game
	err := r.db.Pool.QueryRow(ctx, query, gameID).Scan(&game.ID, &game.Name, &game.CoverURL)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return &game, nil
}
