package service

import (
	"context"

	"partyup/internal/domain"
)

// AuthService validates bearer tokens issued by the external auth
// collaborator. The backend never sees credentials, only tokens.
type AuthService interface {
	ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error)
}

// CatalogService searches the external game catalog by free-text name
type CatalogService interface {
	SearchGames(ctx context.Context, name string) ([]domain.Game, error)
}

// GameStore looks up locally stored catalog entries. Satisfied by the game
// repository; comments reference games through it so a game-scoped comment
// cannot point at an entry that was never stored.
type GameStore interface {
	GetGameByID(ctx context.Context, gameID int64) (*domain.Game, error)
}

// Services holds all service dependencies
type Services struct {
	Auth    AuthService
	Catalog CatalogService
}
