package domain

// Game is a catalog entry resolved from the external game search
type Game struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CoverURL string `json:"cover,omitempty"`
}

// GameSearchRequest is the body of POST /api/games
type GameSearchRequest struct {
	Name string `json:"name"`
}
