package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"partyup/internal/domain"
	"partyup/internal/service"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

// GameHandler handles game catalog endpoints
type GameHandler struct {
	gameService *service.GameService
	logger      *logger.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *service.GameService, logger *logger.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// Search handles POST /api/games
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req domain.GameSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		respondError(w, h.logger, errors.NewValidationError("a game name is required"))
		return
	}

	games, err := h.gameService.SearchGames(r.Context(), req.Name)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	if games == nil {
		games = []domain.Game{}
	}

	respondJSON(w, http.StatusOK, games)
}
