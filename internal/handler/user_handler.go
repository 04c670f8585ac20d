package handler

import (
	"net/http"

	"partyup/pkg/logger"
)

// UserHandler handles user endpoints
type UserHandler struct {
	logger *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(logger *logger.Logger) *UserHandler {
	return &UserHandler{logger: logger}
}

// Me handles GET /api/users/me, echoing the profile carried by the token
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
