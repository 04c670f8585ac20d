package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"partyup/internal/domain"
	"partyup/internal/middleware"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps an error to its HTTP status and writes the standard
// error body. Unclassified errors become a 500 without leaking internals.
func respondError(w http.ResponseWriter, log *logger.Logger, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.WithError(err).Error("Request failed")
		} else {
			log.WithError(err).Debug("Request rejected")
		}
		respondJSON(w, appErr.StatusCode, map[string]string{"error": appErr.Message})
		return
	}

	log.WithError(err).Error("Unhandled error")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// profileFromRequest returns the authenticated profile seated by the auth
// middleware, or an authentication error for unauthenticated requests.
func profileFromRequest(r *http.Request) (*domain.UserProfile, error) {
	profile := middleware.UserFromContext(r.Context())
	if profile == nil {
		return nil, errors.NewAuthenticationError("authentication required")
	}
	return profile, nil
}
