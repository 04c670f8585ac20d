package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"partyup/internal/domain"
	"partyup/internal/service"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

const (
	partyNameMinLen = 2
	partyNameMaxLen = 100
	lookingForMax   = 100
)

// PartyHandler handles party endpoints
type PartyHandler struct {
	partyService *service.PartyService
	logger       *logger.Logger
}

// NewPartyHandler creates a new party handler
func NewPartyHandler(partyService *service.PartyService, logger *logger.Logger) *PartyHandler {
	return &PartyHandler{
		partyService: partyService,
		logger:       logger,
	}
}

// List handles GET /api/parties
func (h *PartyHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := domain.PartyFilter{
		Range:         domain.ParseTimeRange(query.Get("range")),
		ShowFilled:    parseBoolParam(query.Get("show_filled")),
		ShowCompleted: parseBoolParam(query.Get("show_completed")),
	}

	parties, err := h.partyService.ListParties(r.Context(), filter)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, parties)
}

// Get handles GET /api/parties/{id}
func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := chi.URLParam(r, "id")

	party, err := h.partyService.GetParty(r.Context(), partyID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, party)
}

// Create handles POST /api/parties
func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req domain.PartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("invalid request body"))
		return
	}

	if err := validatePartyRequest(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	party, err := h.partyService.CreateParty(r.Context(), profile, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, party)
}

// Update handles PATCH /api/parties/{id}
func (h *PartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	partyID := chi.URLParam(r, "id")

	var req domain.PartyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("invalid request body"))
		return
	}

	if err := validatePartyRequest(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	party, err := h.partyService.UpdateParty(r.Context(), profile, partyID, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, party)
}

// Delete handles DELETE /api/parties/{id}
func (h *PartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	partyID := chi.URLParam(r, "id")

	if err := h.partyService.DeleteParty(r.Context(), profile, partyID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "party deleted"})
}

// Join handles POST /api/parties/{id}/join
func (h *PartyHandler) Join(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	partyID := chi.URLParam(r, "id")

	party, err := h.partyService.JoinParty(r.Context(), profile, partyID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, party)
}

// Leave handles POST /api/parties/{id}/leave
func (h *PartyHandler) Leave(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	partyID := chi.URLParam(r, "id")

	party, err := h.partyService.LeaveParty(r.Context(), profile, partyID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, party)
}

// validatePartyRequest checks the shared create/edit body
func validatePartyRequest(req *domain.PartyRequest) error {
	name := strings.TrimSpace(req.Name)
	if len(name) < partyNameMinLen || len(name) > partyNameMaxLen {
		return errors.NewValidationError("party name must be between 2 and 100 characters")
	}
	req.Name = name

	if req.Game.ID == 0 || strings.TrimSpace(req.Game.Name) == "" {
		return errors.NewValidationError("a game must be selected")
	}

	if req.LookingFor < 1 || req.LookingFor > lookingForMax {
		return errors.NewValidationError("lookingFor must be between 1 and 100")
	}

	if req.Date.IsZero() {
		return errors.NewValidationError("a date is required")
	}

	if strings.TrimSpace(req.Details) == "" {
		return errors.NewValidationError("details are required")
	}

	return nil
}

// parseBoolParam treats "true" and "1" as true, everything else as false
func parseBoolParam(value string) bool {
	return value == "true" || value == "1"
}
