package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"partyup/internal/domain"
	"partyup/internal/service"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

const commentMaxLen = 500

// CommentHandler handles comment and like endpoints
type CommentHandler struct {
	commentService *service.CommentService
	logger         *logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(commentService *service.CommentService, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// List handles GET /api/comments?party_id=...|game_id=...&sort=&limit=&all=
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	opts := service.CommentListOptions{
		PartyID: query.Get("party_id"),
		Sort:    domain.ParseCommentSort(query.Get("sort")),
		ShowAll: parseBoolParam(query.Get("all")),
	}

	if rawGameID := query.Get("game_id"); rawGameID != "" {
		gameID, err := strconv.ParseInt(rawGameID, 10, 64)
		if err != nil {
			respondError(w, h.logger, errors.NewValidationError("game_id must be an integer"))
			return
		}
		opts.GameID = gameID
	}

	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit < 1 {
			respondError(w, h.logger, errors.NewValidationError("limit must be a positive integer"))
			return
		}
		opts.Limit = limit
	}

	comments, err := h.commentService.ListComments(r.Context(), opts)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	var req domain.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, errors.NewValidationError("invalid request body"))
		return
	}

	if err := validateCommentRequest(&req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	comment, err := h.commentService.CreateComment(r.Context(), profile, &req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// Delete handles DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	commentID := chi.URLParam(r, "id")

	if err := h.commentService.DeleteComment(r.Context(), profile, commentID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

// ToggleLike handles POST /api/comments/{id}/like
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	commentID := chi.URLParam(r, "id")

	result, err := h.commentService.ToggleLike(r.Context(), profile, commentID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetLikes handles GET /api/comments/likes. A failure here only degrades
// which hearts render filled, so the client gets an empty list, not an error.
func (h *CommentHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	profile, err := profileFromRequest(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	likedIDs, err := h.commentService.GetLikedCommentIDs(r.Context(), profile)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load liked comment ids")
		respondJSON(w, http.StatusOK, []string{})
		return
	}
	if likedIDs == nil {
		likedIDs = []string{}
	}

	respondJSON(w, http.StatusOK, likedIDs)
}

// validateCommentRequest checks the comment body and its context reference
func validateCommentRequest(req *domain.CommentRequest) error {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return errors.NewValidationError("comment text is required")
	}
	if len(text) > commentMaxLen {
		return errors.NewValidationError("comment text must be at most 500 characters")
	}
	req.Text = text

	hasParty := req.PartyID != ""
	hasGame := req.GameID != 0
	if hasParty == hasGame {
		return errors.NewValidationError("exactly one of partyId and gameId is required")
	}

	return nil
}
