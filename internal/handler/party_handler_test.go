package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyup/internal/domain"
	"partyup/internal/middleware"
	"partyup/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func validPartyRequest() domain.PartyRequest {
	return domain.PartyRequest{
		Name:       "Heist night",
		Game:       domain.Game{ID: 3498, Name: "Grand Theft Auto V"},
		LookingFor: 3,
		Date:       time.Now().Add(48 * time.Hour),
		Details:    "Mics required",
	}
}

func TestValidatePartyRequest(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(req *domain.PartyRequest)
		expectError string
	}{
		{
			name:   "Valid request",
			mutate: func(req *domain.PartyRequest) {},
		},
		{
			name: "Name trimmed before length check",
			mutate: func(req *domain.PartyRequest) {
				req.Name = "  ok  "
			},
		},
		{
			name: "Name too short",
			mutate: func(req *domain.PartyRequest) {
				req.Name = "x"
			},
			expectError: "party name must be between 2 and 100 characters",
		},
		{
			name: "Name too long",
			mutate: func(req *domain.PartyRequest) {
				req.Name = strings.Repeat("a", 101)
			},
			expectError: "party name must be between 2 and 100 characters",
		},
		{
			name: "Whitespace-only name",
			mutate: func(req *domain.PartyRequest) {
				req.Name = "     "
			},
			expectError: "party name must be between 2 and 100 characters",
		},
		{
			name: "Missing game",
			mutate: func(req *domain.PartyRequest) {
				req.Game = domain.Game{}
			},
			expectError: "a game must be selected",
		},
		{
			name: "Game without name",
			mutate: func(req *domain.PartyRequest) {
				req.Game.Name = ""
			},
			expectError: "a game must be selected",
		},
		{
			name: "LookingFor zero",
			mutate: func(req *domain.PartyRequest) {
				req.LookingFor = 0
			},
			expectError: "lookingFor must be between 1 and 100",
		},
		{
			name: "LookingFor too large",
			mutate: func(req *domain.PartyRequest) {
				req.LookingFor = 101
			},
			expectError: "lookingFor must be between 1 and 100",
		},
		{
			name: "Missing date",
			mutate: func(req *domain.PartyRequest) {
				req.Date = time.Time{}
			},
			expectError: "a date is required",
		},
		{
			name: "Blank details",
			mutate: func(req *domain.PartyRequest) {
				req.Details = "   "
			},
			expectError: "details are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPartyRequest()
			tt.mutate(&req)

			err := validatePartyRequest(&req)
			if tt.expectError == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
			}
		})
	}
}

func TestValidatePartyRequest_TrimsName(t *testing.T) {
	req := validPartyRequest()
	req.Name = "  Heist night  "

	require.NoError(t, validatePartyRequest(&req))
	assert.Equal(t, "Heist night", req.Name)
}

func TestParseBoolParam(t *testing.T) {
	assert.True(t, parseBoolParam("true"))
	assert.True(t, parseBoolParam("1"))
	assert.False(t, parseBoolParam("false"))
	assert.False(t, parseBoolParam("yes"))
	assert.False(t, parseBoolParam(""))
}

func TestPartyHandler_Create_Unauthenticated(t *testing.T) {
	h := NewPartyHandler(nil, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/parties", strings.NewReader("{}"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestPartyHandler_Create_InvalidBody(t *testing.T) {
	h := NewPartyHandler(nil, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/parties", strings.NewReader("{not json"))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &domain.UserProfile{ID: "user-1", Username: "NightOwl"})
	rec := httptest.NewRecorder()

	h.Create(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestPartyHandler_Create_ValidationError(t *testing.T) {
	h := NewPartyHandler(nil, testLogger(t))

	body := `{"name":"x","lookingFor":3,"details":"d"}`
	req := httptest.NewRequest(http.MethodPost, "/api/parties", strings.NewReader(body))
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, &domain.UserProfile{ID: "user-1", Username: "NightOwl"})
	rec := httptest.NewRecorder()

	h.Create(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "party name must be between 2 and 100 characters")
}
