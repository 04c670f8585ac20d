package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyup/internal/domain"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

type stubAuthService struct {
	profile *domain.UserProfile
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.UserProfile, error) {
	if token == "valid-token" && s.profile != nil {
		return s.profile, nil
	}
	return nil, errors.NewAuthenticationError("Invalid or expired token")
}

func testLogger(t *testing.T) *logger.Logger {
	log, err := logger.New("error")
	require.NoError(t, err)
	return log
}

func echoProfileHandler(seen **domain.UserProfile) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	auth := &stubAuthService{profile: &domain.UserProfile{ID: "user-1", Username: "NightOwl"}}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectProfile  bool
	}{
		{
			name:           "Valid token",
			header:         "Bearer valid-token",
			expectedStatus: http.StatusOK,
			expectProfile:  true,
		},
		{
			name:           "Missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Empty token",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			header:         "Bearer bad-token",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.UserProfile
			handler := Auth(auth, testLogger(t))(echoProfileHandler(&seen))

			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectProfile {
				require.NotNil(t, seen)
				assert.Equal(t, "user-1", seen.ID)
			} else {
				assert.Nil(t, seen)
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	auth := &stubAuthService{profile: &domain.UserProfile{ID: "user-1", Username: "NightOwl"}}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectProfile  bool
	}{
		{
			name:           "No header passes through anonymously",
			header:         "",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid token seats the profile",
			header:         "Bearer valid-token",
			expectedStatus: http.StatusOK,
			expectProfile:  true,
		},
		{
			name:           "Invalid token is still rejected",
			header:         "Bearer bad-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme is rejected",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *domain.UserProfile
			handler := OptionalAuth(auth, testLogger(t))(echoProfileHandler(&seen))

			req := httptest.NewRequest(http.MethodGet, "/api/parties", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectProfile {
				require.NotNil(t, seen)
				assert.Equal(t, "user-1", seen.ID)
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}
