package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"partyup/internal/domain"
	"partyup/internal/service"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

// Service implements the AuthService interface
type Service struct {
	jwtSecret string
	logger    *logger.Logger
}

// NewService creates a new auth service
func NewService(jwtSecret string, logger *logger.Logger) service.AuthService {
	return &Service{
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// ValidateToken validates an HS256 bearer token and extracts the user
// identity. Tokens are issued by the external auth collaborator; this
// service only verifies the signature and reads the claims.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.UserProfile, error) {
	if s.jwtSecret == "" {
		s.logger.Error("JWT_SECRET not configured")
		return nil, errors.NewAuthenticationError("Token validation not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to parse/validate token")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	if !token.Valid {
		s.logger.Error("Token is not valid")
		return nil, errors.NewAuthenticationError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		s.logger.Error("Failed to extract token claims")
		return nil, errors.NewAuthenticationError("Invalid token")
	}

	profile := &domain.UserProfile{
		ID:       getStringClaim(claims, "sub"),
		Username: getStringClaim(claims, "username"),
		Avatar:   getStringClaim(claims, "avatar"),
	}

	// Some issuers nest display fields under user_metadata
	if meta, ok := claims["user_metadata"].(map[string]interface{}); ok {
		if profile.Username == "" {
			profile.Username = getStringClaim(meta, "username")
		}
		if profile.Avatar == "" {
			profile.Avatar = getStringClaim(meta, "avatar_url")
		}
	}

	if profile.ID == "" {
		s.logger.Error("No user identifier found in token")
		return nil, errors.NewAuthenticationError("Invalid token: no user identifier")
	}
	if profile.Username == "" {
		profile.Username = profile.ID
	}

	s.logger.WithField("user_id", profile.ID).Debug("Token validated successfully")
	return profile, nil
}

func getStringClaim(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
