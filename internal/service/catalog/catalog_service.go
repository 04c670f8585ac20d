package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"partyup/internal/domain"
	"partyup/internal/service"
	"partyup/pkg/errors"
	"partyup/pkg/logger"
)

// Service implements the CatalogService interface against an external
// game catalog HTTP API. The catalog is a black box: a free-text name in,
// a list of {id, name, cover} out.
type Service struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewService creates a new catalog service
func NewService(baseURL, apiKey string, logger *logger.Logger) service.CatalogService {
	return &Service{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type searchResponse struct {
	Results []struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		BackgroundImage string `json:"background_image"`
	} `json:"results"`
}

// SearchGames queries the catalog by name
func (s *Service) SearchGames(ctx context.Context, name string) ([]domain.Game, error) {
	s.logger.WithField("query", name).Debug("Searching game catalog")

	endpoint, err := url.Parse(s.baseURL + "/games")
	if err != nil {
		return nil, errors.NewInternalError("Failed to build catalog URL", err)
	}

	params := endpoint.Query()
	params.Set("search", name)
	params.Set("page_size", "20")
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, errors.NewInternalError("Failed to create catalog request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call game catalog")
		return nil, errors.NewExternalError("Failed to search game catalog", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.WithField("status_code", resp.StatusCode).Error("Game catalog returned error")
		return nil, errors.NewExternalError("Game catalog search failed", nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.WithError(err).Error("Failed to decode catalog response")
		return nil, errors.NewExternalError("Failed to decode game catalog response", err)
	}

	games := make([]domain.Game, 0, len(payload.Results))
	for _, result := range payload.Results {
		games = append(games, domain.Game{
			ID:       result.ID,
			Name:     result.Name,
			CoverURL: result.BackgroundImage,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"query":   name,
		"results": len(games),
	}).Debug("Game catalog search completed")

	return games, nil
}
