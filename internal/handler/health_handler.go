package handler

import (
	"net/http"
	"time"

	"partyup/pkg/database"
	"partyup/pkg/logger"
	"partyup/pkg/redis"
)

// HealthHandler reports service and dependency status
type HealthHandler struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	logger      *logger.Logger
	startedAt   time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		redisClient: redisClient,
		logger:      logger,
		startedAt:   time.Now(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := http.StatusOK

	checks := map[string]string{}

	if err := h.db.Health(ctx); err != nil {
		h.logger.WithError(err).Error("Database health check failed")
		checks["database"] = "unhealthy"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "healthy"
	}

	if h.redisClient != nil {
		if err := h.redisClient.Health(ctx); err != nil {
			h.logger.WithError(err).Warn("Redis health check failed")
			checks["redis"] = "unhealthy"
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	body := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
		"checks": checks,
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}

	respondJSON(w, status, body)
}
