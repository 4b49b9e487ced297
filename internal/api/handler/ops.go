// Package handler provides HTTP handlers for the toll route API.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tollroute/tollroute/internal/api/models"
	"github.com/tollroute/tollroute/internal/api/response"
	"github.com/tollroute/tollroute/internal/provider/resilience"
	"github.com/tollroute/tollroute/internal/routing"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	routing   *routing.Service
	db        *pgxpool.Pool
}

// OpsHandlerConfig holds the dependencies of the ops handler. Registry,
// Routing, and DB are optional; missing ones are simply omitted from the
// status report.
type OpsHandlerConfig struct {
	Version   string
	BuildTime string
	Registry  *resilience.Registry
	Routing   *routing.Service
	DB        *pgxpool.Pool
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsHandlerConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		registry:  cfg.Registry,
		routing:   cfg.Routing,
		db:        cfg.DB,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// is ready when its database, if configured, answers a ping.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			health.Status = models.HealthStatusFail
			health.Details = map[string]interface{}{"database": err.Error()}
			response.JSON(w, r, http.StatusServiceUnavailable, health)
			return
		}
	}

	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
// Requires an operator token with the ops:read scope.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
	}

	if h.db != nil {
		sub := models.SubsystemStatus{Name: "database", Status: models.HealthStatusOK}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		if err := h.db.Ping(ctx); err != nil {
			detail := err.Error()
			sub.Status = models.HealthStatusFail
			sub.Detail = &detail
			status.Status = models.HealthStatusDegraded
			status.ActiveDegradationFlags = append(status.ActiveDegradationFlags, "database_unreachable")
		}
		cancel()
		status.Subsystems = append(status.Subsystems, sub)
	}

	if h.routing != nil {
		stats := h.routing.CacheStats()
		status.DirectionsCache = &models.DirectionsCacheStats{
			TotalEntries: stats.TotalEntries,
			FreshEntries: stats.FreshEntries,
			StaleEntries: stats.StaleEntries,
			Provider:     stats.Provider,
		}
	}

	if h.registry != nil {
		for _, health := range h.registry.GetAllHealth() {
			status.Providers = append(status.Providers, providerStatus(health))
			if health.IsUnhealthy() && status.Status == models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
				status.ActiveDegradationFlags = append(status.ActiveDegradationFlags, "provider_circuit_open")
			}
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(h *resilience.ProviderHealth) models.ProviderStatus {
	ps := models.ProviderStatus{
		Provider: h.Name,
		Status:   models.HealthStatusOK,
	}
	switch {
	case h.IsUnhealthy():
		ps.Status = models.HealthStatusFail
	case h.IsDegraded():
		ps.Status = models.HealthStatusDegraded
	}
	if h.LastSuccessAt != nil {
		t := models.Timestamp(*h.LastSuccessAt)
		ps.LastSuccessAt = &t
	}
	if h.LastFailureAt != nil {
		t := models.Timestamp(*h.LastFailureAt)
		ps.LastFailureAt = &t
	}
	if h.LastError != "" {
		msg := h.LastError
		ps.Message = &msg
	}
	return ps
}
