package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"campaignlens/internal/infrastructure"
)

// HealthStatus is the payload returned by the health endpoints.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// HealthService reports process liveness and readiness. The dashboard holds
// no external dependencies, so readiness flips once startup completes.
type HealthService struct {
	logger  *slog.Logger
	started time.Time
	ready   atomic.Bool
}

// NewHealthService creates a health service anchored at startup time.
func NewHealthService(logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		logger:  logger.With(slog.String("service", "health")),
		started: time.Now(),
	}
}

// SetReady marks the service as ready to accept traffic.
func (s *HealthService) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Liveness reports whether the process is alive.
func (s *HealthService) Liveness(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:  "ok",
		Version: infrastructure.ServiceVersion,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	}
}

// Readiness reports whether the service is ready to accept uploads.
func (s *HealthService) Readiness(ctx context.Context) (HealthStatus, bool) {
	status := HealthStatus{
		Status:  "ready",
		Version: infrastructure.ServiceVersion,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	}
	if !s.ready.Load() {
		status.Status = "starting"
		return status, false
	}
	return status, true
}
