package daemon

import (
	"encoding/json"
	"net/http"
	"time"

	"git.home.luguber.info/inful/relnotes/internal/build"
	"git.home.luguber.info/inful/relnotes/internal/version"
)

// HealthStatus represents the overall health of the daemon.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// RunSummary is the health view of the latest run of one pipeline.
type RunSummary struct {
	RunID    string       `json:"run_id"`
	Status   build.Status `json:"status"`
	Finished time.Time    `json:"finished"`
	Duration string       `json:"duration"`
	Error    string       `json:"error,omitempty"`
}

// HealthResponse represents the complete health check response.
type HealthResponse struct {
	Status    HealthStatus          `json:"status"`
	Timestamp time.Time             `json:"timestamp"`
	Uptime    string                `json:"uptime"`
	Version   string                `json:"version"`
	Runs      map[string]RunSummary `json:"runs"`
}

// Health summarises the latest runs. Any failed run makes the daemon
// unhealthy; a partial one degraded.
func (d *Daemon) Health() *HealthResponse {
	d.mu.RLock()
	defer d.mu.RUnlock()

	resp := &HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Uptime:    time.Since(d.startTime).Round(time.Second).String(),
		Version:   version.Resolved(),
		Runs:      make(map[string]RunSummary, len(d.last)),
	}
	for kind, sum := range d.last {
		resp.Runs[string(kind)] = sum
		switch sum.Status {
		case build.StatusFailed:
			resp.Status = HealthStatusUnhealthy
		case build.StatusPartial:
			if resp.Status == HealthStatusHealthy {
				resp.Status = HealthStatusDegraded
			}
		}
	}
	return resp
}

func (d *Daemon) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := d.Health()
	w.Header().Set("Content-Type", "application/json")
	if resp.Status == HealthStatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
