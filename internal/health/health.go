// Package health serves liveness and readiness endpoints for container probes.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Pinger is a dependency whose connectivity gates readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Config holds the configuration for a Checker.
type Config struct {
	ServiceName  string
	Version      string
	Logger       *logrus.Logger
	PingTimeout  time.Duration
	Dependencies map[string]Pinger
}

// Checker answers health probes.
type Checker struct {
	serviceName string
	version     string
	logger      *logrus.Logger
	pingTimeout time.Duration
	deps        map[string]Pinger
	now         func() time.Time

	mu    sync.RWMutex
	ready bool
}

// NewChecker creates a checker. It reports not ready until SetReady(true).
func NewChecker(cfg Config) *Checker {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	deps := make(map[string]Pinger, len(cfg.Dependencies))
	for name, p := range cfg.Dependencies {
		if p != nil {
			deps[name] = p
		}
	}
	return &Checker{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		logger:      cfg.Logger,
		pingTimeout: timeout,
		deps:        deps,
		now:         time.Now,
	}
}

// SetReady marks the service as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns whether the service is ready.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Register mounts /health, /live and /ready on r.
func (c *Checker) Register(r chi.Router) {
	r.Get("/health", c.HandleHealth)
	r.Get("/live", c.HandleLive)
	r.Get("/ready", c.HandleReady)
}

// HandleHealth reports basic process health.
func (c *Checker) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   c.serviceName,
		Timestamp: c.now().UTC().Format(time.RFC3339),
		Version:   c.version,
	})
}

// HandleLive is the liveness probe.
func (c *Checker) HandleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: c.serviceName})
}

// HandleReady pings every dependency and fails when any of them, or the
// ready flag, is down.
func (c *Checker) HandleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string, len(c.deps)+1)
	healthy := true

	if c.IsReady() {
		checks["service"] = "ok"
	} else {
		healthy = false
		checks["service"] = "not_ready"
	}

	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), c.pingTimeout)
		err := c.deps[name].Ping(ctx)
		cancel()
		if err != nil {
			healthy = false
			checks[name] = fmt.Sprintf("error: %v", err)
			if c.logger != nil {
				c.logger.WithError(err).WithField("dependency", name).Warn("Readiness check failed")
			}
			continue
		}
		checks[name] = "ok"
	}

	resp := ReadyResponse{
		Status:   "ok",
		Service:  c.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
