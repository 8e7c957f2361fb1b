package metrics

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the registry over HTTP: the Prometheus collectors on
// /metrics and the snapshot projection on /summary.
type Server struct {
	server *http.Server
	addr   string
}

// NewServer builds a metrics HTTP server backed by reg's Prometheus
// collectors (via /metrics) and its Snapshot (via /summary).
func NewServer(addr string, reg *Registry) *Server {
	if addr == "" {
		addr = ":9090"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/summary", func(w http.ResponseWriter, r *http.Request) {
		snap := reg.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tasks":    categoryDocument(snap.Tasks),
			"requests": categoryDocument(snap.Requests),
		})
	})

	return &Server{
		addr: addr,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// categoryDocument flattens one counter family into the key-value shape the
// endpoint serves, including the derived successRatePercent.
func categoryDocument(c CategorySnapshot) map[string]any {
	return map[string]any{
		"active":              c.Active,
		"completed":           c.Completed,
		"failed":              c.Failed,
		"totalDurationMillis": c.TotalDurationMillis,
		"averageMillis":       c.Average,
		"successRatePercent":  c.SuccessRatePercent(),
	}
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
