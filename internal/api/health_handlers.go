package api

import (
	"net/http"

	"github.com/arens/quizdeck/internal/logger"
)

// handleHealth reports liveness plus database connectivity.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			logger.FromContext(r.Context()).Warn("health check failed - database: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
