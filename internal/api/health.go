package api

import (
	"net/http"
	"slices"
	"strings"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	endpoints := make([]string, 0)
	for _, rt := range s.routes() {
		for method := range rt.handlers {
			endpoints = append(endpoints, method+" "+strings.TrimSuffix(rt.pattern, "{$}"))
		}
	}
	slices.Sort(endpoints)

	RespondWithJSON(w, http.StatusOK, map[string]any{
		"service":   "bridge",
		"status":    "running",
		"endpoints": endpoints,
	})
}
