package api

import (
	"net/http"

	"github.com/p-shah256/bridge/internal/analytics"
	"github.com/p-shah256/bridge/pkg/types"
)

// handleJobStats reports over active jobs only.
func (s *Server) handleJobStats(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.GetJobOpportunities(r.Context(), types.JobFilter{Active: types.BoolPtr(true)})
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, analytics.JobStats(jobs))
}
