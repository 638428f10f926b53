package api

import (
	"net/http"
	"strings"

	"github.com/p-shah256/bridge/pkg/errors"
)

func (s *Server) handleMatchJobs(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		s.respondError(w, r, errors.ErrBadRequest("User ID is required"))
		return
	}

	matches, err := s.matcher.MatchJobs(r.Context(), req.UserID)
	if err != nil {
		s.fail(w, r, err, profileNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := s.matcher.ListMatches(r.Context(), r.PathValue("userId"))
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, matches)
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	match, err := s.matcher.GetMatch(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, "Match not found")
		return
	}
	RespondWithJSON(w, http.StatusOK, match)
}
