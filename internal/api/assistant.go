package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/p-shah256/bridge/pkg/errors"
	"github.com/p-shah256/bridge/pkg/types"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string          `json:"message"`
		Context json.RawMessage `json:"context,omitempty"`
	}
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondError(w, r, errors.ErrBadRequest("Message is required"))
		return
	}

	reply, err := s.assistant.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		slog.Error("chat failed", "error", err)
		s.respondError(w, r, errors.ErrLLMProcessing("Error processing chat: "+err.Error()))
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{
		"message":   reply,
		"timestamp": s.now().UTC().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleGenerateDocument(w http.ResponseWriter, r *http.Request) {
	var req types.DocumentRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}

	profile, err := s.store.GetUserProfile(r.Context(), req.UserID)
	if err != nil {
		s.fail(w, r, err, profileNotFound)
		return
	}

	var job *types.JobOpportunity
	if req.JobID != "" {
		if job, err = s.store.GetJobOpportunity(r.Context(), req.JobID); err != nil {
			s.fail(w, r, err, jobNotFound)
			return
		}
	}

	content, err := s.assistant.GenerateDocument(r.Context(), req.Type, profile, job)
	if err != nil {
		slog.Error("document generation failed", "type", req.Type, "error", err)
		s.respondError(w, r, errors.ErrLLMProcessing("Error generating document: "+err.Error()))
		return
	}

	RespondWithJSON(w, http.StatusOK, types.GeneratedDocument{
		Type:        req.Type,
		Content:     content,
		UserID:      req.UserID,
		JobID:       req.JobID,
		GeneratedAt: s.now().UTC(),
	})
}
