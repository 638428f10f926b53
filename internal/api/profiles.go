package api

import (
	"net/http"

	"github.com/p-shah256/bridge/internal/patch"
	"github.com/p-shah256/bridge/pkg/types"
)

const profileNotFound = "User profile not found"

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.store.GetUserProfile(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, profileNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, profile)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var in types.NewUserProfile
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err, "")
		return
	}
	if err := in.Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}

	profile, err := s.store.CreateUserProfile(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusCreated, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	profile, err := s.store.UpdateUserProfile(r.Context(), r.PathValue("id"), func(p *types.UserProfile) error {
		if _, err := patch.Apply(p, body, "id", "createdAt"); err != nil {
			return err
		}
		return p.Validate()
	})
	if err != nil {
		s.fail(w, r, err, profileNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, profile)
}
