package api

import (
	"net/http"
	"strings"

	"github.com/p-shah256/bridge/internal/cleaner"
	"github.com/p-shah256/bridge/internal/patch"
	"github.com/p-shah256/bridge/pkg/types"
)

const jobNotFound = "Job not found"

var clean = cleaner.NewCleaner()

// handleListJobs serves search when ?search is set, otherwise the
// country/industry/active filters. Any non-empty active other than "true"
// means inactive.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		jobs []types.JobOpportunity
		err  error
	)
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		jobs, err = s.store.SearchJobOpportunities(r.Context(), search)
	} else {
		filter := types.JobFilter{
			Country:  q.Get("country"),
			Industry: q.Get("industry"),
		}
		if active := q.Get("active"); active != "" {
			filter.Active = types.BoolPtr(active == "true")
		}
		jobs, err = s.store.GetJobOpportunities(r.Context(), filter)
	}
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.GetJobOpportunity(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err, jobNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, job)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in types.NewJobOpportunity
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err, "")
		return
	}
	in.Description = clean.CleanHTML(in.Description)
	if err := in.Validate(); err != nil {
		s.fail(w, r, err, "")
		return
	}

	job, err := s.store.CreateJobOpportunity(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}
	RespondWithJSON(w, http.StatusCreated, job)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	job, err := s.store.UpdateJobOpportunity(r.Context(), r.PathValue("id"), func(j *types.JobOpportunity) error {
		applied, err := patch.Apply(j, body, "id", "createdAt")
		if err != nil {
			return err
		}
		for _, k := range applied {
			if k == "description" {
				j.Description = clean.CleanHTML(j.Description)
			}
		}
		return j.Validate()
	})
	if err != nil {
		s.fail(w, r, err, jobNotFound)
		return
	}
	RespondWithJSON(w, http.StatusOK, job)
}
