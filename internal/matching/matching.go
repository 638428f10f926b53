package matching

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/p-shah256/bridge/internal/notify"
	"github.com/p-shah256/bridge/internal/storage"
	"github.com/p-shah256/bridge/pkg/types"
)

const (
	DefaultMaxJobs = 5

	defaultAnalysis           = "AI analysis not available"
	defaultSuccessProbability = 50

	fallbackScore    = 50
	fallbackAnalysis = "Basic compatibility analysis: This job requires review of your qualifications."
)

// Assessor scores a single profile/job pair.
type Assessor interface {
	MatchJob(ctx context.Context, profile *types.UserProfile, job *types.JobOpportunity) (*types.MatchAssessment, error)
}

type Service struct {
	store    storage.Storage
	assessor Assessor
	notifier notify.Notifier
	maxJobs  int
}

func NewService(store storage.Storage, assessor Assessor, notifier notify.Notifier, maxJobs int) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if maxJobs <= 0 {
		maxJobs = DefaultMaxJobs
	}
	return &Service{
		store:    store,
		assessor: assessor,
		notifier: notifier,
		maxJobs:  maxJobs,
	}
}

// MatchJobs scores the newest active jobs against the user's profile, stores
// one match per job and returns them best first. A failed assessment is stored
// as a neutral fallback match instead of failing the run.
func (s *Service) MatchJobs(ctx context.Context, userID string) ([]types.MatchWithJob, error) {
	logger := slog.With(
		"component", "matching",
		"operation", "match_jobs",
		"user_id", userID,
	)

	profile, err := s.store.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := s.store.GetJobOpportunities(ctx, types.JobFilter{Active: types.BoolPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	if len(jobs) > s.maxJobs {
		jobs = jobs[:s.maxJobs]
	}

	startTime := time.Now()
	matches := make([]types.MatchWithJob, 0, len(jobs))
	for i := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		job := &jobs[i]

		var in types.NewJobMatch
		assessment, err := s.assessor.MatchJob(ctx, profile, job)
		if err != nil {
			logger.Error("job assessment failed, storing fallback match",
				"job_id", job.ID,
				"error", err)
			in = fallbackMatch(userID, job.ID)
		} else {
			in = fromAssessment(userID, job.ID, assessment)
		}

		match, err := s.store.CreateJobMatch(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("failed to store match for job %s: %w", job.ID, err)
		}
		matches = append(matches, types.MatchWithJob{JobMatch: *match, Job: job})
	}

	slices.SortStableFunc(matches, func(a, b types.MatchWithJob) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})

	logger.Info("matching completed",
		"jobs_considered", len(jobs),
		"duration_ms", time.Since(startTime).Milliseconds())

	if len(matches) > 0 {
		if err := s.notifier.MatchesReady(ctx, profile, matches); err != nil {
			logger.Warn("failed to send match notification", "error", err)
		}
	}

	return matches, nil
}

// ListMatches returns the user's stored matches newest first, each with its
// job attached. Job is nil for matches whose job no longer exists.
func (s *Service) ListMatches(ctx context.Context, userID string) ([]types.MatchWithJob, error) {
	stored, err := s.store.GetJobMatches(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]types.MatchWithJob, 0, len(stored))
	for _, m := range stored {
		job, err := s.jobFor(ctx, m.JobID)
		if err != nil {
			return nil, err
		}
		out = append(out, types.MatchWithJob{JobMatch: m, Job: job})
	}
	return out, nil
}

func (s *Service) GetMatch(ctx context.Context, id string) (*types.MatchWithJob, error) {
	m, err := s.store.GetJobMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := s.jobFor(ctx, m.JobID)
	if err != nil {
		return nil, err
	}
	return &types.MatchWithJob{JobMatch: *m, Job: job}, nil
}

func (s *Service) jobFor(ctx context.Context, jobID string) (*types.JobOpportunity, error) {
	job, err := s.store.GetJobOpportunity(ctx, jobID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return job, err
}

func fromAssessment(userID, jobID string, a *types.MatchAssessment) types.NewJobMatch {
	analysis := a.Analysis
	if analysis == "" {
		analysis = defaultAnalysis
	}
	steps := a.RequiredSteps
	if steps == nil {
		steps = []types.RequiredStep{}
	}
	difficulty := a.Difficulty
	if !types.ValidDifficulty(difficulty) {
		difficulty = types.DifficultyMedium
	}
	// a zero probability counts as unanswered; a zero score does not
	probability := a.SuccessProbability
	if probability != nil && *probability == 0 {
		probability = nil
	}

	return types.NewJobMatch{
		UserID:             userID,
		JobID:              jobID,
		MatchScore:         percent(a.MatchScore, 0),
		MatchAnalysis:      analysis,
		RequiredSteps:      steps,
		OverallDifficulty:  difficulty,
		SuccessProbability: percent(probability, defaultSuccessProbability),
	}
}

func fallbackMatch(userID, jobID string) types.NewJobMatch {
	return types.NewJobMatch{
		UserID:        userID,
		JobID:         jobID,
		MatchScore:    fallbackScore,
		MatchAnalysis: fallbackAnalysis,
		RequiredSteps: []types.RequiredStep{{
			Step:          1,
			Title:         "Review Requirements",
			Description:   "Carefully review the job requirements and compare with your skills",
			EstimatedTime: "30 minutes",
			Cost:          0,
		}},
		OverallDifficulty:  types.DifficultyMedium,
		SuccessProbability: defaultSuccessProbability,
	}
}

// percent rounds v into 0..100, using def when the model gave no usable number.
func percent(v *float64, def int) int {
	if v == nil || math.IsNaN(*v) {
		return def
	}
	return int(math.Max(0, math.Min(100, math.Round(*v))))
}
