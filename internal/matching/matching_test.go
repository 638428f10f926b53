package matching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-shah256/bridge/internal/storage"
	"github.com/p-shah256/bridge/pkg/types"
)

type fakeAssessor struct {
	mu      sync.Mutex
	results map[string]*types.MatchAssessment
	errs    map[string]error
	calls   []string
}

func (f *fakeAssessor) MatchJob(_ context.Context, _ *types.UserProfile, job *types.JobOpportunity) (*types.MatchAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, job.ID)
	if err := f.errs[job.ID]; err != nil {
		return nil, err
	}
	if a, ok := f.results[job.ID]; ok {
		return a, nil
	}
	return &types.MatchAssessment{}, nil
}

type recordingNotifier struct {
	matches []types.MatchWithJob
	err     error
}

func (r *recordingNotifier) MatchesReady(_ context.Context, _ *types.UserProfile, matches []types.MatchWithJob) error {
	r.matches = matches
	return r.err
}

func f64(v float64) *float64 { return &v }

// newStore returns a store with one profile and n active jobs, job-1 newest.
func newStore(t *testing.T, n int) (*storage.MemStorage, string) {
	t.Helper()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	id := 0
	store := storage.NewMemStorage(
		storage.WithClock(func() time.Time {
			clock = clock.Add(-time.Hour)
			return clock
		}),
		storage.WithIDGenerator(func() string {
			id++
			return fmt.Sprintf("rec-%d", id)
		}),
	)

	profile, err := store.CreateUserProfile(context.Background(), types.NewUserProfile{
		Email:    "maria@example.com",
		FullName: "Maria Santos",
	})
	require.NoError(t, err)

	for i := 1; i <= n; i++ {
		_, err := store.CreateJobOpportunity(context.Background(), types.NewJobOpportunity{
			Title:   fmt.Sprintf("job-%d", i),
			Company: "Acme",
			Country: "Germany",
		})
		require.NoError(t, err)
	}
	return store, profile.ID
}

func jobIDByTitle(t *testing.T, store *storage.MemStorage, title string) string {
	t.Helper()
	jobs, err := store.GetJobOpportunities(context.Background(), types.JobFilter{})
	require.NoError(t, err)
	for _, j := range jobs {
		if j.Title == title {
			return j.ID
		}
	}
	t.Fatalf("no job titled %s", title)
	return ""
}

func TestMatchJobsSortsByScore(t *testing.T) {
	store, userID := newStore(t, 3)
	assessor := &fakeAssessor{results: map[string]*types.MatchAssessment{
		jobIDByTitle(t, store, "job-1"): {MatchScore: f64(40), Analysis: "meh", Difficulty: "hard", SuccessProbability: f64(20)},
		jobIDByTitle(t, store, "job-2"): {MatchScore: f64(91.6), Analysis: "great", Difficulty: "easy", SuccessProbability: f64(80)},
		jobIDByTitle(t, store, "job-3"): {MatchScore: f64(65), Analysis: "ok", Difficulty: "medium", SuccessProbability: f64(55)},
	}}
	notifier := &recordingNotifier{}
	svc := NewService(store, assessor, notifier, 5)

	matches, err := svc.MatchJobs(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, []int{92, 65, 40}, []int{matches[0].MatchScore, matches[1].MatchScore, matches[2].MatchScore})
	assert.Equal(t, "job-2", matches[0].Job.Title)
	assert.Equal(t, "easy", matches[0].OverallDifficulty)
	assert.Equal(t, userID, matches[0].UserID)

	stored, err := store.GetJobMatches(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	assert.Len(t, notifier.matches, 3)
}

func TestMatchJobsUsesNewestActiveJobs(t *testing.T) {
	store, userID := newStore(t, 7)
	_, err := store.UpdateJobOpportunity(context.Background(), jobIDByTitle(t, store, "job-2"), func(j *types.JobOpportunity) error {
		j.IsActive = false
		return nil
	})
	require.NoError(t, err)

	assessor := &fakeAssessor{}
	svc := NewService(store, assessor, nil, 5)

	_, err = svc.MatchJobs(context.Background(), userID)
	require.NoError(t, err)

	want := []string{}
	for _, title := range []string{"job-1", "job-3", "job-4", "job-5", "job-6"} {
		want = append(want, jobIDByTitle(t, store, title))
	}
	assert.Equal(t, want, assessor.calls)
}

func TestMatchJobsDefaults(t *testing.T) {
	tests := []struct {
		name       string
		assessment *types.MatchAssessment
		check      func(t *testing.T, m types.MatchWithJob)
	}{
		{
			name:       "empty reply",
			assessment: &types.MatchAssessment{},
			check: func(t *testing.T, m types.MatchWithJob) {
				assert.Equal(t, 0, m.MatchScore)
				assert.Equal(t, "AI analysis not available", m.MatchAnalysis)
				assert.Equal(t, "medium", m.OverallDifficulty)
				assert.Equal(t, 50, m.SuccessProbability)
				assert.NotNil(t, m.RequiredSteps)
				assert.Empty(t, m.RequiredSteps)
			},
		},
		{
			name:       "out of range values are clamped",
			assessment: &types.MatchAssessment{MatchScore: f64(140), SuccessProbability: f64(-3), Difficulty: "impossible"},
			check: func(t *testing.T, m types.MatchWithJob) {
				assert.Equal(t, 100, m.MatchScore)
				assert.Equal(t, 0, m.SuccessProbability)
				assert.Equal(t, "medium", m.OverallDifficulty)
			},
		},
		{
			name:       "zero probability falls back to the default",
			assessment: &types.MatchAssessment{MatchScore: f64(0), SuccessProbability: f64(0)},
			check: func(t *testing.T, m types.MatchWithJob) {
				assert.Equal(t, 0, m.MatchScore)
				assert.Equal(t, 50, m.SuccessProbability)
			},
		},
		{
			name:       "probability rounding to zero is kept",
			assessment: &types.MatchAssessment{MatchScore: f64(10), SuccessProbability: f64(0.4)},
			check: func(t *testing.T, m types.MatchWithJob) {
				assert.Equal(t, 10, m.MatchScore)
				assert.Equal(t, 0, m.SuccessProbability)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, userID := newStore(t, 1)
			assessor := &fakeAssessor{results: map[string]*types.MatchAssessment{
				jobIDByTitle(t, store, "job-1"): tt.assessment,
			}}

			matches, err := NewService(store, assessor, nil, 5).MatchJobs(context.Background(), userID)
			require.NoError(t, err)
			require.Len(t, matches, 1)
			tt.check(t, matches[0])
		})
	}
}

func TestMatchJobsFallback(t *testing.T) {
	store, userID := newStore(t, 2)
	failing := jobIDByTitle(t, store, "job-2")
	assessor := &fakeAssessor{
		results: map[string]*types.MatchAssessment{
			jobIDByTitle(t, store, "job-1"): {MatchScore: f64(70)},
		},
		errs: map[string]error{failing: errors.New("upstream timeout")},
	}
	notifier := &recordingNotifier{err: errors.New("discord down")}

	matches, err := NewService(store, assessor, notifier, 5).MatchJobs(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	fb := matches[1]
	assert.Equal(t, failing, fb.JobID)
	assert.Equal(t, 50, fb.MatchScore)
	assert.Equal(t, "Basic compatibility analysis: This job requires review of your qualifications.", fb.MatchAnalysis)
	assert.Equal(t, "medium", fb.OverallDifficulty)
	assert.Equal(t, 50, fb.SuccessProbability)
	require.Len(t, fb.RequiredSteps, 1)
	assert.Equal(t, types.RequiredStep{
		Step:          1,
		Title:         "Review Requirements",
		Description:   "Carefully review the job requirements and compare with your skills",
		EstimatedTime: "30 minutes",
		Cost:          0,
	}, fb.RequiredSteps[0])
}

func TestMatchJobsUnknownUser(t *testing.T) {
	store, _ := newStore(t, 1)
	assessor := &fakeAssessor{}

	_, err := NewService(store, assessor, nil, 5).MatchJobs(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Empty(t, assessor.calls)
}

func TestMatchJobsNoActiveJobs(t *testing.T) {
	store, userID := newStore(t, 0)
	notifier := &recordingNotifier{}

	matches, err := NewService(store, &fakeAssessor{}, notifier, 5).MatchJobs(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, matches)
	assert.Empty(t, matches)
	assert.Nil(t, notifier.matches)
}

func TestListAndGetMatches(t *testing.T) {
	store, userID := newStore(t, 1)
	svc := NewService(store, &fakeAssessor{}, nil, 5)

	_, err := svc.MatchJobs(context.Background(), userID)
	require.NoError(t, err)
	orphan, err := store.CreateJobMatch(context.Background(), types.NewJobMatch{UserID: userID, JobID: "removed-job"})
	require.NoError(t, err)

	list, err := svc.ListMatches(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, m := range list {
		if m.ID == orphan.ID {
			assert.Nil(t, m.Job)
		} else {
			require.NotNil(t, m.Job)
			assert.Equal(t, m.JobID, m.Job.ID)
		}
	}

	got, err := svc.GetMatch(context.Background(), orphan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Job)

	_, err = svc.GetMatch(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	empty, err := svc.ListMatches(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
