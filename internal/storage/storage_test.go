package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p-shah256/bridge/pkg/types"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestStorage(opts ...Option) *MemStorage {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return NewMemStorage(append([]Option{WithClock(clock.Now), WithIDGenerator(ids)}, opts...)...)
}

func sampleNewProfile(email string) types.NewUserProfile {
	return types.NewUserProfile{
		Email:               email,
		FullName:            "Priya Raman",
		Age:                 26,
		Nationality:         "Indian",
		CurrentLocation:     "Chennai, India",
		Languages:           []string{"English", "Tamil"},
		Education:           "master",
		Skills:              []string{"Go", "Kubernetes"},
		PreferredCountries:  []string{"Germany"},
		PreferredIndustries: []string{"Technology"},
		SalaryExpectation:   types.SalaryRange{Min: 50000, Max: 70000, Currency: "EUR"},
	}
}

func TestCreateUserProfileDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage()

	p, err := s.CreateUserProfile(ctx, sampleNewProfile("priya@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", p.ID)
	assert.True(t, p.WillingToRelocate)
	assert.False(t, p.HasPassport)
	assert.False(t, p.CreatedAt.IsZero())

	in := sampleNewProfile("other@example.com")
	in.WillingToRelocate = types.BoolPtr(false)
	in.HasPassport = types.BoolPtr(true)
	p2, err := s.CreateUserProfile(ctx, in)
	require.NoError(t, err)
	assert.False(t, p2.WillingToRelocate)
	assert.True(t, p2.HasPassport)
}

func TestCreateUserProfileDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage()

	_, err := s.CreateUserProfile(ctx, sampleNewProfile("priya@example.com"))
	require.NoError(t, err)

	_, err = s.CreateUserProfile(ctx, sampleNewProfile("PRIYA@example.com"))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetUserProfileByEmail(t *testing.T) {
	s := newTestStorage(WithSampleData())

	p, err := s.GetUserProfileByEmail(context.Background(), "demo@bridge.com")
	require.NoError(t, err)
	assert.Equal(t, SampleUserID, p.ID)

	_, err = s.GetUserProfileByEmail(context.Background(), "nobody@bridge.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUserProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(WithSampleData())

	updated, err := s.UpdateUserProfile(ctx, SampleUserID, func(p *types.UserProfile) error {
		p.Age = 29
		p.ID = "hijacked"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 29, updated.Age)
	assert.Equal(t, SampleUserID, updated.ID)

	_, err = s.UpdateUserProfile(ctx, SampleUserID, func(p *types.UserProfile) error {
		p.Age = 99
		return errors.New("rejected")
	})
	require.Error(t, err)

	stored, err := s.GetUserProfile(ctx, SampleUserID)
	require.NoError(t, err)
	assert.Equal(t, 29, stored.Age)

	_, err = s.UpdateUserProfile(ctx, "missing", func(*types.UserProfile) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(WithSampleData())

	p, err := s.GetUserProfile(ctx, SampleUserID)
	require.NoError(t, err)
	p.Skills[0] = "COBOL"

	again, err := s.GetUserProfile(ctx, SampleUserID)
	require.NoError(t, err)
	assert.Equal(t, "JavaScript", again.Skills[0])
}

func TestGetJobOpportunitiesFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(WithSampleData())

	all, err := s.GetJobOpportunities(ctx, types.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"job-1", "job-2", "job-3", "job-4"}, jobIDs(all))

	byCountry, err := s.GetJobOpportunities(ctx, types.JobFilter{Country: "germ"})
	require.NoError(t, err)
	assert.Equal(t, []string{"job-1"}, jobIDs(byCountry))

	byIndustry, err := s.GetJobOpportunities(ctx, types.JobFilter{Industry: "HOSPITALITY"})
	require.NoError(t, err)
	assert.Equal(t, []string{"job-3"}, jobIDs(byIndustry))

	_, err = s.UpdateJobOpportunity(ctx, "job-2", func(j *types.JobOpportunity) error {
		j.IsActive = false
		return nil
	})
	require.NoError(t, err)

	active, err := s.GetJobOpportunities(ctx, types.JobFilter{Active: types.BoolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, []string{"job-1", "job-3", "job-4"}, jobIDs(active))

	inactive, err := s.GetJobOpportunities(ctx, types.JobFilter{Active: types.BoolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, []string{"job-2"}, jobIDs(inactive))
}

func TestCreateJobOpportunityDefaultsAndOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(WithSampleData())

	job, err := s.CreateJobOpportunity(ctx, types.NewJobOpportunity{
		Title:             "Nurse",
		Company:           "Toronto General",
		Country:           "Canada",
		City:              "Toronto",
		Industry:          "Healthcare",
		Description:       "Ward nurse",
		EducationRequired: "bachelor",
	})
	require.NoError(t, err)
	assert.False(t, job.VisaSponsorship)
	assert.Equal(t, 0, job.ExperienceRequired)
	assert.True(t, job.IsActive)

	all, err := s.GetJobOpportunities(ctx, types.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, job.ID, all[0].ID, "newest job first")
}

func TestSearchJobOpportunities(t *testing.T) {
	s := newTestStorage(WithSampleData())
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"farm", []string{"job-2"}},
		{"sydney build", []string{"job-4"}},
		{"netherlands", []string{"job-3"}},
		{"visa sponsorship", []string{"job-1"}},
		{"quantum", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			jobs, err := s.SearchJobOpportunities(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, jobIDs(jobs))
		})
	}
}

func TestJobMatches(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(WithSampleData())

	m, err := s.CreateJobMatch(ctx, types.NewJobMatch{
		UserID:             SampleUserID,
		JobID:              "job-2",
		MatchScore:         40,
		MatchAnalysis:      "Weak fit",
		OverallDifficulty:  types.DifficultyHard,
		SuccessProbability: 20,
	})
	require.NoError(t, err)
	assert.NotNil(t, m.RequiredSteps)

	matches, err := s.GetJobMatches(ctx, SampleUserID)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, m.ID, matches[0].ID)

	got, err := s.GetJobMatch(ctx, SampleMatchID)
	require.NoError(t, err)
	assert.Equal(t, 92, got.MatchScore)
	assert.Len(t, got.RequiredSteps, 3)

	none, err := s.GetJobMatches(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestServicePricing(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage()

	p, err := s.CreateServicePricing(ctx, types.NewServicePricing{
		UserID:      "u",
		ServiceType: "basic_match",
		Price:       2900,
		Features:    []string{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "usd", p.Currency)
	assert.Equal(t, types.PaymentPending, p.Status)
	assert.True(t, p.IsActive)
	assert.Nil(t, p.StripePaymentID)

	updated, err := s.UpdateServicePricingStatus(ctx, p.ID, types.PaymentCompleted, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, types.PaymentCompleted, updated.Status)
	require.NotNil(t, updated.StripePaymentID)
	assert.Equal(t, "pi_123", *updated.StripePaymentID)

	kept, err := s.UpdateServicePricingStatus(ctx, p.ID, types.PaymentFailed, "")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", *kept.StripePaymentID)

	list, err := s.GetServicePricing(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.UpdateServicePricingStatus(ctx, "nope", types.PaymentFailed, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentCreates(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateJobMatch(ctx, types.NewJobMatch{UserID: "u", JobID: fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	matches, err := s.GetJobMatches(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, matches, 50)
}

func jobIDs(jobs []types.JobOpportunity) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestSampleDataUsesConfiguredClock(t *testing.T) {
	stamp := time.Date(2030, 6, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemStorage(WithSampleData(), WithClock(func() time.Time { return stamp }))

	p, err := s.GetUserProfile(context.Background(), SampleUserID)
	require.NoError(t, err)
	assert.Equal(t, stamp, p.CreatedAt)

	m, err := s.GetJobMatch(context.Background(), SampleMatchID)
	require.NoError(t, err)
	assert.Equal(t, stamp, m.CreatedAt)
}
