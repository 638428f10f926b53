package storage

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/p-shah256/bridge/pkg/types"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// Storage is the record store behind the API. Update methods take a mutate
// callback that runs while the record is locked; returning an error from it
// leaves the stored record untouched.
type Storage interface {
	GetUserProfile(ctx context.Context, id string) (*types.UserProfile, error)
	GetUserProfileByEmail(ctx context.Context, email string) (*types.UserProfile, error)
	CreateUserProfile(ctx context.Context, profile types.NewUserProfile) (*types.UserProfile, error)
	UpdateUserProfile(ctx context.Context, id string, mutate func(*types.UserProfile) error) (*types.UserProfile, error)

	GetJobOpportunities(ctx context.Context, filter types.JobFilter) ([]types.JobOpportunity, error)
	GetJobOpportunity(ctx context.Context, id string) (*types.JobOpportunity, error)
	CreateJobOpportunity(ctx context.Context, job types.NewJobOpportunity) (*types.JobOpportunity, error)
	UpdateJobOpportunity(ctx context.Context, id string, mutate func(*types.JobOpportunity) error) (*types.JobOpportunity, error)
	SearchJobOpportunities(ctx context.Context, query string) ([]types.JobOpportunity, error)

	GetJobMatches(ctx context.Context, userID string) ([]types.JobMatch, error)
	CreateJobMatch(ctx context.Context, match types.NewJobMatch) (*types.JobMatch, error)
	GetJobMatch(ctx context.Context, id string) (*types.JobMatch, error)

	GetServicePricing(ctx context.Context, userID string) ([]types.ServicePricing, error)
	CreateServicePricing(ctx context.Context, pricing types.NewServicePricing) (*types.ServicePricing, error)
	UpdateServicePricingStatus(ctx context.Context, id, status, paymentID string) (*types.ServicePricing, error)
}

type MemStorage struct {
	mu sync.RWMutex

	userProfiles     map[string]types.UserProfile
	jobOpportunities map[string]types.JobOpportunity
	jobMatches       map[string]types.JobMatch
	servicePricing   map[string]types.ServicePricing

	now         func() time.Time
	newID       func() string
	withSamples bool
}

type Option func(*MemStorage)

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemStorage) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *MemStorage) { s.newID = newID }
}

// WithSampleData loads the demo profile, jobs and match once all other
// options are applied.
func WithSampleData() Option {
	return func(s *MemStorage) { s.withSamples = true }
}

func NewMemStorage(opts ...Option) *MemStorage {
	s := &MemStorage{
		userProfiles:     make(map[string]types.UserProfile),
		jobOpportunities: make(map[string]types.JobOpportunity),
		jobMatches:       make(map[string]types.JobMatch),
		servicePricing:   make(map[string]types.ServicePricing),
		now:              time.Now,
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.withSamples {
		s.seed()
	}
	return s
}

// =============== user profiles ===============

func (s *MemStorage) GetUserProfile(_ context.Context, id string) (*types.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.userProfiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneProfile(p), nil
}

func (s *MemStorage) GetUserProfileByEmail(_ context.Context, email string) (*types.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.findByEmail(email, ""); ok {
		return cloneProfile(p), nil
	}
	return nil, ErrNotFound
}

func (s *MemStorage) findByEmail(email, exceptID string) (types.UserProfile, bool) {
	for _, p := range s.userProfiles {
		if p.ID != exceptID && strings.EqualFold(p.Email, email) {
			return p, true
		}
	}
	return types.UserProfile{}, false
}

func (s *MemStorage) CreateUserProfile(_ context.Context, in types.NewUserProfile) (*types.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.findByEmail(in.Email, ""); exists {
		return nil, ErrConflict
	}

	p := types.UserProfile{
		ID:                  s.newID(),
		Email:               in.Email,
		FullName:            in.FullName,
		Age:                 in.Age,
		Nationality:         in.Nationality,
		CurrentLocation:     in.CurrentLocation,
		Languages:           in.Languages,
		Education:           in.Education,
		WorkExperience:      in.WorkExperience,
		Skills:              in.Skills,
		PreferredCountries:  in.PreferredCountries,
		PreferredIndustries: in.PreferredIndustries,
		SalaryExpectation:   in.SalaryExpectation,
		WillingToRelocate:   boolOr(in.WillingToRelocate, true),
		HasPassport:         boolOr(in.HasPassport, false),
		CreatedAt:           s.now(),
	}
	p = *cloneProfile(p)
	s.userProfiles[p.ID] = p
	return cloneProfile(p), nil
}

func (s *MemStorage) UpdateUserProfile(_ context.Context, id string, mutate func(*types.UserProfile) error) (*types.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.userProfiles[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := cloneProfile(current)
	if err := mutate(updated); err != nil {
		return nil, err
	}
	updated.ID, updated.CreatedAt = current.ID, current.CreatedAt

	if _, taken := s.findByEmail(updated.Email, id); taken {
		return nil, ErrConflict
	}

	s.userProfiles[id] = *updated
	return cloneProfile(*updated), nil
}

// =============== job opportunities ===============

func (s *MemStorage) GetJobOpportunities(_ context.Context, filter types.JobFilter) ([]types.JobOpportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	country := strings.ToLower(filter.Country)
	industry := strings.ToLower(filter.Industry)

	jobs := make([]types.JobOpportunity, 0, len(s.jobOpportunities))
	for _, job := range s.jobOpportunities {
		if country != "" && !strings.Contains(strings.ToLower(job.Country), country) {
			continue
		}
		if industry != "" && !strings.Contains(strings.ToLower(job.Industry), industry) {
			continue
		}
		if filter.Active != nil && job.IsActive != *filter.Active {
			continue
		}
		jobs = append(jobs, *cloneJob(job))
	}

	sortNewestFirst(jobs, func(j types.JobOpportunity) (time.Time, string) { return j.CreatedAt, j.ID })
	return jobs, nil
}

func (s *MemStorage) GetJobOpportunity(_ context.Context, id string) (*types.JobOpportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobOpportunities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneJob(job), nil
}

func (s *MemStorage) CreateJobOpportunity(_ context.Context, in types.NewJobOpportunity) (*types.JobOpportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	experience := 0
	if in.ExperienceRequired != nil {
		experience = *in.ExperienceRequired
	}

	job := types.JobOpportunity{
		ID:                 s.newID(),
		Title:              in.Title,
		Company:            in.Company,
		Country:            in.Country,
		City:               in.City,
		Industry:           in.Industry,
		Description:        in.Description,
		Requirements:       in.Requirements,
		Salary:             in.Salary,
		LanguagesRequired:  in.LanguagesRequired,
		VisaSponsorship:    boolOr(in.VisaSponsorship, false),
		ExperienceRequired: experience,
		EducationRequired:  in.EducationRequired,
		IsActive:           boolOr(in.IsActive, true),
		CreatedAt:          s.now(),
	}
	job = *cloneJob(job)
	s.jobOpportunities[job.ID] = job
	return cloneJob(job), nil
}

func (s *MemStorage) UpdateJobOpportunity(_ context.Context, id string, mutate func(*types.JobOpportunity) error) (*types.JobOpportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobOpportunities[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := cloneJob(current)
	if err := mutate(updated); err != nil {
		return nil, err
	}
	updated.ID, updated.CreatedAt = current.ID, current.CreatedAt

	s.jobOpportunities[id] = *updated
	return cloneJob(*updated), nil
}

func (s *MemStorage) SearchJobOpportunities(_ context.Context, query string) ([]types.JobOpportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	jobs := []types.JobOpportunity{}
	for _, job := range s.jobOpportunities {
		fields := []string{job.Title, job.Company, job.Industry, job.Country, job.Description}
		if slices.ContainsFunc(fields, func(f string) bool { return strings.Contains(strings.ToLower(f), q) }) {
			jobs = append(jobs, *cloneJob(job))
		}
	}

	sortNewestFirst(jobs, func(j types.JobOpportunity) (time.Time, string) { return j.CreatedAt, j.ID })
	return jobs, nil
}

// =============== job matches ===============

func (s *MemStorage) GetJobMatches(_ context.Context, userID string) ([]types.JobMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []types.JobMatch{}
	for _, m := range s.jobMatches {
		if m.UserID == userID {
			matches = append(matches, *cloneMatch(m))
		}
	}

	sortNewestFirst(matches, func(m types.JobMatch) (time.Time, string) { return m.CreatedAt, m.ID })
	return matches, nil
}

func (s *MemStorage) CreateJobMatch(_ context.Context, in types.NewJobMatch) (*types.JobMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	steps := in.RequiredSteps
	if steps == nil {
		steps = []types.RequiredStep{}
	}

	m := types.JobMatch{
		ID:                 s.newID(),
		UserID:             in.UserID,
		JobID:              in.JobID,
		MatchScore:         in.MatchScore,
		MatchAnalysis:      in.MatchAnalysis,
		RequiredSteps:      steps,
		OverallDifficulty:  in.OverallDifficulty,
		SuccessProbability: in.SuccessProbability,
		CreatedAt:          s.now(),
	}
	m = *cloneMatch(m)
	s.jobMatches[m.ID] = m
	return cloneMatch(m), nil
}

func (s *MemStorage) GetJobMatch(_ context.Context, id string) (*types.JobMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.jobMatches[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneMatch(m), nil
}

// =============== service pricing ===============

func (s *MemStorage) GetServicePricing(_ context.Context, userID string) ([]types.ServicePricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []types.ServicePricing{}
	for _, p := range s.servicePricing {
		if p.UserID == userID {
			out = append(out, *clonePricing(p))
		}
	}

	sortNewestFirst(out, func(p types.ServicePricing) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, nil
}

func (s *MemStorage) CreateServicePricing(_ context.Context, in types.NewServicePricing) (*types.ServicePricing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := types.ServicePricing{
		ID:          s.newID(),
		UserID:      in.UserID,
		ServiceType: in.ServiceType,
		Price:       in.Price,
		Currency:    cmp.Or(in.Currency, "usd"),
		Features:    in.Features,
		IsActive:    boolOr(in.IsActive, true),
		Status:      cmp.Or(in.Status, types.PaymentPending),
		CreatedAt:   s.now(),
	}
	if in.StripePaymentID != "" {
		id := in.StripePaymentID
		p.StripePaymentID = &id
	}
	p = *clonePricing(p)
	s.servicePricing[p.ID] = p
	return clonePricing(p), nil
}

func (s *MemStorage) UpdateServicePricingStatus(_ context.Context, id, status, paymentID string) (*types.ServicePricing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.servicePricing[id]
	if !ok {
		return nil, ErrNotFound
	}

	p.Status = status
	if paymentID != "" {
		p.StripePaymentID = &paymentID
	}
	s.servicePricing[id] = p
	return clonePricing(p), nil
}

// =============== helpers ===============

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// sortNewestFirst orders by createdAt descending, breaking ties by id so
// listings are stable across calls.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, string)) {
	slices.SortStableFunc(items, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return strings.Compare(ia, ib)
	})
}

func cloneProfile(p types.UserProfile) *types.UserProfile {
	p.Languages = slices.Clone(p.Languages)
	p.WorkExperience = slices.Clone(p.WorkExperience)
	p.Skills = slices.Clone(p.Skills)
	p.PreferredCountries = slices.Clone(p.PreferredCountries)
	p.PreferredIndustries = slices.Clone(p.PreferredIndustries)
	return &p
}

func cloneJob(j types.JobOpportunity) *types.JobOpportunity {
	j.Requirements = slices.Clone(j.Requirements)
	j.LanguagesRequired = slices.Clone(j.LanguagesRequired)
	return &j
}

func cloneMatch(m types.JobMatch) *types.JobMatch {
	m.RequiredSteps = slices.Clone(m.RequiredSteps)
	return &m
}

func clonePricing(p types.ServicePricing) *types.ServicePricing {
	p.Features = slices.Clone(p.Features)
	if p.StripePaymentID != nil {
		id := *p.StripePaymentID
		p.StripePaymentID = &id
	}
	return &p
}
