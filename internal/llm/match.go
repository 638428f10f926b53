package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/p-shah256/bridge/pkg/types"
)

const matchSystemPrompt = `You are an AI job matching expert. Analyze how well a user profile matches a job opportunity. Consider skills, experience, education, location preferences, salary expectations, and visa requirements.
Respond with a JSON object in this format:
{
  "matchScore": number (0-100),
  "analysis": string,
  "difficulty": "easy" | "medium" | "hard",
  "successProbability": number (0-100),
  "requiredSteps": [{"step": number, "title": string, "description": string, "estimatedTime": string, "cost": number}]
}`

type matchProfile struct {
	Skills             []string               `json:"skills"`
	Experience         []types.WorkExperience `json:"experience"`
	Education          string                 `json:"education"`
	Languages          []string               `json:"languages"`
	Location           string                 `json:"location"`
	PreferredCountries []string               `json:"preferredCountries"`
	SalaryExpectation  types.SalaryRange      `json:"salaryExpectation"`
	WillingToRelocate  bool                   `json:"willingToRelocate"`
	HasPassport        bool                   `json:"hasPassport"`
}

type matchJob struct {
	Title              string            `json:"title"`
	Company            string            `json:"company"`
	Country            string            `json:"country"`
	Industry           string            `json:"industry"`
	Requirements       []string          `json:"requirements"`
	Salary             types.SalaryRange `json:"salary"`
	LanguagesRequired  []string          `json:"languagesRequired"`
	VisaSponsorship    bool              `json:"visaSponsorship"`
	ExperienceRequired int               `json:"experienceRequired"`
	EducationRequired  string            `json:"educationRequired"`
}

func buildMatchPrompt(profile *types.UserProfile, job *types.JobOpportunity) (string, error) {
	profileJSON, err := json.Marshal(matchProfile{
		Skills:             profile.Skills,
		Experience:         profile.WorkExperience,
		Education:          profile.Education,
		Languages:          profile.Languages,
		Location:           profile.CurrentLocation,
		PreferredCountries: profile.PreferredCountries,
		SalaryExpectation:  profile.SalaryExpectation,
		WillingToRelocate:  profile.WillingToRelocate,
		HasPassport:        profile.HasPassport,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile data: %w", err)
	}

	jobJSON, err := json.Marshal(matchJob{
		Title:              job.Title,
		Company:            job.Company,
		Country:            job.Country,
		Industry:           job.Industry,
		Requirements:       job.Requirements,
		Salary:             job.Salary,
		LanguagesRequired:  job.LanguagesRequired,
		VisaSponsorship:    job.VisaSponsorship,
		ExperienceRequired: job.ExperienceRequired,
		EducationRequired:  job.EducationRequired,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal job data: %w", err)
	}

	return fmt.Sprintf("User Profile: %s\n\nJob Opportunity: %s", profileJSON, jobJSON), nil
}

// MatchJob asks the model to score one profile against one job.
func (l *LLM) MatchJob(ctx context.Context, profile *types.UserProfile, job *types.JobOpportunity) (*types.MatchAssessment, error) {
	logger := slog.With(
		"component", "llm",
		"operation", "match_job",
		"job_id", job.ID,
	)

	prompt, err := buildMatchPrompt(profile, job)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	content, err := l.generate(ctx, Prompt{System: matchSystemPrompt, User: prompt, JSON: true})
	if err != nil {
		logger.Error("job matching failed",
			"error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return nil, fmt.Errorf("job matching failed: %w", err)
	}

	logger.Info("received LLM response",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"response_length", len(content))

	assessment, err := ParseAssessment(content)
	if err != nil {
		logger.Error("JSON parsing failed",
			"error", err,
			"content_preview", content[:min(100, len(content))])
		return nil, err
	}
	return assessment, nil
}

// ParseAssessment reads a model reply leniently: fences are stripped, numbers
// may arrive as strings, unknown keys are ignored and absent numbers stay nil.
func ParseAssessment(content string) (*types.MatchAssessment, error) {
	cleaned := clean.CleanLlmResponse(content)
	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("failed to parse LLM response as JSON")
	}
	res := gjson.Parse(cleaned)
	if !res.IsObject() {
		return nil, fmt.Errorf("LLM response is not a JSON object")
	}

	a := &types.MatchAssessment{
		MatchScore:         number(res.Get("matchScore")),
		Analysis:           strings.TrimSpace(res.Get("analysis").String()),
		Difficulty:         strings.ToLower(strings.TrimSpace(res.Get("difficulty").String())),
		SuccessProbability: number(res.Get("successProbability")),
	}

	steps := res.Get("requiredSteps")
	if steps.IsArray() {
		a.RequiredSteps = []types.RequiredStep{}
		for i, s := range steps.Array() {
			step := types.RequiredStep{
				Step:          int(s.Get("step").Int()),
				Title:         s.Get("title").String(),
				Description:   s.Get("description").String(),
				EstimatedTime: s.Get("estimatedTime").String(),
			}
			if cost := number(s.Get("cost")); cost != nil {
				step.Cost = int(math.Round(*cost))
			}
			if step.Step <= 0 {
				step.Step = i + 1
			}
			a.RequiredSteps = append(a.RequiredSteps, step)
		}
	}

	return a, nil
}

func number(r gjson.Result) *float64 {
	switch r.Type {
	case gjson.Number:
		v := r.Num
		return &v
	case gjson.String:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r.Str), "%"))
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return &v
		}
	}
	return nil
}
