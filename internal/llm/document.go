package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-shah256/bridge/pkg/types"
)

const documentSystemPrompt = "You are a career documents writer for international job seekers. Write in clear, professional English. Never invent qualifications, employers or certificates the candidate does not list."

var documentInstructions = map[string]string{
	types.DocumentCoverLetter: `Write a one-page cover letter for this candidate.
Open with the role and why they are applying, connect two or three concrete skills or experiences to the job requirements,
address relocation and work authorisation honestly, and close with a call to action.`,
	types.DocumentResume: `Write a concise resume in Markdown with sections: Summary, Skills, Experience, Education, Languages.
Order skills by relevance to the target job when one is given. Keep it to what fits on one page.`,
	types.DocumentApplicationEmail: `Write a short application email (subject line plus at most 150 words of body) the candidate can send
to a recruiter, mentioning the attached resume and their availability to relocate.`,
}

// GenerateDocument drafts an application document for profile. job is
// optional; without it the document is written for the candidate's preferred
// industries.
func (l *LLM) GenerateDocument(ctx context.Context, kind string, profile *types.UserProfile, job *types.JobOpportunity) (string, error) {
	logger := slog.With(
		"component", "llm",
		"operation", "generate_document",
		"type", kind,
	)

	instructions, ok := documentInstructions[kind]
	if !ok {
		return "", fmt.Errorf("unknown document type %q", kind)
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile data: %w", err)
	}

	target := "No specific job. Target the candidate's preferred industries and countries."
	if job != nil {
		jobJSON, err := json.Marshal(job)
		if err != nil {
			return "", fmt.Errorf("failed to marshal job data: %w", err)
		}
		target = string(jobJSON)
	}

	prompt := fmt.Sprintf(`%s

Candidate Profile:
%s

Target Job:
%s

Return only the document text with no additional commentary.`, instructions, profileJSON, target)

	startTime := time.Now()
	content, err := l.generate(ctx, Prompt{System: documentSystemPrompt, User: prompt})
	if err != nil {
		logger.Error("document generation failed", "error", err, "duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("document generation failed: %w", err)
	}

	logger.Info("document generated",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"response_length", len(content))

	return clean.CleanLlmResponse(content), nil
}
