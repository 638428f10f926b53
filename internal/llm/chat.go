package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const chatSystemPrompt = `You are Bridge, an AI-powered international job placement assistant. You help people find job opportunities around the world and guide them through the process of securing employment in different countries.

Your expertise includes:
- Job matching based on skills, experience, and preferences
- Visa and work permit requirements for different countries
- Application strategies and resume optimization
- Interview preparation and cultural adaptation
- Salary expectations and cost of living comparisons
- Language requirements and learning resources

Always provide practical, actionable advice. Be encouraging but realistic about challenges. Focus on legitimate opportunities and legal pathways to international employment.`

func buildChatSystemPrompt(extra json.RawMessage) string {
	trimmed := bytes.TrimSpace(extra)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return chatSystemPrompt
	}
	return chatSystemPrompt + "\n\nAdditional context: " + string(trimmed)
}

// Chat answers one assistant message. extra is optional client context
// (for example the page the user is on) passed through as JSON.
func (l *LLM) Chat(ctx context.Context, message string, extra json.RawMessage) (string, error) {
	logger := slog.With(
		"component", "llm",
		"operation", "chat",
	)

	startTime := time.Now()
	content, err := l.generate(ctx, Prompt{System: buildChatSystemPrompt(extra), User: message})
	if err != nil {
		logger.Error("chat failed", "error", err, "duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("chat failed: %w", err)
	}

	logger.Info("received LLM response",
		"duration_ms", time.Since(startTime).Milliseconds(),
		"response_length", len(content))

	return strings.TrimSpace(content), nil
}
