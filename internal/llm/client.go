package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/p-shah256/bridge/internal/cleaner"
	"github.com/p-shah256/bridge/internal/config"
)

var clean = cleaner.NewCleaner()

var ErrEmptyResponse = errors.New("empty response from LLM")

// Prompt is one system+user exchange. JSON asks the provider to constrain the
// reply to a JSON object.
type Prompt struct {
	System string
	User   string
	JSON   bool
}

// Generator is a chat-completion backend.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

type LLM struct {
	gen     Generator
	timeout time.Duration
	closer  func() error
}

// New builds the provider selected in cfg.
func New(ctx context.Context, cfg config.LLMConfig) (*LLM, error) {
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel(cfg.Provider)
	}

	switch cfg.Provider {
	case config.ProviderOpenAI:
		gen := NewOpenAI(cfg.APIKey, model, cfg.BaseURL)
		return NewWithGenerator(gen, cfg.Timeout), nil
	case config.ProviderGemini:
		gen, err := NewGemini(ctx, cfg.APIKey, model)
		if err != nil {
			return nil, err
		}
		l := NewWithGenerator(gen, cfg.Timeout)
		l.closer = gen.Close
		return l, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

func NewWithGenerator(gen Generator, timeout time.Duration) *LLM {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLM{gen: gen, timeout: timeout}
}

func (l *LLM) Close() {
	if l.closer != nil {
		if err := l.closer(); err != nil {
			slog.Warn("failed to close LLM client", "error", err)
		}
	}
}

func (l *LLM) generate(ctx context.Context, prompt Prompt) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	content, err := l.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(content) == 0 {
		return "", ErrEmptyResponse
	}
	return content, nil
}
