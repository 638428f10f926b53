package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultConfigPath = "config.yaml"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	LLM      LLMConfig      `yaml:"llm"`
	Matching MatchingConfig `yaml:"matching"`
	Discord  DiscordConfig  `yaml:"discord"`
	Storage  StorageConfig  `yaml:"storage"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	CORSOrigin      string        `yaml:"cors_origin"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LLMConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

type MatchingConfig struct {
	// MaxJobs bounds how many active jobs one match run scores.
	MaxJobs int `yaml:"max_jobs"`
}

type DiscordConfig struct {
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

func (d DiscordConfig) Enabled() bool {
	return d.BotToken != "" && d.ChannelID != ""
}

type StorageConfig struct {
	Seed bool `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			CORSOrigin:      "*",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    3 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		LLM: LLMConfig{
			Provider: ProviderOpenAI,
			Timeout:  30 * time.Second,
		},
		Matching: MatchingConfig{MaxJobs: 5},
		Storage:  StorageConfig{Seed: true},
	}
}

// DefaultModel is used when no model is configured for a provider.
func DefaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "gpt-5"
}

// Load reads .env, then the YAML file at path (if present), then applies
// environment overrides. An empty path falls back to BRIDGE_CONFIG and then
// config.yaml.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if path == "" {
		path = os.Getenv("BRIDGE_CONFIG")
	}
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	cfg, err := LoadFrom(path, explicit)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads a YAML config file over the defaults. A missing file is only
// an error when required is set.
func LoadFrom(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		if v, ok := lookup(key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	integer("PORT", &c.Server.Port)
	str("CORS_ORIGIN", &c.Server.CORSOrigin)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LLM_PROVIDER", &c.LLM.Provider)
	str("LLM_MODEL", &c.LLM.Model)
	str("LLM_BASE_URL", &c.LLM.BaseURL)
	duration("LLM_TIMEOUT", &c.LLM.Timeout)
	integer("MATCH_MAX_JOBS", &c.Matching.MaxJobs)
	str("DISCORD_BOT_TOKEN", &c.Discord.BotToken)
	str("DISCORD_CHANNEL_ID", &c.Discord.ChannelID)
	boolean("SEED_DATA", &c.Storage.Seed)

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	switch c.LLM.Provider {
	case ProviderOpenAI:
		str("OPENAI_API_KEY", &c.LLM.APIKey)
	case ProviderGemini:
		str("GEMINI_KEY", &c.LLM.APIKey)
	}
	str("LLM_API_KEY", &c.LLM.APIKey)

	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel(c.LLM.Provider)
	}

	return errors.Join(errs...)
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider))
	}
	if c.LLM.APIKey == "" {
		errs = append(errs, errors.New("llm api key is required (OPENAI_API_KEY, GEMINI_KEY or LLM_API_KEY)"))
	}
	if c.LLM.Timeout <= 0 {
		errs = append(errs, errors.New("llm.timeout must be positive"))
	}
	if c.Matching.MaxJobs <= 0 {
		errs = append(errs, errors.New("matching.max_jobs must be positive"))
	}
	if (c.Discord.BotToken == "") != (c.Discord.ChannelID == "") {
		errs = append(errs, errors.New("discord.bot_token and discord.channel_id must be set together"))
	}

	return errors.Join(errs...)
}
