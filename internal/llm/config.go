package llm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"frameworks/api_detector/pkg/config"
	"frameworks/api_detector/pkg/logging"
)

// ProviderKind is the closed set of judge backends.
type ProviderKind string

const (
	ProviderAnthropic  ProviderKind = "anthropic"
	ProviderOpenRouter ProviderKind = "openrouter"
	ProviderNone       ProviderKind = "none"
)

// Config holds judge configuration for both providers plus the resolved
// selection. It is constructed once at startup and passed by injection;
// there is no ambient provider state.
type Config struct {
	Provider ProviderKind

	AnthropicAPIKey string
	AnthropicModel  string
	AnthropicAPIURL string

	OpenRouterAPIKey string
	OpenRouterModel  string
	OpenRouterAPIURL string

	Timeout time.Duration

	// explicit override from PRIMARY_AI_PROVIDER, empty for auto-detect
	override string
}

// LoadConfig reads provider configuration from the environment. Anthropic
// credentials prefer the setup-token env over the plain API key, falling
// back to the local auth-profiles store written by `claude setup-token`.
func LoadConfig() Config {
	anthropicKey := config.FirstEnv("", "ANTHROPIC_MAX_SETUP_TOKEN", "ANTHROPIC_API_KEY")
	if anthropicKey == "" {
		anthropicKey = readClaudeToken()
	}

	return Config{
		AnthropicAPIKey:  anthropicKey,
		AnthropicModel:   config.FirstEnv("", "ANTHROPIC_MAX_MODEL", "ANTHROPIC_API_MODEL"),
		AnthropicAPIURL:  config.GetEnv("ANTHROPIC_API_URL", ""),
		OpenRouterAPIKey: config.GetEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:  config.GetEnv("OPENROUTER_API_MODEL", ""),
		OpenRouterAPIURL: config.GetEnv("OPENROUTER_API_URL", ""),
		Timeout:          time.Duration(config.GetEnvInt("LLM_TIMEOUT_SECONDS", 30)) * time.Second,
		override:         strings.ToLower(config.GetEnv("PRIMARY_AI_PROVIDER", "")),
	}
}

// ResolveProvider settles the provider selection once at startup. An
// explicit override fails hard when its credential is missing;
// auto-detection prefers Anthropic, falls back to OpenRouter, and falls
// back further to heuristics-only mode with a warning.
func (c *Config) ResolveProvider(logger logging.Logger) error {
	switch c.override {
	case "anthropic", "claude":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("PRIMARY_AI_PROVIDER=anthropic but no token found; set ANTHROPIC_API_KEY or ANTHROPIC_MAX_SETUP_TOKEN")
		}
		c.Provider = ProviderAnthropic
	case "openrouter":
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("PRIMARY_AI_PROVIDER=openrouter but OPENROUTER_API_KEY is empty")
		}
		c.Provider = ProviderOpenRouter
	case "":
		switch {
		case c.AnthropicAPIKey != "":
			c.Provider = ProviderAnthropic
		case c.OpenRouterAPIKey != "":
			c.Provider = ProviderOpenRouter
		default:
			c.Provider = ProviderNone
			if logger != nil {
				logger.Warn("No LLM provider configured - running in heuristics-only mode. Set ANTHROPIC_API_KEY, ANTHROPIC_MAX_SETUP_TOKEN, or OPENROUTER_API_KEY to enable LLM analysis.")
			}
		}
	default:
		return fmt.Errorf("unknown PRIMARY_AI_PROVIDER %q", c.override)
	}

	if logger != nil {
		logger.WithField("provider", string(c.Provider)).Info("LLM provider selected")
	}
	return nil
}

// Model returns the model identifier for the resolved provider.
func (c *Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		if c.AnthropicModel != "" {
			return c.AnthropicModel
		}
		return defaultAnthropicModel
	case ProviderOpenRouter:
		return c.OpenRouterModel
	}
	return ""
}

// NewJudge constructs the adapter for the resolved provider. A nil judge
// with nil error means heuristics-only mode.
func NewJudge(cfg Config) (Judge, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicJudge(cfg), nil
	case ProviderOpenRouter:
		return NewOpenRouterJudge(cfg), nil
	case ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}

// --- auth-profiles.json reader ---

type authProfile struct {
	Token string `json:"token"`
	Key   string `json:"key"`
}

type authProfileStore struct {
	Profiles map[string]authProfile `json:"profiles"`
	LastGood map[string]string      `json:"lastGood"`
}

// readClaudeToken attempts to read an Anthropic token from
// ~/.claude/auth-profiles.json (written by `claude setup-token`).
// The lastGood entry picks the preferred profile, else the first
// anthropic profile wins.
func readClaudeToken() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(home, ".claude", "auth-profiles.json"))
	if err != nil {
		return ""
	}

	var store authProfileStore
	if err := json.Unmarshal(data, &store); err != nil {
		return ""
	}

	profileID := store.LastGood["anthropic"]
	if profileID == "" {
		for id := range store.Profiles {
			if strings.HasPrefix(id, "anthropic:") {
				profileID = id
				break
			}
		}
	}

	profile, ok := store.Profiles[profileID]
	if !ok {
		return ""
	}
	if profile.Token != "" {
		return profile.Token
	}
	return profile.Key
}
