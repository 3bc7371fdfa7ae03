package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/m-mizutani/gollem/llm/openai"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/service/companion"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// LLM holds configuration for the conversational AI
type LLM struct {
	provider  string
	projectID string
	location  string
	apiKey    string
	model     string
	timeout   time.Duration
	maxTurns  int
}

// Flags returns CLI flags for LLM configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Conversational AI provider (gemini, openai or claude)",
			Category:    "LLM",
			Value:       string(types.LLMProviderGemini),
			Sources:     cli.EnvVars("BROLIFE_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Category:    "LLM",
			Sources:     cli.EnvVars("BROLIFE_GEMINI_PROJECT"),
			Destination: &l.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Category:    "LLM",
			Value:       "us-central1",
			Sources:     cli.EnvVars("BROLIFE_GEMINI_LOCATION"),
			Destination: &l.location,
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the openai and claude providers",
			Category:    "LLM",
			Sources:     cli.EnvVars("BROLIFE_LLM_API_KEY"),
			Destination: &l.apiKey,
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name (provider default when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("BROLIFE_LLM_MODEL"),
			Destination: &l.model,
		},
		&cli.DurationFlag{
			Name:        "llm-timeout",
			Usage:       "Timeout of a single AI call; on timeout the fallback reply is used",
			Category:    "LLM",
			Value:       companion.DefaultTimeout,
			Sources:     cli.EnvVars("BROLIFE_LLM_TIMEOUT"),
			Destination: &l.timeout,
		},
		&cli.IntFlag{
			Name:        "llm-history-turns",
			Usage:       "Exchanges kept in a session's saved conversation history",
			Category:    "LLM",
			Value:       companion.DefaultMaxTurns,
			Sources:     cli.EnvVars("BROLIFE_LLM_HISTORY_TURNS"),
			Destination: &l.maxTurns,
		},
	}
}

// LogValue omits the API key
func (l LLM) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("provider", l.provider),
		slog.String("project_id", l.projectID),
		slog.String("location", l.location),
		slog.String("model", l.model),
		slog.Bool("api_key_set", l.apiKey != ""),
		slog.Duration("timeout", l.timeout),
		slog.Int("history_turns", l.maxTurns),
	)
}

// Configure creates the LLM client of the selected provider.
// Returns nil if the provider is not configured (every AI call then falls back).
func (l *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	provider, err := types.ParseLLMProvider(l.provider)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid LLM provider", goerr.V("provider", l.provider))
	}

	switch provider {
	case types.LLMProviderGemini:
		if l.projectID == "" {
			return nil, nil
		}
		var opts []gemini.Option
		if l.model != "" {
			opts = append(opts, gemini.WithModel(l.model))
		}
		client, err := gemini.New(ctx, l.projectID, l.location, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil

	case types.LLMProviderOpenAI:
		if l.apiKey == "" {
			return nil, nil
		}
		var opts []openai.Option
		if l.model != "" {
			opts = append(opts, openai.WithModel(l.model))
		}
		client, err := openai.New(ctx, l.apiKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenAI client")
		}
		return client, nil

	default:
		if l.apiKey == "" {
			return nil, nil
		}
		var opts []claude.Option
		if l.model != "" {
			opts = append(opts, claude.WithModel(l.model))
		}
		client, err := claude.New(ctx, l.apiKey, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		return client, nil
	}
}

// ConfigureCompanion wires the LLM client to the conversation history of
// repo. Returns nil when no provider is configured.
func (l *LLM) ConfigureCompanion(ctx context.Context, repo interfaces.Repository) (companion.Service, error) {
	client, err := l.Configure(ctx)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logging.Default().Warn("Conversational AI is not configured, replies will use fallback messages",
			"provider", l.provider)
		return nil, nil
	}

	svc, err := companion.New(client, repo.Conversation(),
		companion.WithTimeout(l.timeout),
		companion.WithMaxTurns(l.maxTurns),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create companion service")
	}

	logging.Default().Info("Conversational AI enabled", "llm", l)
	return svc, nil
}
