package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/repository"
	"github.com/secmon-lab/brolife/pkg/repository/redis"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Conversation holds CLI flags selecting where AI conversation history is kept
type Conversation struct {
	backend       string
	redisAddr     string
	redisPassword string
	redisDB       int
	ttl           time.Duration
}

// Flags returns CLI flags for conversation history configuration
func (c *Conversation) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "conversation-backend",
			Usage:       "Conversation history backend (repository or redis)",
			Category:    "Conversation",
			Value:       string(types.ConversationBackendRepository),
			Sources:     cli.EnvVars("BROLIFE_CONVERSATION_BACKEND"),
			Destination: &c.backend,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address (host:port) for the redis conversation backend",
			Category:    "Conversation",
			Value:       "localhost:6379",
			Sources:     cli.EnvVars("BROLIFE_REDIS_ADDR"),
			Destination: &c.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Conversation",
			Sources:     cli.EnvVars("BROLIFE_REDIS_PASSWORD"),
			Destination: &c.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Conversation",
			Sources:     cli.EnvVars("BROLIFE_REDIS_DB"),
			Destination: &c.redisDB,
		},
		&cli.DurationFlag{
			Name:        "conversation-ttl",
			Usage:       "How long an idle conversation is kept in redis (0 keeps it forever)",
			Category:    "Conversation",
			Value:       7 * 24 * time.Hour,
			Sources:     cli.EnvVars("BROLIFE_CONVERSATION_TTL"),
			Destination: &c.ttl,
		},
	}
}

func (c Conversation) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", c.backend),
		slog.String("redis_addr", c.redisAddr),
		slog.Int("redis_db", c.redisDB),
		slog.Duration("ttl", c.ttl),
	)
}

// Configure returns repo with its conversation history replaced by the
// configured backend. With the repository backend repo is returned as is.
func (c *Conversation) Configure(ctx context.Context, repo interfaces.Repository) (interfaces.Repository, error) {
	backend, err := types.ParseConversationBackend(c.backend)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid conversation backend", goerr.V(BackendKey, c.backend))
	}

	if backend == types.ConversationBackendRepository {
		return repo, nil
	}

	if c.redisAddr == "" {
		return nil, goerr.Wrap(ErrMissingOption, "redis-addr is required when using redis conversation backend",
			goerr.V(OptionKey, "redis-addr"))
	}

	store, err := redis.New(ctx, redis.Config{
		Addr:     c.redisAddr,
		Password: c.redisPassword,
		DB:       c.redisDB,
	}, redis.WithTTL(c.ttl))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize redis conversation store")
	}

	logging.Default().Info("Using Redis for conversation history", "addr", c.redisAddr, "ttl", c.ttl)
	return repository.WithConversation(repo, store), nil
}
