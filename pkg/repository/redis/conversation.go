package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

const (
	defaultKeyPrefix = "brolife:conversation:"
	defaultTTL       = 7 * 24 * time.Hour
)

// ConversationStore keeps AI conversation history in Redis with an idle TTL
type ConversationStore struct {
	rdb       *goredis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ interfaces.ConversationRepository = &ConversationStore{}

type Option func(*ConversationStore)

// WithTTL sets how long an idle conversation is kept. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *ConversationStore) {
		s.ttl = ttl
	}
}

func WithKeyPrefix(prefix string) Option {
	return func(s *ConversationStore) {
		s.keyPrefix = prefix
	}
}

// Config is the connection setting of Redis
type Config struct {
	Addr     string
	Password string `masq:"secret"`
	DB       int
}

// New connects to Redis and verifies the connection with PING
func New(ctx context.Context, cfg Config, opts ...Option) (*ConversationStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, goerr.Wrap(err, "failed to ping redis", goerr.V("addr", cfg.Addr))
	}

	return NewWithClient(rdb, opts...), nil
}

// NewWithClient wraps an existing client. Close closes the client.
func NewWithClient(rdb *goredis.Client, opts ...Option) *ConversationStore {
	s := &ConversationStore{
		rdb:       rdb,
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type conversationEntry struct {
	History   []byte    `json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *ConversationStore) key(k model.SessionKey) string {
	return s.keyPrefix + k.String()
}

func (s *ConversationStore) Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error) {
	raw, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to get conversation", goerr.V("session_key", key))
	}

	var entry conversationEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, wrapErr(err, "failed to decode conversation", goerr.V("session_key", key))
	}

	return &model.Conversation{
		Key:       key,
		History:   entry.History,
		UpdatedAt: entry.UpdatedAt,
	}, nil
}

func (s *ConversationStore) Put(ctx context.Context, conv *model.Conversation) error {
	raw, err := json.Marshal(&conversationEntry{
		History:   conv.History,
		UpdatedAt: clock.Now(ctx).UTC(),
	})
	if err != nil {
		return goerr.Wrap(err, "failed to encode conversation", goerr.V("session_key", conv.Key))
	}

	if err := s.rdb.Set(ctx, s.key(conv.Key), raw, s.ttl).Err(); err != nil {
		return wrapErr(err, "failed to put conversation", goerr.V("session_key", conv.Key))
	}
	return nil
}

func (s *ConversationStore) Close() error {
	return s.rdb.Close()
}

func wrapErr(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", model.ErrPersistence, err), msg, opts...)
}
