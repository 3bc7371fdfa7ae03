package companion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
)

const (
	// DefaultTimeout bounds a single AI call
	DefaultTimeout = 30 * time.Second

	// DefaultMaxTurns is the number of exchanges kept in a saved history
	DefaultMaxTurns = 20
)

var (
	ErrTimeout    = goerr.New("conversational AI call timed out")
	ErrEmptyReply = goerr.New("conversational AI returned an empty reply")
)

// Service sends one message within a session and returns the AI reply.
// Every error it returns wraps model.ErrCapability.
type Service interface {
	Send(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error)
}

// Client implements Service on a gollem LLM client. Conversation history is
// restored from and saved to a ConversationRepository keyed by session key.
type Client struct {
	llmClient     gollem.LLMClient
	conversations interfaces.ConversationRepository
	timeout       time.Duration
	maxTurns      int
}

var _ Service = &Client{}

type Option func(*Client)

// WithTimeout sets the per-call timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithMaxTurns limits the saved history to the last n exchanges of user
// message and reply. Non-positive values keep the default.
func WithMaxTurns(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTurns = n
		}
	}
}

func New(llmClient gollem.LLMClient, conversations interfaces.ConversationRepository, opts ...Option) (*Client, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if conversations == nil {
		return nil, goerr.New("conversation repository is required")
	}

	c := &Client{
		llmClient:     llmClient,
		conversations: conversations,
		timeout:       DefaultTimeout,
		maxTurns:      DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type generateResult struct {
	resp *gollem.Response
	err  error
}

func (c *Client) Send(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error) {
	logger := logging.From(ctx)
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	history, err := c.loadHistory(callCtx, key)
	if err != nil {
		return "", capabilityErr(err, "failed to load conversation history", key)
	}

	session, err := c.llmClient.NewSession(callCtx, gollem.WithSessionSystemPrompt(systemPrompt))
	if err != nil {
		return "", capabilityErr(err, "failed to create LLM session", key)
	}
	if history != nil {
		if err := session.AppendHistory(history); err != nil {
			return "", capabilityErr(err, "failed to restore conversation history", key)
		}
	}

	// deadline is enforced even if the provider ignores ctx
	ch := make(chan generateResult, 1)
	go func() {
		resp, err := session.GenerateContent(callCtx, gollem.Text(text))
		ch <- generateResult{resp: resp, err: err}
	}()

	var result generateResult
	select {
	case <-callCtx.Done():
		return "", capabilityErr(ErrTimeout, "conversational AI did not answer in time", key,
			goerr.V("timeout", c.timeout.String()))
	case result = <-ch:
	}

	if result.err != nil {
		return "", capabilityErr(result.err, "failed to generate content", key)
	}

	var reply string
	if result.resp != nil {
		reply = strings.TrimSpace(strings.Join(result.resp.Texts, "\n"))
	}
	if reply == "" {
		return "", capabilityErr(ErrEmptyReply, "no text in LLM response", key)
	}

	// a save failure does not fail the reply
	if err := c.saveHistory(ctx, key, session); err != nil {
		logger.Warn("failed to save conversation history",
			"session_key", key,
			"error", err,
		)
	}

	logger.Debug("conversational AI replied",
		"session_key", key,
		"duration", time.Since(start),
		"reply_length", len(reply),
	)
	return reply, nil
}

func (c *Client) loadHistory(ctx context.Context, key model.SessionKey) (*gollem.History, error) {
	conv, err := c.conversations.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if conv == nil || len(conv.History) == 0 {
		return nil, nil
	}

	raw, err := trimHistory(conv.History, c.maxTurns*2)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to trim conversation history", goerr.V("session_key", key))
	}

	var history gollem.History
	if err := json.Unmarshal(raw, &history); err != nil {
		return nil, goerr.Wrap(err, "failed to decode conversation history", goerr.V("session_key", key))
	}
	return &history, nil
}

func (c *Client) saveHistory(ctx context.Context, key model.SessionKey, session gollem.Session) error {
	history, err := session.History()
	if err != nil {
		return goerr.Wrap(err, "failed to read session history", goerr.V("session_key", key))
	}
	if history == nil {
		return nil
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return goerr.Wrap(err, "failed to encode session history", goerr.V("session_key", key))
	}
	if raw, err = trimHistory(raw, c.maxTurns*2); err != nil {
		return goerr.Wrap(err, "failed to trim session history", goerr.V("session_key", key))
	}

	return c.conversations.Put(ctx, &model.Conversation{Key: key, History: raw})
}

// trimHistory keeps the last limit entries of every message list in a
// serialized history. Other fields are kept as they are.
func trimHistory(raw []byte, limit int) ([]byte, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "history is not a JSON object")
	}

	trimmed := false
	for field, value := range doc {
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil || len(items) <= limit {
			continue
		}
		encoded, err := json.Marshal(items[len(items)-limit:])
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode trimmed history", goerr.V("field", field))
		}
		doc[field] = encoded
		trimmed = true
	}

	if !trimmed {
		return raw, nil
	}
	return json.Marshal(doc)
}

func capabilityErr(err error, msg string, key model.SessionKey, opts ...goerr.Option) error {
	opts = append(opts, goerr.V("session_key", key))
	return goerr.Wrap(fmt.Errorf("%w: %w", model.ErrCapability, err), msg, opts...)
}
