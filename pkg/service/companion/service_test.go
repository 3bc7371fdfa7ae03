package companion_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/repository/memory"
	"github.com/secmon-lab/brolife/pkg/service/companion"
)

type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)

	mu       sync.Mutex
	appended []*gollem.History
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"  Let's crush it today!  "}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return &gollem.History{}, nil
}

func (s *mockLLMSession) AppendHistory(h *gollem.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appended = append(s.appended, h)
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

// brokenConversations fails every read and write
type brokenConversations struct{}

func (brokenConversations) Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error) {
	return nil, errors.New("connection refused")
}

func (brokenConversations) Put(ctx context.Context, conv *model.Conversation) error {
	return errors.New("connection refused")
}

const testKey = model.SessionKey("brolife:chat:u1")

func TestNew(t *testing.T) {
	_, err := companion.New(nil, memory.New().Conversation())
	gt.Error(t, err)

	_, err = companion.New(&mockLLMClient{}, nil)
	gt.Error(t, err)
}

func TestClient_Send(t *testing.T) {
	t.Run("returns trimmed reply", func(t *testing.T) {
		c, err := companion.New(&mockLLMClient{}, memory.New().Conversation())
		gt.NoError(t, err).Required()

		reply, err := c.Send(t.Context(), testKey, "You are Bro", "hello")
		gt.NoError(t, err).Required()
		gt.Value(t, reply).Equal("Let's crush it today!")
	})

	t.Run("passes user text to the session", func(t *testing.T) {
		var got []gollem.Input
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						got = input
						return &gollem.Response{Texts: []string{"ok"}}, nil
					},
				}, nil
			},
		}
		c, err := companion.New(llm, memory.New().Conversation())
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "plan my day")
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(1).Required()
		gt.Value(t, got[0]).Equal(gollem.Input(gollem.Text("plan my day")))
	})

	t.Run("restores history of the same session only", func(t *testing.T) {
		var sessions []*mockLLMSession
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				s := &mockLLMSession{}
				sessions = append(sessions, s)
				return s, nil
			},
		}
		c, err := companion.New(llm, memory.New().Conversation())
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "first")
		gt.NoError(t, err).Required()
		_, err = c.Send(t.Context(), testKey, "system", "second")
		gt.NoError(t, err).Required()
		_, err = c.Send(t.Context(), model.SessionKey("brolife:planning:u1"), "system", "plan")
		gt.NoError(t, err).Required()

		gt.Array(t, sessions).Length(3).Required()
		gt.Array(t, sessions[0].appended).Length(0)
		gt.Array(t, sessions[1].appended).Length(1)
		gt.Array(t, sessions[2].appended).Length(0)
	})

	t.Run("provider failure is a capability error", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, errors.New("503 service unavailable")
					},
				}, nil
			},
		}
		c, err := companion.New(llm, memory.New().Conversation())
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "hello")
		gt.Error(t, err).Is(model.ErrCapability)
	})

	t.Run("session creation failure is a capability error", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, errors.New("invalid credentials")
			},
		}
		c, err := companion.New(llm, memory.New().Conversation())
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "hello")
		gt.Error(t, err).Is(model.ErrCapability)
	})

	t.Run("empty reply is a capability error", func(t *testing.T) {
		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"   "}}, nil
					},
				}, nil
			},
		}
		c, err := companion.New(llm, memory.New().Conversation())
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "hello")
		gt.Error(t, err).Is(model.ErrCapability)
		gt.Error(t, err).Is(companion.ErrEmptyReply)
	})

	t.Run("slow provider times out even when it ignores cancellation", func(t *testing.T) {
		release := make(chan struct{})
		t.Cleanup(func() { close(release) })

		llm := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						<-release
						return &gollem.Response{Texts: []string{"too late"}}, nil
					},
				}, nil
			},
		}
		c, err := companion.New(llm, memory.New().Conversation(), companion.WithTimeout(50*time.Millisecond))
		gt.NoError(t, err).Required()

		start := time.Now()
		_, err = c.Send(t.Context(), testKey, "system", "hello")
		gt.Error(t, err).Is(model.ErrCapability)
		gt.Error(t, err).Is(companion.ErrTimeout)
		gt.Bool(t, time.Since(start) < 5*time.Second).True()
	})

	t.Run("history store failure on load is a capability error", func(t *testing.T) {
		c, err := companion.New(&mockLLMClient{}, brokenConversations{})
		gt.NoError(t, err).Required()

		_, err = c.Send(t.Context(), testKey, "system", "hello")
		gt.Error(t, err).Is(model.ErrCapability)
	})
}

func TestTrimHistory(t *testing.T) {
	messages := make([]map[string]string, 60)
	for i := range messages {
		messages[i] = map[string]string{"text": fmt.Sprintf("m%d", i)}
	}
	raw, err := json.Marshal(map[string]any{
		"type":     "openai",
		"version":  2,
		"messages": messages,
	})
	gt.NoError(t, err).Required()

	t.Run("keeps the newest entries of message lists", func(t *testing.T) {
		out, err := companion.TrimHistory(raw, 40)
		gt.NoError(t, err).Required()

		var doc struct {
			Type     string              `json:"type"`
			Version  int                 `json:"version"`
			Messages []map[string]string `json:"messages"`
		}
		gt.NoError(t, json.Unmarshal(out, &doc)).Required()
		gt.Value(t, doc.Type).Equal("openai")
		gt.Value(t, doc.Version).Equal(2)
		gt.Array(t, doc.Messages).Length(40).Required()
		gt.Value(t, doc.Messages[0]["text"]).Equal("m20")
		gt.Value(t, doc.Messages[39]["text"]).Equal("m59")
	})

	t.Run("short history is returned as is", func(t *testing.T) {
		out, err := companion.TrimHistory(raw, 100)
		gt.NoError(t, err).Required()
		gt.Value(t, string(out)).Equal(string(raw))
	})

	t.Run("non object history is an error", func(t *testing.T) {
		_, err := companion.TrimHistory([]byte(`[1,2,3]`), 2)
		gt.Error(t, err)
	})
}

func TestClient_Send_HistoryStaysBounded(t *testing.T) {
	repo := memory.New()
	c, err := companion.New(&mockLLMClient{}, repo.Conversation(), companion.WithMaxTurns(3))
	gt.NoError(t, err).Required()

	var sizes []int
	for i := range 30 {
		_, err := c.Send(t.Context(), testKey, "system", fmt.Sprintf("message %d", i))
		gt.NoError(t, err).Required()

		conv, err := repo.Conversation().Get(t.Context(), testKey)
		gt.NoError(t, err).Required()
		gt.Value(t, conv).NotNil().Required()

		var doc map[string]json.RawMessage
		gt.NoError(t, json.Unmarshal(conv.History, &doc)).Required()
		for _, value := range doc {
			var items []json.RawMessage
			if json.Unmarshal(value, &items) == nil {
				gt.Bool(t, len(items) <= 6).True()
			}
		}
		sizes = append(sizes, len(conv.History))
	}

	gt.Value(t, sizes[len(sizes)-1]).Equal(sizes[0])
}
