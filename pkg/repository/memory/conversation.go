package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type conversationRepository struct {
	mu    sync.RWMutex
	convs map[model.SessionKey]*model.Conversation
}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		convs: make(map[model.SessionKey]*model.Conversation),
	}
}

func copyConversation(c *model.Conversation) *model.Conversation {
	return &model.Conversation{
		Key:       c.Key,
		History:   append([]byte{}, c.History...),
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *conversationRepository) Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.convs[key]
	if !ok {
		return nil, nil
	}
	return copyConversation(c), nil
}

func (r *conversationRepository) Put(ctx context.Context, conv *model.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyConversation(conv)
	stored.UpdatedAt = clock.Now(ctx).UTC()
	r.convs[conv.Key] = stored
	return nil
}
