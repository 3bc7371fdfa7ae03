package repository

import (
	"io"

	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
)

// ConversationStore is a ConversationRepository that owns a connection
type ConversationStore interface {
	interfaces.ConversationRepository
	io.Closer
}

type overlay struct {
	interfaces.Repository
	conversation ConversationStore
}

// WithConversation returns repo with conversation history served by store.
// Closing the result closes both.
func WithConversation(repo interfaces.Repository, store ConversationStore) interfaces.Repository {
	return &overlay{Repository: repo, conversation: store}
}

func (o *overlay) Conversation() interfaces.ConversationRepository {
	return o.conversation
}

func (o *overlay) Close() error {
	convErr := o.conversation.Close()
	if err := o.Repository.Close(); err != nil {
		return err
	}
	return convErr
}
