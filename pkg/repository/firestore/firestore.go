package firestore

import (
	"context"
	"net/url"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
)

// Collection names before prefixing
const (
	ProfilesCollection      = "profiles"
	ChatLogCollection       = "chat_log"
	ScheduleLogCollection   = "schedule_log"
	ConversationsCollection = "conversations"
)

type Firestore struct {
	client       *firestore.Client
	profile      *profileRepository
	chatLog      *chatLogRepository
	scheduleLog  *scheduleLogRepository
	conversation *conversationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name with "<prefix>_"
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.profile.collectionPrefix = prefix
		f.chatLog.collectionPrefix = prefix
		f.scheduleLog.collectionPrefix = prefix
		f.conversation.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	f := &Firestore{
		client:       client,
		profile:      &profileRepository{client: client},
		chatLog:      &chatLogRepository{client: client},
		scheduleLog:  &scheduleLogRepository{client: client},
		conversation: &conversationRepository{client: client},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Profile() interfaces.ProfileRepository {
	return f.profile
}

func (f *Firestore) ChatLog() interfaces.ChatLogRepository {
	return f.chatLog
}

func (f *Firestore) ScheduleLog() interfaces.ScheduleLogRepository {
	return f.scheduleLog
}

func (f *Firestore) Conversation() interfaces.ConversationRepository {
	return f.conversation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// CollectionName returns the collection name used for name under prefix
func CollectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

func collection(client *firestore.Client, prefix, name string) *firestore.CollectionRef {
	return client.Collection(CollectionName(prefix, name))
}

// docID turns an external identifier into a valid document ID. Slashes,
// dots and underscores are percent-encoded so that IDs like "a/b", ".." or
// "__x__" stay addressable and distinct.
func docID(id string) string {
	escaped := url.PathEscape(id)
	escaped = strings.ReplaceAll(escaped, ".", "%2E")
	escaped = strings.ReplaceAll(escaped, "_", "%5F")
	return escaped
}
