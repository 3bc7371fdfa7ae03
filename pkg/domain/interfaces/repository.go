package interfaces

import (
	"context"

	"github.com/secmon-lab/brolife/pkg/domain/model"
)

// Repository is the persistence gateway for profiles, interaction logs and
// conversation history. Every storage failure is reported as model.ErrPersistence.
type Repository interface {
	Profile() ProfileRepository
	ChatLog() ChatLogRepository
	ScheduleLog() ScheduleLogRepository
	Conversation() ConversationRepository
	Close() error
}

// ProfileRepository stores one UserProfile per user ID
type ProfileRepository interface {
	// Get returns the normalized profile, or nil without error when absent
	Get(ctx context.Context, userID string) (*model.UserProfile, error)

	// Upsert creates the profile if the user ID is unseen and otherwise
	// overwrites its mutable fields, keeping CreatedAt. It reports whether
	// the profile was newly created.
	Upsert(ctx context.Context, profile *model.UserProfile) (bool, error)
}

// ChatLogRepository is an append-only log of chat exchanges
type ChatLogRepository interface {
	// Append assigns ID and Timestamp when unset and stores the record
	Append(ctx context.Context, record *model.ChatRecord) (*model.ChatRecord, error)

	// List returns at most limit records of the user, newest first.
	// limit <= 0 means model.DefaultChatLimit.
	List(ctx context.Context, userID string, limit int) ([]*model.ChatRecord, error)
}

// ScheduleLogRepository is an append-only log of generated schedules
type ScheduleLogRepository interface {
	// Append assigns ID and CreatedAt when unset and stores the record
	Append(ctx context.Context, record *model.ScheduleRecord) (*model.ScheduleRecord, error)

	// List returns at most limit records of the user, newest first.
	// limit <= 0 means model.DefaultScheduleLimit.
	List(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error)
}

// ConversationRepository keeps serialized AI conversation history per session key
type ConversationRepository interface {
	// Get returns nil without error when the session has no history yet
	Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error)
	Put(ctx context.Context, conv *model.Conversation) error
}
