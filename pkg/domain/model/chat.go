package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultChatLimit is the number of chat records returned when no limit is given
const DefaultChatLimit = 20

// ChatRecordID is a UUID-based identifier for ChatRecord
type ChatRecordID string

// NewChatRecordID generates a new UUID v4 ChatRecordID
func NewChatRecordID() ChatRecordID {
	return ChatRecordID(uuid.New().String())
}

// ChatRecord is an append-only log entry of one chat exchange
type ChatRecord struct {
	ID        ChatRecordID `json:"id"`
	UserID    string       `json:"user_id"`
	Message   string       `json:"message"`
	Response  string       `json:"response"`
	Timestamp time.Time    `json:"timestamp"`
}

// ChatReply is the result of the conversational flow. Degraded is true when
// Response is the fallback text rather than an AI reply.
type ChatReply struct {
	Response    string `json:"response"`
	PersonaName string `json:"persona_name"`
	Degraded    bool   `json:"-"`
}
