package model

import "time"

// SessionKey identifies one conversational thread of one user
type SessionKey string

func (k SessionKey) String() string {
	return string(k)
}

// Conversation is the serialized AI conversation history of a session
type Conversation struct {
	Key       SessionKey
	History   []byte
	UpdatedAt time.Time
}

// History is the combined read of a user's logs
type History struct {
	Chats     []*ChatRecord     `json:"chats"`
	Schedules []*ScheduleRecord `json:"schedules"`
}
