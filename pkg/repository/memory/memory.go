package memory

import (
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
)

// Memory is an in-process repository for development and tests.
// Data does not survive a restart.
type Memory struct {
	profile      *profileRepository
	chatLog      *chatLogRepository
	scheduleLog  *scheduleLogRepository
	conversation *conversationRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile:      newProfileRepository(),
		chatLog:      newChatLogRepository(),
		scheduleLog:  newScheduleLogRepository(),
		conversation: newConversationRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) ChatLog() interfaces.ChatLogRepository {
	return m.chatLog
}

func (m *Memory) ScheduleLog() interfaces.ScheduleLogRepository {
	return m.scheduleLog
}

func (m *Memory) Conversation() interfaces.ConversationRepository {
	return m.conversation
}

func (m *Memory) Close() error {
	return nil
}
