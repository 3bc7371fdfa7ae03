package usecase

import (
	"time"

	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/service/companion"
)

type UseCases struct {
	repo      interfaces.Repository
	companion companion.Service
	messages  *model.MessageCatalog
	location  *time.Location

	Sessions    *SessionManager
	Synthesizer *ScheduleSynthesizer
	Chat        *ChatUseCase
	Timetable   *TimetableUseCase
	Profile     *ProfileUseCase
	History     *HistoryUseCase
}

type Option func(*UseCases)

// WithCompanion sets the conversational AI. Without it every AI call takes the fallback path.
func WithCompanion(svc companion.Service) Option {
	return func(uc *UseCases) {
		uc.companion = svc
	}
}

// WithMessages overrides the boundary messages. Empty entries keep the defaults.
func WithMessages(msgs *model.MessageCatalog) Option {
	return func(uc *UseCases) {
		if msgs != nil {
			uc.messages = msgs.Merge(model.DefaultMessages())
		}
	}
}

// WithLocation sets the time zone used for the weekday rule and schedule dates
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCases) {
		uc.location = loc
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		messages: model.DefaultMessages(),
		location: time.Local,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Sessions = NewSessionManager()
	uc.Synthesizer = NewScheduleSynthesizer(uc.location)
	uc.Chat = NewChatUseCase(repo, uc.companion, uc.Sessions)
	uc.Timetable = NewTimetableUseCase(repo, uc.companion, uc.Sessions, uc.Synthesizer, uc.messages)
	uc.Profile = NewProfileUseCase(repo, uc.messages)
	uc.History = NewHistoryUseCase(repo)

	return uc
}

// Messages returns the effective boundary messages
func (uc *UseCases) Messages() *model.MessageCatalog {
	return uc.messages
}
