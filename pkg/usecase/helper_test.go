package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/repository/memory"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

// 2025-06-02 is a Monday
var monday = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func withDay(t *testing.T, day time.Time) context.Context {
	t.Helper()
	return clock.With(context.Background(), clock.Fixed(day))
}

type sendCall struct {
	Key          model.SessionKey
	SystemPrompt string
	Text         string
}

// mockCompanion records calls and answers with sendFn or a canned reply
type mockCompanion struct {
	sendFn func(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error)

	mu    sync.Mutex
	calls []sendCall
}

func (m *mockCompanion) Send(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, sendCall{Key: key, SystemPrompt: systemPrompt, Text: text})
	m.mu.Unlock()

	if m.sendFn != nil {
		return m.sendFn(ctx, key, systemPrompt, text)
	}
	return "Yo, let's get it!", nil
}

func (m *mockCompanion) Calls() []sendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sendCall{}, m.calls...)
}

func capabilityFailure(msg string) error {
	return fmt.Errorf("%w: %s", model.ErrCapability, msg)
}

var errStoreDown = fmt.Errorf("%w: store is down", model.ErrPersistence)

// failingRepository wraps the memory repository and fails the selected operations
type failingRepository struct {
	*memory.Memory
	failProfileGet     bool
	failChatAppend     bool
	failScheduleAppend bool
	failScheduleList   bool
}

var _ interfaces.Repository = &failingRepository{}

func (r *failingRepository) Profile() interfaces.ProfileRepository {
	return &failingProfiles{ProfileRepository: r.Memory.Profile(), failGet: r.failProfileGet}
}

func (r *failingRepository) ChatLog() interfaces.ChatLogRepository {
	return &failingChatLog{ChatLogRepository: r.Memory.ChatLog(), failAppend: r.failChatAppend}
}

func (r *failingRepository) ScheduleLog() interfaces.ScheduleLogRepository {
	return &failingScheduleLog{
		ScheduleLogRepository: r.Memory.ScheduleLog(),
		failAppend:            r.failScheduleAppend,
		failList:              r.failScheduleList,
	}
}

type failingProfiles struct {
	interfaces.ProfileRepository
	failGet bool
}

func (r *failingProfiles) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if r.failGet {
		return nil, errStoreDown
	}
	return r.ProfileRepository.Get(ctx, userID)
}

type failingChatLog struct {
	interfaces.ChatLogRepository
	failAppend bool
}

func (r *failingChatLog) Append(ctx context.Context, record *model.ChatRecord) (*model.ChatRecord, error) {
	if r.failAppend {
		return nil, errStoreDown
	}
	return r.ChatLogRepository.Append(ctx, record)
}

type failingScheduleLog struct {
	interfaces.ScheduleLogRepository
	failAppend bool
	failList   bool
}

func (r *failingScheduleLog) Append(ctx context.Context, record *model.ScheduleRecord) (*model.ScheduleRecord, error) {
	if r.failAppend {
		return nil, errStoreDown
	}
	return r.ScheduleLogRepository.Append(ctx, record)
}

func (r *failingScheduleLog) List(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error) {
	if r.failList {
		return nil, errStoreDown
	}
	return r.ScheduleLogRepository.List(ctx, userID, limit)
}
