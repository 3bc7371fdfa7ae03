package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type chatLogRepository struct {
	mu      sync.RWMutex
	entries map[string][]*model.ChatRecord
}

func newChatLogRepository() *chatLogRepository {
	return &chatLogRepository{
		entries: make(map[string][]*model.ChatRecord),
	}
}

func copyChatRecord(r *model.ChatRecord) *model.ChatRecord {
	c := *r
	return &c
}

func (r *chatLogRepository) Append(ctx context.Context, record *model.ChatRecord) (*model.ChatRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyChatRecord(record)
	if created.ID == "" {
		created.ID = model.NewChatRecordID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = clock.Now(ctx).UTC()
	}

	r.entries[created.UserID] = append(r.entries[created.UserID], created)
	return copyChatRecord(created), nil
}

func (r *chatLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ChatRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = model.DefaultChatLimit
	}

	all := r.entries[userID]

	// Newest insertion first so that equal timestamps keep append order reversed
	sorted := make([]*model.ChatRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		sorted = append(sorted, all[i])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]*model.ChatRecord, len(sorted))
	for i, rec := range sorted {
		result[i] = copyChatRecord(rec)
	}
	return result, nil
}
