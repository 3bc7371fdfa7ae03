package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type scheduleLogRepository struct {
	mu      sync.RWMutex
	entries map[string][]*model.ScheduleRecord
}

func newScheduleLogRepository() *scheduleLogRepository {
	return &scheduleLogRepository{
		entries: make(map[string][]*model.ScheduleRecord),
	}
}

func copyScheduleRecord(r *model.ScheduleRecord) *model.ScheduleRecord {
	c := *r
	c.Payload = r.Payload.Copy()
	return &c
}

func (r *scheduleLogRepository) Append(ctx context.Context, record *model.ScheduleRecord) (*model.ScheduleRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyScheduleRecord(record)
	if created.ID == "" {
		created.ID = model.NewScheduleRecordID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = clock.Now(ctx).UTC()
	}

	r.entries[created.UserID] = append(r.entries[created.UserID], created)
	return copyScheduleRecord(created), nil
}

func (r *scheduleLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = model.DefaultScheduleLimit
	}

	all := r.entries[userID]
	sorted := make([]*model.ScheduleRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		sorted = append(sorted, all[i])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]*model.ScheduleRecord, len(sorted))
	for i, rec := range sorted {
		result[i] = copyScheduleRecord(rec)
	}
	return result, nil
}
