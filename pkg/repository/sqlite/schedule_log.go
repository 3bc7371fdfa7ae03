package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type scheduleLogRepository struct {
	db *sql.DB
}

var _ interfaces.ScheduleLogRepository = &scheduleLogRepository{}

func (r *scheduleLogRepository) Append(ctx context.Context, record *model.ScheduleRecord) (*model.ScheduleRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	created := *record
	created.Payload = record.Payload.Copy()
	if created.ID == "" {
		created.ID = model.NewScheduleRecordID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = clock.Now(ctx).UTC()
	}

	payload, err := json.Marshal(&created.Payload)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode schedule payload", goerr.V("user_id", created.UserID))
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO schedule_log (id, user_id, date, payload, prompt_text, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(created.ID), created.UserID, created.Date, string(payload), created.Payload.PromptText, toUnixNano(created.CreatedAt),
	); err != nil {
		return nil, wrapErr(err, "failed to append schedule record",
			goerr.V("user_id", created.UserID),
			goerr.V("record_id", created.ID),
		)
	}

	return &created, nil
}

func (r *scheduleLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error) {
	if limit <= 0 {
		limit = model.DefaultScheduleLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, date, payload, prompt_text, created_at FROM schedule_log
		WHERE user_id = ? ORDER BY created_at DESC, seq DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, wrapErr(err, "failed to query schedule records", goerr.V("user_id", userID))
	}
	defer rows.Close()

	records := make([]*model.ScheduleRecord, 0)
	for rows.Next() {
		var (
			rec       model.ScheduleRecord
			id        string
			payload   string
			prompt    string
			createdAt int64
		)
		if err := rows.Scan(&id, &rec.UserID, &rec.Date, &payload, &prompt, &createdAt); err != nil {
			return nil, wrapErr(err, "failed to scan schedule record", goerr.V("user_id", userID))
		}
		if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
			return nil, wrapErr(err, "failed to decode schedule payload", goerr.V("record_id", id))
		}
		rec.ID = model.ScheduleRecordID(id)
		rec.Payload.PromptText = prompt
		rec.CreatedAt = fromUnixNano(createdAt)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate schedule records", goerr.V("user_id", userID))
	}

	return records, nil
}
