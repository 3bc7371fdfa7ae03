package sqlite

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type chatLogRepository struct {
	db *sql.DB
}

var _ interfaces.ChatLogRepository = &chatLogRepository{}

func (r *chatLogRepository) Append(ctx context.Context, record *model.ChatRecord) (*model.ChatRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	created := *record
	if created.ID == "" {
		created.ID = model.NewChatRecordID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = clock.Now(ctx).UTC()
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_log (id, user_id, message, response, timestamp) VALUES (?, ?, ?, ?, ?)`,
		string(created.ID), created.UserID, created.Message, created.Response, toUnixNano(created.Timestamp),
	); err != nil {
		return nil, wrapErr(err, "failed to append chat record",
			goerr.V("user_id", created.UserID),
			goerr.V("record_id", created.ID),
		)
	}

	return &created, nil
}

func (r *chatLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ChatRecord, error) {
	if limit <= 0 {
		limit = model.DefaultChatLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, response, timestamp FROM chat_log
		WHERE user_id = ? ORDER BY timestamp DESC, seq DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, wrapErr(err, "failed to query chat records", goerr.V("user_id", userID))
	}
	defer rows.Close()

	records := make([]*model.ChatRecord, 0)
	for rows.Next() {
		var (
			rec model.ChatRecord
			id  string
			ts  int64
		)
		if err := rows.Scan(&id, &rec.UserID, &rec.Message, &rec.Response, &ts); err != nil {
			return nil, wrapErr(err, "failed to scan chat record", goerr.V("user_id", userID))
		}
		rec.ID = model.ChatRecordID(id)
		rec.Timestamp = fromUnixNano(ts)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err, "failed to iterate chat records", goerr.V("user_id", userID))
	}

	return records, nil
}
