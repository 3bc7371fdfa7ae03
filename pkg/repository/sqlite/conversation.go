package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type conversationRepository struct {
	db *sql.DB
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func (r *conversationRepository) Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error) {
	var (
		conv      model.Conversation
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT history, updated_at FROM conversations WHERE session_key = ?`, key.String(),
	).Scan(&conv.History, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to get conversation", goerr.V("session_key", key))
	}

	conv.Key = key
	conv.UpdatedAt = fromUnixNano(updatedAt)
	return &conv, nil
}

func (r *conversationRepository) Put(ctx context.Context, conv *model.Conversation) error {
	history := conv.History
	if history == nil {
		history = []byte{}
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO conversations (session_key, history, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET history = excluded.history, updated_at = excluded.updated_at`,
		conv.Key.String(), history, toUnixNano(clock.Now(ctx).UTC()),
	); err != nil {
		return wrapErr(err, "failed to put conversation", goerr.V("session_key", conv.Key))
	}
	return nil
}
