package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type profileRepository struct {
	db *sql.DB
}

var _ interfaces.ProfileRepository = &profileRepository{}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, invalidUserID()
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, persona_name, goals, preferences, created_at FROM profiles WHERE user_id = ?`,
		userID,
	)

	var (
		p         model.UserProfile
		goals     string
		createdAt int64
	)
	if err := row.Scan(&p.UserID, &p.PersonaName, &goals, &p.Preferences, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to get profile", goerr.V("user_id", userID))
	}

	if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
		return nil, wrapErr(err, "failed to decode goals", goerr.V("user_id", userID))
	}
	p.CreatedAt = fromUnixNano(createdAt)

	return p.Normalize(), nil
}

// Upsert inserts with ON CONFLICT DO NOTHING; no affected row means the
// profile existed and its mutable fields are overwritten instead.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) (bool, error) {
	if profile.UserID == "" {
		return false, invalidUserID()
	}

	next := profile.Copy().Normalize()
	goals, err := json.Marshal(next.Goals)
	if err != nil {
		return false, goerr.Wrap(err, "failed to encode goals", goerr.V("user_id", next.UserID))
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, persona_name, goals, preferences, created_at)
		VALUES (?, ?, ?, ?, ?) ON CONFLICT(user_id) DO NOTHING`,
		next.UserID, next.PersonaName, string(goals), next.Preferences, toUnixNano(clock.Now(ctx).UTC()),
	)
	if err != nil {
		return false, wrapErr(err, "failed to insert profile", goerr.V("user_id", next.UserID))
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr(err, "failed to read affected rows", goerr.V("user_id", next.UserID))
	}
	if n == 1 {
		return true, nil
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET persona_name = ?, goals = ?, preferences = ? WHERE user_id = ?`,
		next.PersonaName, string(goals), next.Preferences, next.UserID,
	); err != nil {
		return false, wrapErr(err, "failed to update profile", goerr.V("user_id", next.UserID))
	}

	return false, nil
}
