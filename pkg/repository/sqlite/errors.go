package sqlite

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
)

func wrapErr(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", model.ErrPersistence, err), msg, opts...)
}

func invalidUserID() error {
	return goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
}

// Timestamps are stored as unix nanoseconds so that ORDER BY is chronological.
func toUnixNano(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnixNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
