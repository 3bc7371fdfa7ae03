package firestore

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
)

func wrapErr(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(fmt.Errorf("%w: %w", model.ErrPersistence, err), msg, opts...)
}

func invalidUserID() error {
	return goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
}
