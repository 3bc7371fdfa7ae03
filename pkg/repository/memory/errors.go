package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
)

func invalidUserID() error {
	return goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
}
