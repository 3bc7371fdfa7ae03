package usecase

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/domain/types"
)

const sessionNamespace = "brolife"

// SessionManager derives conversational context keys. It holds no state: the
// same user and tag always map to the same key, across restarts.
type SessionManager struct{}

func NewSessionManager() *SessionManager {
	return &SessionManager{}
}

// Resolve returns "brolife:<tag>:<user_id>". Tags never contain ':' so keys
// of different tags or users cannot collide.
func (m *SessionManager) Resolve(userID string, tag types.ContextTag) (model.SessionKey, error) {
	if strings.TrimSpace(userID) == "" {
		return "", goerr.Wrap(model.ErrInvalidInput, "user_id is empty", goerr.V("tag", tag))
	}
	if !tag.IsValid() {
		return "", goerr.Wrap(model.ErrInvalidInput, "unknown context tag", goerr.V("tag", tag))
	}

	return model.SessionKey(sessionNamespace + ":" + tag.String() + ":" + userID), nil
}
