package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/service/companion"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
)

// ChatUseCase answers free-form messages through the persona
type ChatUseCase struct {
	repo      interfaces.Repository
	companion companion.Service
	sessions  *SessionManager
}

func NewChatUseCase(repo interfaces.Repository, svc companion.Service, sessions *SessionManager) *ChatUseCase {
	return &ChatUseCase{
		repo:      repo,
		companion: svc,
		sessions:  sessions,
	}
}

// Reply sends message to the AI in the user's chat session and logs the
// exchange. An AI failure yields model.ChatFallback as the response and is
// still logged; a store failure is returned as an error.
func (uc *ChatUseCase) Reply(ctx context.Context, userID, message string) (*model.ChatReply, error) {
	logger := logging.From(ctx)

	key, err := uc.sessions.Resolve(userID, types.ContextTagChat)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "message is empty", goerr.V("user_id", userID))
	}

	profile, err := uc.repo.Profile().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V("user_id", userID))
	}
	persona := model.PersonaNameOf(profile)

	text, err := ask(ctx, uc.companion, key, persona, message)
	reply := &model.ChatReply{PersonaName: persona}

	switch classify(err) {
	case outcomeSucceeded:
		reply.Response = text
	case outcomeCapabilityFailed:
		logger.Warn("conversational AI failed, replying with fallback",
			"user_id", userID,
			"error", err,
		)
		reply.Response = model.ChatFallback
		reply.Degraded = true
	default:
		return nil, err
	}

	if _, err := uc.repo.ChatLog().Append(ctx, &model.ChatRecord{
		UserID:   userID,
		Message:  message,
		Response: reply.Response,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to append chat record", goerr.V("user_id", userID))
	}

	return reply, nil
}

// ask renders the persona prompt and calls the AI. A missing AI is reported
// as a capability failure so that callers fall back uniformly.
func ask(ctx context.Context, svc companion.Service, key model.SessionKey, persona, text string) (string, error) {
	if svc == nil {
		return "", goerr.Wrap(model.ErrCapability, ErrCompanionUnavailable.Error(), goerr.V("session_key", key))
	}

	systemPrompt, err := buildSystemPrompt(persona)
	if err != nil {
		return "", err
	}

	return svc.Send(ctx, key, systemPrompt, text)
}
