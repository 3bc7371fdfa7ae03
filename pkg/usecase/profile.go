package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
)

type ProfileUseCase struct {
	repo     interfaces.Repository
	messages *model.MessageCatalog
}

func NewProfileUseCase(repo interfaces.Repository, messages *model.MessageCatalog) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, messages: messages}
}

// Setup creates or overwrites the profile and returns the welcome message for
// a new user or the update message for a known one.
func (uc *ProfileUseCase) Setup(ctx context.Context, profile *model.UserProfile) (string, error) {
	if profile == nil || strings.TrimSpace(profile.UserID) == "" {
		return "", goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
	}

	p := profile.Copy()
	p.Goals = cleanGoals(p.Goals)
	p.PersonaName = strings.TrimSpace(p.PersonaName)
	p.Normalize()

	created, err := uc.repo.Profile().Upsert(ctx, p)
	if err != nil {
		return "", goerr.Wrap(err, "failed to save profile", goerr.V("user_id", p.UserID))
	}

	if created {
		return model.Render(uc.messages.Welcome, p.PersonaName), nil
	}
	return model.Render(uc.messages.Update, p.PersonaName), nil
}

// Get returns the profile of userID with defaults applied. Unknown users get
// a default view rather than an error.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*model.ProfileView, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
	}

	profile, err := uc.repo.Profile().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V("user_id", userID))
	}

	return model.NewProfileView(userID, profile), nil
}
