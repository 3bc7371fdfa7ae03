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

// TimetableUseCase generates and logs the daily timetable
type TimetableUseCase struct {
	repo        interfaces.Repository
	companion   companion.Service
	sessions    *SessionManager
	synthesizer *ScheduleSynthesizer
	messages    *model.MessageCatalog
}

func NewTimetableUseCase(
	repo interfaces.Repository,
	svc companion.Service,
	sessions *SessionManager,
	synthesizer *ScheduleSynthesizer,
	messages *model.MessageCatalog,
) *TimetableUseCase {
	return &TimetableUseCase{
		repo:        repo,
		companion:   svc,
		sessions:    sessions,
		synthesizer: synthesizer,
		messages:    messages,
	}
}

// Generate builds today's schedule request, asks the AI in the user's
// planning session and logs the result. Goals and preferences missing from
// the request are taken from the profile; with no goals at all a generic day
// is planned and the result carries the goals-needed hint. An AI failure
// yields a degraded payload which is still logged and returned.
func (uc *TimetableUseCase) Generate(ctx context.Context, userID string, goals []string, preferences string) (*model.Timetable, error) {
	logger := logging.From(ctx)

	key, err := uc.sessions.Resolve(userID, types.ContextTagPlanning)
	if err != nil {
		return nil, err
	}

	profile, err := uc.repo.Profile().Get(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V("user_id", userID))
	}
	persona := model.PersonaNameOf(profile)

	goals = cleanGoals(goals)
	if len(goals) == 0 && profile != nil {
		goals = cleanGoals(profile.Goals)
	}
	if strings.TrimSpace(preferences) == "" && profile != nil {
		preferences = profile.Preferences
	}

	payload := uc.synthesizer.Build(ctx, goals, preferences)
	if !payload.Degraded() {
		text, err := ask(ctx, uc.companion, key, persona, payload.PromptText)
		switch classify(err) {
		case outcomeSucceeded:
			payload.Succeed(text)
		case outcomeCapabilityFailed:
			logger.Warn("conversational AI failed, storing degraded timetable",
				"user_id", userID,
				"error", err,
			)
			payload.Degrade(model.TimetableFallback)
		default:
			return nil, err
		}
	}

	date := payload.Date
	if date == "" {
		date = uc.synthesizer.Today(ctx)
	}

	if _, err := uc.repo.ScheduleLog().Append(ctx, &model.ScheduleRecord{
		UserID:  userID,
		Date:    date,
		Payload: *payload,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to append schedule record", goerr.V("user_id", userID))
	}

	tt := &model.Timetable{
		Payload: *payload,
		Message: model.Render(uc.messages.TimetableReady, persona),
	}
	if len(goals) == 0 {
		tt.Hint = model.Render(uc.messages.GoalsNeeded, persona)
	}
	return tt, nil
}

// cleanGoals trims goals and drops blank ones
func cleanGoals(goals []string) []string {
	cleaned := make([]string, 0, len(goals))
	for _, g := range goals {
		if g = strings.TrimSpace(g); g != "" {
			cleaned = append(cleaned, g)
		}
	}
	return cleaned
}
