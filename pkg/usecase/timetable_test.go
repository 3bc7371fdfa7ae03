package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/repository/memory"
	"github.com/secmon-lab/brolife/pkg/usecase"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

func TestTimetableUseCase_Generate(t *testing.T) {
	t.Run("generated schedule is returned and logged", func(t *testing.T) {
		repo := memory.New()
		ai := &mockCompanion{
			sendFn: func(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error) {
				return "07:30 Deep work on the app", nil
			},
		}
		uc := usecase.New(repo, usecase.WithCompanion(ai), usecase.WithLocation(time.UTC))
		ctx := withDay(t, monday)

		tt, err := uc.Timetable.Generate(ctx, "alice", []string{"Launch the app"}, "gym at 6pm")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Payload.ScheduleText).Equal("07:30 Deep work on the app")
		gt.Value(t, tt.Payload.Error).Equal("")
		gt.Value(t, tt.Payload.NightFocus).Equal(types.FocusSideHustle)
		gt.Value(t, tt.Payload.Date).Equal("2025-06-02")
		gt.Value(t, tt.Message).Equal(model.DefaultMessages().TimetableReady)

		calls := ai.Calls()
		gt.Array(t, calls).Length(1).Required()
		gt.Value(t, calls[0].Key).Equal(model.SessionKey("brolife:planning:alice"))
		gt.String(t, calls[0].Text).Contains("- Launch the app")
		gt.String(t, calls[0].Text).Contains("gym at 6pm")

		records, err := repo.ScheduleLog().List(ctx, "alice", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1).Required()
		gt.Value(t, records[0].Date).Equal("2025-06-02")
		gt.Value(t, records[0].Payload.ScheduleText).Equal("07:30 Deep work on the app")
		gt.Bool(t, records[0].Payload.Succeeded()).True()
	})

	t.Run("Tuesday is a health night", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithCompanion(&mockCompanion{}), usecase.WithLocation(time.UTC))

		tt, err := uc.Timetable.Generate(withDay(t, monday.AddDate(0, 0, 1)), "alice", []string{"x"}, "")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Payload.NightFocus).Equal(types.FocusHealthWellness)
		gt.Value(t, tt.Payload.DayName).Equal("Tuesday")
	})

	t.Run("capability failure stores a degraded payload", func(t *testing.T) {
		repo := memory.New()
		ai := &mockCompanion{
			sendFn: func(ctx context.Context, key model.SessionKey, systemPrompt, text string) (string, error) {
				return "", capabilityFailure("deadline exceeded")
			},
		}
		uc := usecase.New(repo, usecase.WithCompanion(ai), usecase.WithLocation(time.UTC))
		ctx := withDay(t, monday)

		tt, err := uc.Timetable.Generate(ctx, "alice", []string{"x"}, "")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Payload.ScheduleText).Equal("")
		gt.Value(t, tt.Payload.Error).Equal(model.TimetableFallback)
		gt.Value(t, tt.Message).Equal(model.DefaultMessages().TimetableReady)

		records, err := repo.ScheduleLog().List(ctx, "alice", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1).Required()
		gt.Bool(t, records[0].Payload.Degraded()).True()
	})

	t.Run("degraded synthesis skips the AI and is still logged", func(t *testing.T) {
		repo := memory.New()
		ai := &mockCompanion{}
		uc := usecase.New(repo, usecase.WithCompanion(ai))
		ctx := clock.With(context.Background(), clock.Fixed(time.Time{}))

		tt, err := uc.Timetable.Generate(ctx, "alice", []string{"x"}, "")
		gt.NoError(t, err).Required()
		gt.Bool(t, tt.Payload.Degraded()).True()
		gt.Array(t, ai.Calls()).Length(0)

		records, err := repo.ScheduleLog().List(context.Background(), "alice", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
	})

	t.Run("goals and preferences default to the profile", func(t *testing.T) {
		repo := memory.New()
		ai := &mockCompanion{}
		uc := usecase.New(repo, usecase.WithCompanion(ai))
		ctx := withDay(t, monday)

		_, err := uc.Profile.Setup(ctx, &model.UserProfile{
			UserID:      "alice",
			PersonaName: "Chad",
			Goals:       []string{"Read 20 pages"},
			Preferences: "early riser",
		})
		gt.NoError(t, err).Required()

		tt, err := uc.Timetable.Generate(ctx, "alice", nil, "")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Message).Equal(model.DefaultMessages().TimetableReady)

		calls := ai.Calls()
		gt.Array(t, calls).Length(1).Required()
		gt.String(t, calls[0].Text).Contains("- Read 20 pages")
		gt.String(t, calls[0].Text).Contains("early riser")
		gt.String(t, calls[0].SystemPrompt).Contains("You are Chad")
	})

	t.Run("no goals anywhere plans a generic day", func(t *testing.T) {
		repo := memory.New()
		ai := &mockCompanion{}
		uc := usecase.New(repo, usecase.WithCompanion(ai))
		ctx := withDay(t, monday)

		tt, err := uc.Timetable.Generate(ctx, "fresh_user", []string{"  "}, "")
		gt.NoError(t, err).Required()
		gt.Bool(t, tt.Payload.Succeeded()).True()
		gt.Value(t, tt.Hint).Equal(model.DefaultMessages().GoalsNeeded)

		calls := ai.Calls()
		gt.Array(t, calls).Length(1).Required()
		gt.String(t, calls[0].Text).Contains("no specific goals")

		records, err := repo.ScheduleLog().List(ctx, "fresh_user", 0)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
	})

	t.Run("goals from the request leave no hint", func(t *testing.T) {
		uc := usecase.New(memory.New(), usecase.WithCompanion(&mockCompanion{}))

		tt, err := uc.Timetable.Generate(withDay(t, monday), "alice", []string{"Ship the release"}, "")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Hint).Equal("")
	})

	t.Run("persistence failure is returned", func(t *testing.T) {
		repo := &failingRepository{Memory: memory.New(), failScheduleAppend: true}
		uc := usecase.New(repo, usecase.WithCompanion(&mockCompanion{}))

		_, err := uc.Timetable.Generate(withDay(t, monday), "alice", []string{"x"}, "")
		gt.Error(t, err).Is(model.ErrPersistence)
	})

	t.Run("custom ready message", func(t *testing.T) {
		uc := usecase.New(memory.New(),
			usecase.WithCompanion(&mockCompanion{}),
			usecase.WithMessages(&model.MessageCatalog{TimetableReady: "Here you go, {name}"}),
		)

		tt, err := uc.Timetable.Generate(withDay(t, monday), "alice", []string{"x"}, "")
		gt.NoError(t, err).Required()
		gt.Value(t, tt.Message).Equal("Here you go, Bro")
		gt.Value(t, uc.Messages().Welcome).Equal(model.DefaultMessages().Welcome)
	})
}
