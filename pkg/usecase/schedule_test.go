package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/usecase"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

func TestScheduleSynthesizer_Build(t *testing.T) {
	synth := usecase.NewScheduleSynthesizer(time.UTC)

	t.Run("weekday decides the night focus", func(t *testing.T) {
		testCases := []struct {
			day   time.Time
			name  string
			focus types.Focus
		}{
			{monday, "Monday", types.FocusSideHustle},
			{monday.AddDate(0, 0, 1), "Tuesday", types.FocusHealthWellness},
			{monday.AddDate(0, 0, 2), "Wednesday", types.FocusSideHustle},
			{monday.AddDate(0, 0, 3), "Thursday", types.FocusHealthWellness},
			{monday.AddDate(0, 0, 4), "Friday", types.FocusSideHustle},
			{monday.AddDate(0, 0, 5), "Saturday", types.FocusHealthWellness},
			{monday.AddDate(0, 0, 6), "Sunday", types.FocusSideHustle},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				payload := synth.Build(withDay(t, tc.day), []string{"Ship the side project"}, "")
				gt.Bool(t, payload.Degraded()).False()
				gt.Value(t, payload.DayName).Equal(tc.name)
				gt.Value(t, payload.NightFocus).Equal(tc.focus)
				gt.Value(t, payload.Date).Equal(tc.day.Format("2006-01-02"))
			})
		}
	})

	t.Run("prompt carries goals, preferences and focus", func(t *testing.T) {
		payload := synth.Build(withDay(t, monday), []string{"Learn Go", "Run 5k"}, "no meetings before 10")

		gt.String(t, payload.PromptText).Contains("Monday, 2025-06-02")
		gt.String(t, payload.PromptText).Contains("- Learn Go")
		gt.String(t, payload.PromptText).Contains("- Run 5k")
		gt.String(t, payload.PromptText).Contains("no meetings before 10")
		gt.String(t, payload.PromptText).Contains("Night focus for today: Side Hustle")
		gt.String(t, payload.PromptText).Contains("7:30 AM")
		gt.String(t, payload.PromptText).Contains("12:30 AM")
	})

	t.Run("empty goals and preferences still build a prompt", func(t *testing.T) {
		payload := synth.Build(withDay(t, monday), nil, "")
		gt.Bool(t, payload.Degraded()).False()
		gt.String(t, payload.PromptText).Contains("no specific goals")
		gt.String(t, payload.PromptText).Contains("Additional preferences: none")
	})

	t.Run("four fixed blocks with the night theme", func(t *testing.T) {
		payload := synth.Build(withDay(t, monday.AddDate(0, 0, 1)), []string{"x"}, "")
		gt.Array(t, payload.Blocks).Length(4).Required()
		gt.Value(t, payload.Blocks[0].Start).Equal("07:30")
		gt.Value(t, payload.Blocks[3].End).Equal("00:30")
		gt.String(t, payload.Blocks[3].Theme).Contains("Health & Wellness")
	})

	t.Run("location shifts the calendar day", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*60*60)
		// Monday 20:00 UTC is Tuesday 05:00 in Tokyo
		at := time.Date(2025, 6, 2, 20, 0, 0, 0, time.UTC)

		payload := usecase.NewScheduleSynthesizer(tokyo).Build(withDay(t, at), []string{"x"}, "")
		gt.Value(t, payload.DayName).Equal("Tuesday")
		gt.Value(t, payload.Date).Equal("2025-06-03")
		gt.Value(t, payload.NightFocus).Equal(types.FocusHealthWellness)
		gt.Value(t, payload.GeneratedAt).Equal(at)
	})

	t.Run("unavailable clock degrades the payload", func(t *testing.T) {
		ctx := clock.With(context.Background(), clock.Fixed(time.Time{}))
		payload := synth.Build(ctx, []string{"x"}, "")
		gt.Bool(t, payload.Degraded()).True()
		gt.Value(t, payload.PromptText).Equal("")
		gt.Value(t, payload.ScheduleText).Equal("")
	})
}

func TestDailyBlocks(t *testing.T) {
	blocks := usecase.DailyBlocks("Side Hustle activities")
	gt.Array(t, blocks).Length(4).Required()

	names := []string{"Morning", "Afternoon", "Evening", "Night"}
	for i, b := range blocks {
		gt.Value(t, b.Name).Equal(names[i])
		if i > 0 {
			gt.Value(t, b.Start).Equal(blocks[i-1].End)
		}
	}
	gt.Value(t, blocks[3].Theme).Equal("Side Hustle activities")
}

func TestCleanGoals(t *testing.T) {
	gt.Value(t, usecase.CleanGoals([]string{" a ", "", "  ", "b"})).Equal([]string{"a", "b"})
	gt.Array(t, usecase.CleanGoals(nil)).Length(0)
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt, err := usecase.BuildSystemPrompt("Chad")
	gt.NoError(t, err).Required()
	gt.String(t, prompt).Contains("You are Chad")
	gt.String(t, prompt).Contains("Always refer to yourself as Chad")
	gt.String(t, prompt).Contains("Side Hustle")
	gt.String(t, prompt).Contains("Health & Wellness")
}
