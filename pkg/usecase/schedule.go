package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"text/template"
	"time"

	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
)

//go:embed prompt/timetable_request.md
var timetableRequestTmpl string

var timetableRequestPrompt = template.Must(template.New("timetable_request").Parse(timetableRequestTmpl))

const (
	dayStart = "7:30 AM"
	dayEnd   = "12:30 AM"
)

// DailyBlocks returns the four fixed blocks of a day with the given night theme
func DailyBlocks(nightTheme string) []model.TimeBlock {
	return []model.TimeBlock{
		{Name: "Morning", Start: "07:30", End: "12:00", Theme: "Focused work blocks aligned with the goals"},
		{Name: "Afternoon", Start: "12:00", End: "17:00", Theme: "Mixed productive tasks"},
		{Name: "Evening", Start: "17:00", End: "21:00", Theme: "Personal time, meals and exercise"},
		{Name: "Night", Start: "21:00", End: "00:30", Theme: nightTheme},
	}
}

// ScheduleSynthesizer builds the daily schedule request. It never talks to
// the AI and never fails: problems are reported in the payload's Error.
type ScheduleSynthesizer struct {
	location *time.Location
}

// NewScheduleSynthesizer creates a synthesizer evaluating weekdays in loc.
// A nil loc means the server's local time zone.
func NewScheduleSynthesizer(loc *time.Location) *ScheduleSynthesizer {
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleSynthesizer{location: loc}
}

// Today returns the current calendar date in the synthesizer's time zone
func (s *ScheduleSynthesizer) Today(ctx context.Context) string {
	return clock.Now(ctx).In(s.location).Format(model.DateLayout)
}

func (s *ScheduleSynthesizer) Build(ctx context.Context, goals []string, preferences string) *model.SchedulePayload {
	now := clock.Now(ctx)
	if now.IsZero() {
		payload := &model.SchedulePayload{}
		payload.Degrade("server clock is unavailable")
		return payload
	}

	local := now.In(s.location)
	focus := types.FocusFor(local.Weekday())

	payload := &model.SchedulePayload{
		Date:        local.Format(model.DateLayout),
		DayName:     local.Weekday().String(),
		NightFocus:  focus,
		Blocks:      DailyBlocks(focus.String() + " activities"),
		GeneratedAt: now.UTC(),
	}

	var buf bytes.Buffer
	if err := timetableRequestPrompt.Execute(&buf, map[string]any{
		"Date":        payload.Date,
		"DayName":     payload.DayName,
		"DayStart":    dayStart,
		"DayEnd":      dayEnd,
		"Goals":       goals,
		"Preferences": preferences,
		"NightFocus":  focus,
		"Blocks":      payload.Blocks,
	}); err != nil {
		logging.From(ctx).Error("failed to render timetable request", "error", err)
		payload.Degrade("failed to build the timetable request")
		return payload
	}

	payload.PromptText = buf.String()
	return payload
}
