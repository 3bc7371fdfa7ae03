package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/brolife/pkg/domain/types"
)

// DefaultScheduleLimit is the number of schedule records returned when no limit is given
const DefaultScheduleLimit = 10

// DateLayout is the calendar date format of schedules
const DateLayout = "2006-01-02"

// ScheduleRecordID is a UUID-based identifier for ScheduleRecord
type ScheduleRecordID string

// NewScheduleRecordID generates a new UUID v4 ScheduleRecordID
func NewScheduleRecordID() ScheduleRecordID {
	return ScheduleRecordID(uuid.New().String())
}

// TimeBlock is a fixed part of the day with its theme
type TimeBlock struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
	Theme string `json:"theme"`
}

// SchedulePayload is the structured daily schedule. Once resolved it holds
// exactly one of ScheduleText and Error.
type SchedulePayload struct {
	Date         string      `json:"date"`
	DayName      string      `json:"day_name"`
	NightFocus   types.Focus `json:"night_focus"`
	Blocks       []TimeBlock `json:"blocks,omitempty"`
	PromptText   string      `json:"-"`
	ScheduleText string      `json:"schedule_text,omitempty"`
	Error        string      `json:"error,omitempty"`
	GeneratedAt  time.Time   `json:"generated_at"`
}

// Succeed stores the generated schedule text and clears any error
func (p *SchedulePayload) Succeed(text string) {
	p.ScheduleText = text
	p.Error = ""
}

// Degrade marks the payload as failed with reason and clears any schedule text
func (p *SchedulePayload) Degrade(reason string) {
	p.ScheduleText = ""
	p.Error = reason
}

// Succeeded reports whether the payload carries a schedule
func (p *SchedulePayload) Succeeded() bool {
	return p.Error == "" && p.ScheduleText != ""
}

// Degraded reports whether the payload carries an error
func (p *SchedulePayload) Degraded() bool {
	return p.Error != ""
}

// Copy returns a deep copy of the payload
func (p *SchedulePayload) Copy() SchedulePayload {
	c := *p
	if p.Blocks != nil {
		c.Blocks = append([]TimeBlock{}, p.Blocks...)
	}
	return c
}

// ScheduleRecord is an append-only log entry of one generated schedule
type ScheduleRecord struct {
	ID        ScheduleRecordID `json:"id"`
	UserID    string           `json:"user_id"`
	Date      string           `json:"date"`
	Payload   SchedulePayload  `json:"payload"`
	CreatedAt time.Time        `json:"created_at"`
}

// Timetable is the result of the timetable flow. Hint is set when the
// schedule was planned without any goals.
type Timetable struct {
	Payload SchedulePayload `json:"payload"`
	Message string          `json:"message"`
	Hint    string          `json:"hint,omitempty"`
}
