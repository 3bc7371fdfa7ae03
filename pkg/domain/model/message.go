package model

import "strings"

const (
	// ChatFallback replaces the AI reply when the capability fails
	ChatFallback = "Hey, I'm having some technical issues right now. Let me try again in a bit!"

	// TimetableFallback is stored as the error of a degraded schedule payload
	TimetableFallback = "Couldn't generate your timetable right now, bro. Technical issue, try again shortly."
)

// MessageCatalog holds user facing boundary messages. "{name}" is replaced by
// the persona name.
type MessageCatalog struct {
	Welcome        string `toml:"welcome"`
	Update         string `toml:"update"`
	TimetableReady string `toml:"timetable_ready"`
	GoalsNeeded    string `toml:"goals_needed"`
}

// DefaultMessages returns the built-in catalog
func DefaultMessages() *MessageCatalog {
	return &MessageCatalog{
		Welcome:        "Welcome to Brolife, {name}! Let's get productive! 🚀",
		Update:         "Updated your profile, {name}! 💪",
		TimetableReady: "Your personalized timetable is ready! 🎯",
		GoalsNeeded:    "Hey! Set up your goals first so I can create a personalized timetable for you. 🎯",
	}
}

// Merge returns a catalog where empty entries of c are taken from base
func (c *MessageCatalog) Merge(base *MessageCatalog) *MessageCatalog {
	pick := func(v, fallback string) string {
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}
	return &MessageCatalog{
		Welcome:        pick(c.Welcome, base.Welcome),
		Update:         pick(c.Update, base.Update),
		TimetableReady: pick(c.TimetableReady, base.TimetableReady),
		GoalsNeeded:    pick(c.GoalsNeeded, base.GoalsNeeded),
	}
}

// Render substitutes the persona name into msg
func Render(msg, name string) string {
	return strings.ReplaceAll(msg, "{name}", name)
}
