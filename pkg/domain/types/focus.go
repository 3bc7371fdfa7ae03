package types

import "time"

// Focus is the theme of the night block of a daily timetable
type Focus string

const (
	FocusSideHustle     Focus = "Side Hustle"
	FocusHealthWellness Focus = "Health & Wellness"
)

// IsValid checks if the focus is valid
func (f Focus) IsValid() bool {
	switch f {
	case FocusSideHustle, FocusHealthWellness:
		return true
	default:
		return false
	}
}

// String returns the string representation of the focus
func (f Focus) String() string {
	return string(f)
}

// FocusFor returns the night focus of the given weekday. Monday, Wednesday,
// Friday and Sunday are side hustle nights; the other days are health nights.
func FocusFor(day time.Weekday) Focus {
	switch day {
	case time.Monday, time.Wednesday, time.Friday, time.Sunday:
		return FocusSideHustle
	default:
		return FocusHealthWellness
	}
}
