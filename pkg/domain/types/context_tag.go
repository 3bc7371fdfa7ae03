package types

// ContextTag names an independent conversational thread of a user
type ContextTag string

const (
	ContextTagChat     ContextTag = "chat"
	ContextTagPlanning ContextTag = "planning"
)

// IsValid checks if the context tag is valid
func (t ContextTag) IsValid() bool {
	switch t {
	case ContextTagChat, ContextTagPlanning:
		return true
	default:
		return false
	}
}

// String returns the string representation of the context tag
func (t ContextTag) String() string {
	return string(t)
}
