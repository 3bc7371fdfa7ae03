package model

import (
	"strings"
	"time"
)

// DefaultPersonaName is the AI persona name used when a user has not chosen one
const DefaultPersonaName = "Bro"

// DefaultUserID is used by the HTTP boundary when a request omits user_id
const DefaultUserID = "default_user"

// UserProfile is the per-user configuration of the companion
type UserProfile struct {
	UserID      string
	PersonaName string
	Goals       []string
	Preferences string
	CreatedAt   time.Time
}

// Normalize applies defaults in place and returns the profile.
func (p *UserProfile) Normalize() *UserProfile {
	if strings.TrimSpace(p.PersonaName) == "" {
		p.PersonaName = DefaultPersonaName
	}
	if p.Goals == nil {
		p.Goals = []string{}
	}
	return p
}

// Copy returns a deep copy of the profile
func (p *UserProfile) Copy() *UserProfile {
	c := *p
	c.Goals = append([]string{}, p.Goals...)
	return &c
}

// PersonaNameOf returns the persona name of the profile, or the default one
// when the profile is absent or has no name.
func PersonaNameOf(p *UserProfile) string {
	if p == nil || strings.TrimSpace(p.PersonaName) == "" {
		return DefaultPersonaName
	}
	return p.PersonaName
}

// ProfileView is the read shape of a profile. CreatedAt is nil for users
// that have never set up a profile.
type ProfileView struct {
	UserID      string     `json:"user_id"`
	PersonaName string     `json:"persona_name"`
	Goals       []string   `json:"goals"`
	Preferences string     `json:"preferences"`
	CreatedAt   *time.Time `json:"created_at"`
}

// NewProfileView builds the read shape for userID. A nil profile yields the defaults.
func NewProfileView(userID string, p *UserProfile) *ProfileView {
	if p == nil {
		return &ProfileView{
			UserID:      userID,
			PersonaName: DefaultPersonaName,
			Goals:       []string{},
		}
	}

	n := p.Copy().Normalize()
	view := &ProfileView{
		UserID:      n.UserID,
		PersonaName: n.PersonaName,
		Goals:       n.Goals,
		Preferences: n.Preferences,
	}
	if !n.CreatedAt.IsZero() {
		createdAt := n.CreatedAt
		view.CreatedAt = &createdAt
	}
	return view
}
