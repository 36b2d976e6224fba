package domain

import "time"

// Session is the verified identity attached to a request after the bearer
// token has been checked. It is created on successful authentication and
// passed explicitly to every service call; handlers never trust
// client-submitted role or stay values.
type Session struct {
	ActorID   string
	Role      Role
	StayID    string
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
