package domain

import "time"

// BearerToken is the short-lived credential obtained from the trade server.
// It is valid iff non-empty and the current wall-clock time is before
// ExpiresAt. Validity is always re-evaluated against the clock, never cached
// as a boolean.
type BearerToken struct {
	Value     string
	ExpiresAt time.Time
}

// Valid reports whether the token can still be presented at the given time.
func (t BearerToken) Valid(now time.Time) bool {
	return t.Value != "" && now.Before(t.ExpiresAt)
}

// Identity describes the authenticated player as seen by the platform
// identity provider.
type Identity struct {
	// Handle is the provider's stable identifier for the player.
	Handle string
	// PlayerName is the display name sent to the trade server at login.
	PlayerName string
}
