package models

import "time"

// SessionToken is one row of a user's live-token set. Presence in the set is
// the sole authority for session validity: revoking a session deletes the
// row, and the signed token string becomes worthless even before any expiry.
type SessionToken struct {
	ID        string
	UserID    string
	Token     string
	CreatedAt time.Time
}
