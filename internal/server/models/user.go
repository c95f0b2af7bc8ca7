package models

import "time"

// User is an account record. PasswordHash is a bcrypt hash; the plaintext
// password never reaches persistence. The avatar blob is stored separately
// and is not part of this struct.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Age          *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate describes a partial profile update. Nil fields are untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Age          *int64
}
