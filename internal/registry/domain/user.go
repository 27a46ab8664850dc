package domain

import "time"

// User is a detached snapshot of a user row plus its role names. Mutating it
// has no effect on storage.
type User struct {
	ID           int64
	Email        string // unique, case-sensitive
	PasswordHash string // argon2id PHC string, or legacy sha256 hex for migrated rows
	FirstName    *string
	LastName     *string
	Phone        *string
	AvatarURL    string
	CreatedAt    time.Time
	LastLogin    *time.Time
	Active       bool
	Roles        []string // role names, order irrelevant
}

// HasRole reports whether the user carries the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// ProfileComplete reports whether the user has filled in the fields the UI
// asks for after first login.
func (u User) ProfileComplete() bool {
	return u.FirstName != nil && *u.FirstName != "" &&
		u.LastName != nil && *u.LastName != ""
}
