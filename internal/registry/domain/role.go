package domain

import "time"

// Pre-seeded role names. Roles are created by migrations and read-only from
// this service's perspective.
const (
	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"
	RoleAdmin       = "admin"
)

type Role struct {
	ID   int64
	Name string
}

// RoleGrant is a user's membership in a role.
type RoleGrant struct {
	UserID    int64
	RoleID    int64
	GrantedAt time.Time
}
