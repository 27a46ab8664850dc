package domain

import "time"

// EventStatusActive is the only status exposed by the listing endpoint.
const EventStatusActive = "active"

// Event is read-only from this service. Location is loaded eagerly alongside
// it (inner join); an event whose location row is missing is never returned.
type Event struct {
	ID              int64
	Title           string
	Description     *string // nil is distinct from empty string
	StartDate       time.Time
	EndDate         time.Time
	LocationID      int64
	Location        Location
	CategoryID      int64
	Format          string
	MaxParticipants int
	TargetAudience  string
	Status          string
	Sessions        []Session // schedule sub-units, unmanaged here and empty by default
}

type Location struct {
	ID   int64
	Name string
}

// Session is a sub-unit of an event's schedule. The registration core never
// populates these.
type Session struct {
	ID       int64
	EventID  int64
	Title    string
	StartsAt time.Time
	EndsAt   time.Time
}
