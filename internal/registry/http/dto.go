package http

import (
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
)

// UserResponse is the profile payload returned after registration, login, and
// on the profile endpoints.
type UserResponse struct {
	UserID    int64      `json:"user_id"`
	Email     string     `json:"email"`
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	AvatarURL string     `json:"avatar_url"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"is_active"`
	Roles     []string   `json:"roles"`
}

// LoginResponse carries the session token alongside the profile; the token is
// the caller's "current session" capability for subsequent requests.
type LoginResponse struct {
	SessionToken string       `json:"session_token"`
	User         UserResponse `json:"user"`
}

type EventResponse struct {
	EventID         int64     `json:"event_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Location        Location  `json:"location"`
	CategoryID      int64     `json:"category_id"`
	Format          string    `json:"format"`
	MaxParticipants int       `json:"max_participants"`
	TargetAudience  string    `json:"target_audience"`
	Status          string    `json:"status"`
}

type Location struct {
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}

func toUserResponse(u domain.User) UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return UserResponse{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
		Active:    u.Active,
		Roles:     roles,
	}
}

func toEventResponse(ev domain.Event) EventResponse {
	return EventResponse{
		EventID:         ev.ID,
		Title:           ev.Title,
		Description:     ev.Description,
		StartDate:       ev.StartDate,
		EndDate:         ev.EndDate,
		Location:        Location{LocationID: ev.Location.ID, Name: ev.Location.Name},
		CategoryID:      ev.CategoryID,
		Format:          ev.Format,
		MaxParticipants: ev.MaxParticipants,
		TargetAudience:  ev.TargetAudience,
		Status:          ev.Status,
	}
}
