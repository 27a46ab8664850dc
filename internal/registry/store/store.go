package store

import (
	"context"
	"errors"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns tidy
// and testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Users() Users
	Roles() Roles
	Events() Events

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step writes that must be atomic
	// (e.g. user insert + default role grant).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns the profile fields for a user. Roles are not
	// populated; use ListRoleNames.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail returns the user, including its password hash, by exact
	// case-sensitive email match. Used during login and as the registration
	// fast-path duplicate check.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user row and returns the generated id.
	// A violated email uniqueness constraint surfaces as ErrAlreadyExists;
	// the constraint, not the caller's pre-check, is authoritative.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdateLastLogin sets last_login. Best-effort from the caller's
	// perspective: login does not fail when this does.
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error

	// UpdatePasswordHash replaces the stored digest (legacy hash upgrades).
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// UpdateProfile sets the optional profile fields filled in after first
	// login. Nil clears a field.
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone *string) error

	// ListRoleNames returns the names of all roles granted to a user.
	ListRoleNames(ctx context.Context, userID int64) ([]string, error)
}

type Roles interface {
	// GetRoleByName fetches a pre-seeded role.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListRoles returns all roles in the system.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// GrantRole inserts a membership row. Granting the same role twice
	// surfaces ErrAlreadyExists.
	GrantRole(ctx context.Context, userID, roleID int64, grantedAt time.Time) error
}

type Events interface {
	// ListActiveEvents returns all events with status 'active', each with its
	// location eagerly loaded. Events whose location row is missing are
	// excluded (inner join semantics).
	ListActiveEvents(ctx context.Context) ([]domain.Event, error)

	// GetEventByID fetches a single event with its location, regardless of
	// status.
	GetEventByID(ctx context.Context, id int64) (domain.Event, error)

	// CreateLocation inserts a location row and returns the generated id.
	// Event administration lives in back-office tooling; the write path stays
	// here because this layer owns the schema.
	CreateLocation(ctx context.Context, name string) (int64, error)

	// CreateEvent inserts an event row and returns the generated id.
	CreateEvent(ctx context.Context, e domain.Event) (int64, error)
}
