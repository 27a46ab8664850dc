package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
	"github.com/eventdesk/registry/internal/registry/store"
	"github.com/eventdesk/registry/pkg/cryptox"
	"github.com/eventdesk/registry/pkg/slogx"
)

var (
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// DefaultAvatar is the sentinel stored when registration supplies no avatar
// source path.
const DefaultAvatar = "default_avatar.png"

type AuthService struct {
	Store store.Store
}

// Register creates a new user with the default participant role. The user row
// and the role grant are written in one transaction: either both exist
// afterwards or neither does.
//
// Input validation (non-empty email, password length, confirmation match) is
// the presentation layer's job; this method only owns the invariants the
// storage layer must hold.
func (s *AuthService) Register(ctx context.Context, email, password, avatarPath string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// Fast-path duplicate check. The UNIQUE constraint on users.email is the
	// authoritative guard; this read only avoids hashing work for the common
	// duplicate case and is inherently racy on its own.
	_, err := s.Store.Users().GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.User{}, ErrEmailTaken
	case !errors.Is(err, store.ErrNotFound):
		return domain.User{}, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    avatarRef(avatarPath),
		CreatedAt:    now,
		Active:       true,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		id, err := tx.Users().CreateUser(ctx, user)
		if err != nil {
			return err
		}

		role, err := tx.Roles().GetRoleByName(ctx, domain.RoleParticipant)
		if err != nil {
			return fmt.Errorf("load default role: %w", err)
		}

		if err := tx.Roles().GrantRole(ctx, id, role.ID, now); err != nil {
			return fmt.Errorf("grant default role: %w", err)
		}

		user.ID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race against a concurrent registration.
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	user.PasswordHash = ""
	user.Roles = []string{domain.RoleParticipant}

	l.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate verifies credentials and returns the user's profile and role
// names. Unknown email and wrong password return the identical error so a
// caller cannot learn which half failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	stored, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("look up user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, stored.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		// Malformed stored digest is a data problem, not a bad password.
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}

	// Rows migrated from the legacy system carry unsalted sha256 digests;
	// re-hash with argon2id now that we have the plaintext. Best-effort.
	if cryptox.IsLegacyHash(stored.PasswordHash) {
		if newHash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, stored.ID, newHash); err != nil {
				l.Warn("legacy hash upgrade failed", slog.Int64("user_id", stored.ID), slog.Any("err", err))
			}
		}
	}

	// Update last_login before assembling the result so the returned profile
	// reflects this login. Best-effort: a failed update is logged, never
	// blocks a valid login.
	if err := s.Store.Users().UpdateLastLogin(ctx, stored.ID, time.Now()); err != nil {
		l.Warn("last_login update failed", slog.Int64("user_id", stored.ID), slog.Any("err", err))
	}

	user, err := s.profile(ctx, stored.ID)
	if err != nil {
		return domain.User{}, err
	}

	l.Info("user authenticated", slog.Int64("user_id", user.ID))
	return user, nil
}

// GetProfile returns the profile and role names for a user id.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (domain.User, error) {
	return s.profile(ctx, userID)
}

// UpdateProfile sets the optional profile fields filled in after first login
// and returns the refreshed profile.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone *string) (domain.User, error) {
	if err := s.Store.Users().UpdateProfile(ctx, userID, firstName, lastName, phone); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return s.profile(ctx, userID)
}

func (s *AuthService) profile(ctx context.Context, userID int64) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}

	roles, err := s.Store.Users().ListRoleNames(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load roles: %w", err)
	}

	// Detached copy for the caller; never hand out the stored digest.
	user.PasswordHash = ""
	user.Roles = roles
	return user, nil
}

// avatarRef derives the stored avatar reference from the caller-supplied
// source path: the sentinel default when empty, otherwise just the base name.
// The path is the caller's own file and is not re-validated.
func avatarRef(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultAvatar
	}
	return filepath.Base(path)
}
