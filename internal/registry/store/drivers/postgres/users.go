package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/eventdesk/registry/internal/registry/domain"
)

type usersRepo struct {
	db querier
}

const userColumns = `user_id, email, password_hash, first_name, last_name, phone,
       avatar_url, created_at, last_login, is_active`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone,
		        avatar_url, created_at, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING user_id`,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Phone,
		u.AvatarURL,
		u.CreatedAt,
		u.Active,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login = $1 WHERE user_id = $2`, at, userID)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE user_id = $2`, newHash, userID)
	return err
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone *string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, phone = $3 WHERE user_id = $4`,
		firstName, lastName, phone, userID)
	return err
}

func (r *usersRepo) ListRoleNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.name FROM user_roles ur
		 JOIN roles r ON ur.role_id = r.role_id
		 WHERE ur.user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.LastLogin,
		&u.Active,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}
