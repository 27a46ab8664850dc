package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
)

type usersRepo struct {
	db querier
}

const userColumns = `user_id, email, password_hash, first_name, last_name, phone,
       avatar_url, created_at, last_login, is_active`

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// sqlite string comparison is case-sensitive by default, matching the
	// exact-match contract.
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name, phone,
		        avatar_url, created_at, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Email,
		u.PasswordHash,
		mapOptionalString(u.FirstName),
		mapOptionalString(u.LastName),
		mapOptionalString(u.Phone),
		u.AvatarURL,
		u.CreatedAt,
		u.Active,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE user_id = ?`, at, userID)
	return err
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE user_id = ?`, newHash, userID)
	return err
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID int64, firstName, lastName, phone *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET first_name = ?, last_name = ?, phone = ? WHERE user_id = ?`,
		mapOptionalString(firstName),
		mapOptionalString(lastName),
		mapOptionalString(phone),
		userID,
	)
	return err
}

func (r *usersRepo) ListRoleNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.name FROM user_roles ur
		 JOIN roles r ON ur.role_id = r.role_id
		 WHERE ur.user_id = ?`, userID)
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

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		firstName sql.NullString
		lastName  sql.NullString
		phone     sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&firstName,
		&lastName,
		&phone,
		&u.AvatarURL,
		&u.CreatedAt,
		&lastLogin,
		&u.Active,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	u.FirstName = mapNullString(firstName)
	u.LastName = mapNullString(lastName)
	u.Phone = mapNullString(phone)
	u.LastLogin = mapNullTime(lastLogin)
	return u, nil
}
