package sqlite

import (
	"context"
	"time"

	"github.com/eventdesk/registry/internal/registry/domain"
)

type rolesRepo struct {
	db querier
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	var role domain.Role
	err := r.db.QueryRowContext(ctx,
		`SELECT role_id, name FROM roles WHERE name = ?`, name,
	).Scan(&role.ID, &role.Name)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role_id, name FROM roles ORDER BY role_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) GrantRole(ctx context.Context, userID, roleID int64, grantedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id, granted_at) VALUES (?, ?, ?)`,
		userID, roleID, grantedAt)
	return mapConstraint(err)
}
