package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/domain"
)

type RepositoryInterface interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, u domain.User) (domain.User, error)
	Delete(ctx context.Context, id int64) error

	CreateRole(ctx context.Context, role domain.Role) (domain.Role, error)
	GetRole(ctx context.Context, id int64) (domain.Role, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
}

type Repository struct {
	conn *db.Conn
}

func NewRepository(conn *db.Conn) *Repository {
	return &Repository{conn: conn}
}

const userSelect = `
	SELECT u.id, u.name, u.email, u.password_hash, u.role_id, r.name, u.is_active, u.created_at
	FROM users u JOIN roles r ON r.id = u.role_id`

func (r *Repository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.RoleID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.User{}, domain.ErrDuplicateEmail
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return r.get(ctx, userSelect+` WHERE u.id = $1`, id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, userSelect+` WHERE u.email = $1`, email)
}

func (r *Repository) get(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	err := r.conn.QueryRow(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.conn.Query(ctx, userSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	out := []domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, u domain.User) (domain.User, error) {
	tag, err := r.conn.Exec(ctx, `
		UPDATE users SET name = $2, email = $3, password_hash = $4, role_id = $5, is_active = $6
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.RoleID, u.IsActive)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.User{}, domain.ErrDuplicateEmail
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// CreateRole is idempotent on name so seeding can run repeatedly.
func (r *Repository) CreateRole(ctx context.Context, role domain.Role) (domain.Role, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO roles (name, description) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id`,
		role.Name, role.Description,
	).Scan(&role.ID)
	if err != nil {
		return domain.Role{}, fmt.Errorf("insert role: %w", err)
	}
	return role, nil
}

func (r *Repository) GetRole(ctx context.Context, id int64) (domain.Role, error) {
	var role domain.Role
	err := r.conn.QueryRow(ctx, `SELECT id, name, description FROM roles WHERE id = $1`, id).
		Scan(&role.ID, &role.Name, &role.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Role{}, domain.ErrRoleNotFound
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("select role: %w", err)
	}
	return role, nil
}

func (r *Repository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select roles: %w", err)
	}
	defer rows.Close()

	out := []domain.Role{}
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description); err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}
