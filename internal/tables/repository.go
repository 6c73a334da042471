package tables

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
	Create(ctx context.Context, t domain.Table) (domain.Table, error)
	GetByID(ctx context.Context, id int64) (domain.Table, error)
	GetByQRToken(ctx context.Context, token string) (domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	Update(ctx context.Context, t domain.Table) (domain.Table, error)
	Delete(ctx context.Context, id int64) error
}

type Repository struct {
	conn *db.Conn
}

func NewRepository(conn *db.Conn) *Repository {
	return &Repository{conn: conn}
}

const tableCols = `id, table_number, capacity, qr_token, is_active, status, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, t domain.Table) (domain.Table, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO tables (table_number, capacity, qr_token, is_active, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		t.TableNumber, t.Capacity, t.QRToken, t.IsActive, t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Table{}, domain.ErrDuplicateTable
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("insert table: %w", err)
	}
	return t, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (domain.Table, error) {
	return r.get(ctx, `SELECT `+tableCols+` FROM tables WHERE id = $1`, id)
}

// GetByQRToken resolves an *active* table only; rotated or disabled tokens
// stop resolving immediately.
func (r *Repository) GetByQRToken(ctx context.Context, token string) (domain.Table, error) {
	return r.get(ctx, `SELECT `+tableCols+` FROM tables WHERE qr_token = $1 AND is_active`, token)
}

func (r *Repository) get(ctx context.Context, query string, arg any) (domain.Table, error) {
	var t domain.Table
	err := r.conn.QueryRow(ctx, query, arg).
		Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.QRToken, &t.IsActive, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, domain.ErrTableNotFound
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("select table: %w", err)
	}
	return t, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.conn.Query(ctx, `SELECT `+tableCols+` FROM tables ORDER BY table_number`)
	if err != nil {
		return nil, fmt.Errorf("select tables: %w", err)
	}
	defer rows.Close()

	out := []domain.Table{}
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Capacity, &t.QRToken, &t.IsActive, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, t domain.Table) (domain.Table, error) {
	err := r.conn.QueryRow(ctx, `
		UPDATE tables
		SET table_number = $2, capacity = $3, qr_token = $4, is_active = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		t.ID, t.TableNumber, t.Capacity, t.QRToken, t.IsActive, t.Status,
	).Scan(&t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, domain.ErrTableNotFound
	}
	if isUniqueViolation(err) {
		return domain.Table{}, domain.ErrDuplicateTable
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("update table: %w", err)
	}
	return t, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTableNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
