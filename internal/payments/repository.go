package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/domain"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p domain.Payment) (domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID int64) (domain.Payment, error)
	Update(ctx context.Context, p domain.Payment) (domain.Payment, error)
}

type Repository struct {
	conn *db.Conn
}

func NewRepository(conn *db.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) Create(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO payments (order_id, method, status, amount, transaction_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		p.OrderID, p.Method, p.Status, p.Amount, p.TransactionRef,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	return p, nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) (domain.Payment, error) {
	var p domain.Payment
	err := r.conn.QueryRow(ctx, `
		SELECT id, order_id, method, status, amount, transaction_ref, created_at, updated_at
		FROM payments WHERE order_id = $1
		ORDER BY id DESC LIMIT 1`, orderID,
	).Scan(&p.ID, &p.OrderID, &p.Method, &p.Status, &p.Amount, &p.TransactionRef, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("select payment: %w", err)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	err := r.conn.QueryRow(ctx, `
		UPDATE payments SET status = $2, transaction_ref = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID, p.Status, p.TransactionRef,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	if err != nil {
		return domain.Payment{}, fmt.Errorf("update payment: %w", err)
	}
	return p, nil
}
