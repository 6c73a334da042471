package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/domain"
)

type RepositoryInterface interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByStatuses(ctx context.Context, statuses []domain.Status, oldestFirst bool) ([]domain.Order, error)
	Update(ctx context.Context, o domain.Order) (domain.Order, error)
}

type Repository struct {
	conn *db.Conn
}

func NewRepository(conn *db.Conn) *Repository {
	return &Repository{conn: conn}
}

// Create persists the order and its items in one transaction; partial item
// lists are never visible.
func (r *Repository) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (table_id, created_by, status, total_amount, seats_allocated, extra_seats_charge)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		o.TableID, o.CreatedBy, o.Status, o.TotalAmount, o.SeatsAllocated, o.ExtraSeatsCharge,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, status, fired_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			it.OrderID, it.MenuItemID, it.Name, it.Quantity, it.Price, it.Status, it.FiredAt,
		).Scan(&it.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("insert order item %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.conn.QueryRow(ctx, `
		SELECT id, table_id, created_by, status, total_amount, seats_allocated, extra_seats_charge, created_at, updated_at
		FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.TableID, &o.CreatedBy, &o.Status, &o.TotalAmount, &o.SeatsAllocated, &o.ExtraSeatsCharge, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.itemsFor(ctx, []int64{o.ID})
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items[o.ID]
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return o, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT id, table_id, created_by, status, total_amount, seats_allocated, extra_seats_charge, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
}

func (r *Repository) ListByStatuses(ctx context.Context, statuses []domain.Status, oldestFirst bool) ([]domain.Order, error) {
	dir := "DESC"
	if oldestFirst {
		dir = "ASC"
	}
	ss := make([]string, 0, len(statuses))
	for _, s := range statuses {
		ss = append(ss, string(s))
	}
	return r.list(ctx, `
		SELECT id, table_id, created_by, status, total_amount, seats_allocated, extra_seats_charge, created_at, updated_at
		FROM orders WHERE status = ANY($1) ORDER BY created_at `+dir, ss)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var out []domain.Order
	var ids []int64
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.TableID, &o.CreatedBy, &o.Status, &o.TotalAmount, &o.SeatsAllocated, &o.ExtraSeatsCharge, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Items = []domain.OrderItem{}
		out = append(out, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []domain.Order{}, nil
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if its, ok := items[out[i].ID]; ok {
			out[i].Items = its
		}
	}
	return out, nil
}

// itemsFor loads items for the given orders, preserving append order.
func (r *Repository) itemsFor(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, order_id, menu_item_id, name, quantity, price, status, fired_at
		FROM order_items WHERE order_id = ANY($1) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]domain.OrderItem)
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.Price, &it.Status, &it.FiredAt); err != nil {
			return nil, err
		}
		grouped[it.OrderID] = append(grouped[it.OrderID], it)
	}
	return grouped, rows.Err()
}

// Update writes the order row plus every item mutation in one transaction.
// Existing items only ever change status; items with a zero ID are appends.
// Writes are last-writer-wins: there is no version check, the aggregate is
// recomputed by the service against the full item list it read.
func (r *Repository) Update(ctx context.Context, o domain.Order) (domain.Order, error) {
	tx, err := r.conn.Begin(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		UPDATE orders SET status = $2, total_amount = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		o.ID, o.Status, o.TotalAmount,
	).Scan(&o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == 0 {
			it.OrderID = o.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, menu_item_id, name, quantity, price, status, fired_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING id`,
				it.OrderID, it.MenuItemID, it.Name, it.Quantity, it.Price, it.Status, it.FiredAt,
			).Scan(&it.ID)
			if err != nil {
				return domain.Order{}, fmt.Errorf("insert order item %q: %w", it.Name, err)
			}
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE order_items SET status = $3 WHERE id = $1 AND order_id = $2`,
			it.ID, o.ID, it.Status,
		); err != nil {
			return domain.Order{}, fmt.Errorf("update order item %d: %w", it.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("commit: %w", err)
	}
	return o, nil
}
