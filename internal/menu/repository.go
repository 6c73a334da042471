package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/domain"
)

type RepositoryInterface interface {
	CreateCategory(ctx context.Context, c domain.MenuCategory) (domain.MenuCategory, error)
	GetCategory(ctx context.Context, id int64) (domain.MenuCategory, error)
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.MenuCategory, error)
	UpdateCategory(ctx context.Context, c domain.MenuCategory) (domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error)
	GetItem(ctx context.Context, id int64) (domain.MenuItem, error)
	ListItems(ctx context.Context) ([]domain.MenuItem, error)
	UpdateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

type Repository struct {
	conn *db.Conn
}

func NewRepository(conn *db.Conn) *Repository {
	return &Repository{conn: conn}
}

func (r *Repository) CreateCategory(ctx context.Context, c domain.MenuCategory) (domain.MenuCategory, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO menu_categories (name, is_active) VALUES ($1, $2) RETURNING id`,
		c.Name, c.IsActive,
	).Scan(&c.ID)
	if err != nil {
		return domain.MenuCategory{}, fmt.Errorf("insert category: %w", err)
	}
	c.Items = []domain.MenuItem{}
	return c, nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (domain.MenuCategory, error) {
	var c domain.MenuCategory
	err := r.conn.QueryRow(ctx, `SELECT id, name, is_active FROM menu_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuCategory{}, domain.ErrMenuCategoryNotFound
	}
	if err != nil {
		return domain.MenuCategory{}, fmt.Errorf("select category: %w", err)
	}
	items, err := r.itemsByCategory(ctx, []int64{c.ID})
	if err != nil {
		return domain.MenuCategory{}, err
	}
	c.Items = items[c.ID]
	if c.Items == nil {
		c.Items = []domain.MenuItem{}
	}
	return c, nil
}

func (r *Repository) ListCategories(ctx context.Context, activeOnly bool) ([]domain.MenuCategory, error) {
	query := `SELECT id, name, is_active FROM menu_categories ORDER BY id`
	if activeOnly {
		query = `SELECT id, name, is_active FROM menu_categories WHERE is_active ORDER BY id`
	}
	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	out := []domain.MenuCategory{}
	var ids []int64
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.IsActive); err != nil {
			return nil, err
		}
		c.Items = []domain.MenuItem{}
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.itemsByCategory(ctx, ids)
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

func (r *Repository) itemsByCategory(ctx context.Context, ids []int64) (map[int64][]domain.MenuItem, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, category_id, name, description, price, image, is_available
		FROM menu_items WHERE category_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64][]domain.MenuItem)
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.Image, &it.IsAvailable); err != nil {
			return nil, err
		}
		grouped[it.CategoryID] = append(grouped[it.CategoryID], it)
	}
	return grouped, rows.Err()
}

func (r *Repository) UpdateCategory(ctx context.Context, c domain.MenuCategory) (domain.MenuCategory, error) {
	tag, err := r.conn.Exec(ctx, `
		UPDATE menu_categories SET name = $2, is_active = $3 WHERE id = $1`,
		c.ID, c.Name, c.IsActive)
	if err != nil {
		return domain.MenuCategory{}, fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.MenuCategory{}, domain.ErrMenuCategoryNotFound
	}
	return c, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM menu_categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuCategoryNotFound
	}
	return nil
}

func (r *Repository) CreateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO menu_items (category_id, name, description, price, image, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		it.CategoryID, it.Name, it.Description, it.Price, it.Image, it.IsAvailable,
	).Scan(&it.ID)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("insert menu item: %w", err)
	}
	return it, nil
}

func (r *Repository) GetItem(ctx context.Context, id int64) (domain.MenuItem, error) {
	var it domain.MenuItem
	err := r.conn.QueryRow(ctx, `
		SELECT id, category_id, name, description, price, image, is_available
		FROM menu_items WHERE id = $1`, id,
	).Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.Image, &it.IsAvailable)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("select menu item: %w", err)
	}
	return it, nil
}

func (r *Repository) ListItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, category_id, name, description, price, image, is_available
		FROM menu_items ORDER BY category_id, id`)
	if err != nil {
		return nil, fmt.Errorf("select menu items: %w", err)
	}
	defer rows.Close()

	out := []domain.MenuItem{}
	for rows.Next() {
		var it domain.MenuItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Description, &it.Price, &it.Image, &it.IsAvailable); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateItem(ctx context.Context, it domain.MenuItem) (domain.MenuItem, error) {
	tag, err := r.conn.Exec(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, image = $5, is_available = $6
		WHERE id = $1`,
		it.ID, it.Name, it.Description, it.Price, it.Image, it.IsAvailable)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.MenuItem{}, domain.ErrMenuItemNotFound
	}
	return it, nil
}

func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.conn.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}
