// Package seed populates a fresh database with roles, staff accounts, tables
// and a sample menu. Safe to run repeatedly.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jaswdr/faker"
	"golang.org/x/crypto/bcrypt"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/menu"
	"restaurant-pos/internal/tables"
	"restaurant-pos/internal/users"
)

func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("seed")

	conn, err := db.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()
	if err := conn.Migrate(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	usersRepo := users.NewRepository(conn)

	roleIDs := map[string]int64{}
	for _, r := range []domain.Role{
		{Name: "admin", Description: "Full access"},
		{Name: "chef", Description: "Kitchen display and item status"},
		{Name: "waiter", Description: "Orders and table status"},
	} {
		role, err := usersRepo.CreateRole(ctx, r)
		if err != nil {
			return err
		}
		roleIDs[role.Name] = role.ID
	}
	lg.Info("roles_seeded", map[string]any{"count": len(roleIDs)})

	for _, u := range []struct {
		name, email, password, role string
	}{
		{"Admin", "admin@restaurant.local", "admin123", "admin"},
		{"Chef", "chef@restaurant.local", "chef123", "chef"},
		{"Waiter", "waiter@restaurant.local", "waiter123", "waiter"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, err = usersRepo.Create(ctx, domain.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: string(hash),
			RoleID:       roleIDs[u.role],
			IsActive:     true,
		})
		if err != nil && !errors.Is(err, domain.ErrDuplicateEmail) {
			return err
		}
	}
	lg.Info("users_seeded", map[string]any{"count": 3})

	tablesSvc := tables.NewService(tables.NewRepository(conn), cfg.PublicBaseURL)
	for i := 1; i <= 8; i++ {
		_, err := tablesSvc.Create(ctx, fmt.Sprintf("T%d", i), 4)
		if err != nil && !errors.Is(err, domain.ErrDuplicateTable) {
			return err
		}
	}
	lg.Info("tables_seeded", map[string]any{"count": 8})

	menuSvc := menu.NewService(menu.NewRepository(conn))
	existing, err := menuSvc.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		lg.Info("menu_already_seeded", map[string]any{"categories": len(existing)})
		return nil
	}

	fake := faker.New()
	dishes := map[string][]string{
		"Starters":  {"Samosa", "Paneer Tikka", "Spring Rolls", "Garlic Bread", "Tomato Soup"},
		"Mains":     {"Butter Chicken", "Dal Makhani", "Veg Biryani", "Margherita Pizza", "Pad Thai"},
		"Desserts":  {"Gulab Jamun", "Cheesecake", "Brownie Sundae", "Kulfi", "Tiramisu"},
		"Beverages": {"Masala Chai", "Cold Coffee", "Fresh Lime Soda", "Mango Lassi", "Iced Tea"},
	}
	for _, name := range []string{"Starters", "Mains", "Desserts", "Beverages"} {
		cat, err := menuSvc.CreateCategory(ctx, name)
		if err != nil {
			return err
		}
		for _, dish := range dishes[name] {
			_, err := menuSvc.CreateItem(ctx, domain.CreateMenuItemRequest{
				CategoryID:  cat.ID,
				Name:        dish,
				Description: fake.Lorem().Sentence(8),
				Price:       fake.Float64(2, 2, 15),
			})
			if err != nil {
				return err
			}
		}
	}
	lg.Info("menu_seeded", map[string]any{"categories": 4, "items_per_category": 5})
	return nil
}
