package settings

import (
	"context"
	"fmt"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/domain"
)

// singletonID keys the one settings row every monetary derivation reads.
const singletonID = "restaurant_settings"

type ServiceInterface interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error)
}

// Service is an injected configuration service over the settings singleton.
// The row is lazily created with defaults on first read; the insert is
// idempotent (ON CONFLICT DO NOTHING), so concurrent first reads converge on
// one row. Updates are last-writer-wins.
type Service struct {
	conn *db.Conn
}

func NewService(conn *db.Conn) *Service {
	return &Service{conn: conn}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	if err := s.ensure(ctx); err != nil {
		return domain.Settings{}, err
	}
	return s.read(ctx)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	cur, err := s.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if req.RestaurantName != nil && *req.RestaurantName != "" {
		cur.RestaurantName = *req.RestaurantName
	}
	if req.ExtraSeatPrice != nil {
		if *req.ExtraSeatPrice < 0 {
			return domain.Settings{}, domain.NewValidation("extraSeatPrice must be >= 0")
		}
		cur.ExtraSeatPrice = domain.CentsFromFloat(*req.ExtraSeatPrice)
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return domain.Settings{}, domain.NewValidation("taxRate must be between 0 and 100")
		}
		cur.TaxRate = *req.TaxRate
	}
	if req.ServiceChargeRate != nil {
		if *req.ServiceChargeRate < 0 || *req.ServiceChargeRate > 100 {
			return domain.Settings{}, domain.NewValidation("serviceChargeRate must be between 0 and 100")
		}
		cur.ServiceChargeRate = *req.ServiceChargeRate
	}
	if req.Currency != nil && *req.Currency != "" {
		cur.Currency = *req.Currency
	}

	_, err = s.conn.Exec(ctx, `
		UPDATE settings
		SET restaurant_name = $2, extra_seat_price = $3, tax_rate = $4, service_charge_rate = $5, currency = $6, updated_at = NOW()
		WHERE id = $1`,
		singletonID, cur.RestaurantName, cur.ExtraSeatPrice, cur.TaxRate, cur.ServiceChargeRate, cur.Currency)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("update settings: %w", err)
	}
	return s.read(ctx)
}

func (s *Service) ensure(ctx context.Context) error {
	def := domain.DefaultSettings()
	_, err := s.conn.Exec(ctx, `
		INSERT INTO settings (id, restaurant_name, extra_seat_price, tax_rate, service_charge_rate, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		singletonID, def.RestaurantName, def.ExtraSeatPrice, def.TaxRate, def.ServiceChargeRate, def.Currency)
	if err != nil {
		return fmt.Errorf("ensure settings: %w", err)
	}
	return nil
}

func (s *Service) read(ctx context.Context) (domain.Settings, error) {
	var out domain.Settings
	err := s.conn.QueryRow(ctx, `
		SELECT restaurant_name, extra_seat_price, tax_rate, service_charge_rate, currency, updated_at
		FROM settings WHERE id = $1`, singletonID,
	).Scan(&out.RestaurantName, &out.ExtraSeatPrice, &out.TaxRate, &out.ServiceChargeRate, &out.Currency, &out.UpdatedAt)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("select settings: %w", err)
	}
	return out, nil
}
