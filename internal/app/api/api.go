// Package api assembles the HTTP API server: storage, messaging, services,
// handlers and routes.
package api

import (
	"context"
	"fmt"
	"time"

	"restaurant-pos/internal/auth"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/menu"
	"restaurant-pos/internal/orders"
	"restaurant-pos/internal/payments"
	"restaurant-pos/internal/public"
	"restaurant-pos/internal/reports"
	"restaurant-pos/internal/settings"
	"restaurant-pos/internal/tables"
	"restaurant-pos/internal/users"
)

func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("api")

	conn, err := db.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer conn.Close()
	if err := conn.Migrate(ctx); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	lg.Info("postgres_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Name})

	// Events are advisory; the API stays up without a broker.
	var publisher orders.Publisher
	rmq, err := mq.Dial(cfg.Rabbit.URL())
	if err != nil {
		lg.Error("rabbitmq_unavailable", err, map[string]any{"host": cfg.Rabbit.Host})
	} else {
		defer rmq.Close()
		if err := rmq.DeclareAll(); err != nil {
			return fmt.Errorf("declare exchanges: %w", err)
		}
		publisher = rmq
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})
	}

	settingsSvc := settings.NewService(conn)
	tablesSvc := tables.NewService(tables.NewRepository(conn), cfg.PublicBaseURL)
	menuSvc := menu.NewService(menu.NewRepository(conn))
	usersSvc := users.NewService(users.NewRepository(conn))
	authSvc := auth.NewService(usersSvc, cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLH)*time.Hour)
	ordersSvc := orders.NewService(orders.NewRepository(conn), tablesSvc, settingsSvc, publisher)
	paymentsSvc := payments.NewService(payments.NewRepository(conn), ordersSvc)
	reportsSvc := reports.NewService(conn)

	mux := newRouter(deps{
		auth:     authSvc,
		authH:    auth.NewHandler(authSvc),
		orders:   orders.NewHandler(ordersSvc),
		tables:   tables.NewHandler(tablesSvc),
		menu:     menu.NewHandler(menuSvc),
		users:    users.NewHandler(usersSvc),
		payments: payments.NewHandler(paymentsSvc),
		settings: settings.NewHandler(settingsSvc),
		reports:  reports.NewHandler(reportsSvc),
		public:   public.NewHandler(tablesSvc, menuSvc),
	})

	srv := httpx.New(fmt.Sprintf(":%d", cfg.HTTPPort), withRequestLog(lg, mux))
	lg.Info("service_started", map[string]any{"service": "api", "port": cfg.HTTPPort})
	return srv.Run(ctx)
}
