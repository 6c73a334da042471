// Package notifier consumes order events from RabbitMQ and surfaces them as
// structured log lines. Delivery is advisory; clients converge by polling.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/domain"
)

func Run(ctx context.Context, cfg config.App) error {
	lg := logger.New("notifier")

	client, err := mq.Dial(cfg.Rabbit.URL())
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer client.Close()
	if err := client.DeclareAll(); err != nil {
		return fmt.Errorf("declare exchanges: %w", err)
	}
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})

	deliveries, err := client.Consume(mq.NotificationsQueue, "notifier", 10)
	if err != nil {
		return fmt.Errorf("consume %s: %w", mq.NotificationsQueue, err)
	}
	lg.Info("service_started", map[string]any{"queue": mq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			lg.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			var ev domain.OrderEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				lg.Error("event_unmarshal_failed", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			lg.Info("order_event", map[string]any{
				"event_type":      ev.EventType,
				"order_id":        ev.OrderID,
				"table_id":        ev.TableID,
				"status":          ev.Status,
				"previous_status": ev.PreviousStatus,
			})
			_ = d.Ack(false)
		}
	}
}
