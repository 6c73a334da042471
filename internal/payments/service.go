package payments

import (
	"context"
	"fmt"

	"restaurant-pos/internal/domain"
)

// OrderFinalizer is the slice of the order engine the webhook needs: marking
// an order paid goes through the one derivation path, never a direct write.
type OrderFinalizer interface {
	Get(ctx context.Context, id int64) (domain.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status domain.Status, propagateToItems bool) (domain.Order, error)
}

type ServiceInterface interface {
	Initiate(ctx context.Context, req domain.InitiatePaymentRequest) (domain.Payment, error)
	Webhook(ctx context.Context, req domain.PaymentWebhookRequest) (domain.Payment, error)
	GetByOrderID(ctx context.Context, orderID int64) (domain.Payment, error)
}

type Service struct {
	repo   RepositoryInterface
	orders OrderFinalizer
}

func NewService(repo RepositoryInterface, orders OrderFinalizer) *Service {
	return &Service{repo: repo, orders: orders}
}

func (s *Service) Initiate(ctx context.Context, req domain.InitiatePaymentRequest) (domain.Payment, error) {
	if !req.Method.Valid() {
		return domain.Payment{}, domain.NewValidation(fmt.Sprintf("invalid payment method %q", req.Method))
	}
	if req.Amount <= 0 {
		return domain.Payment{}, domain.NewValidation("amount must be positive")
	}
	if _, err := s.orders.Get(ctx, req.OrderID); err != nil {
		return domain.Payment{}, err
	}
	return s.repo.Create(ctx, domain.Payment{
		OrderID: req.OrderID,
		Method:  req.Method,
		Status:  domain.PaymentPending,
		Amount:  domain.CentsFromFloat(req.Amount),
	})
}

// Webhook applies a provider callback. A completed payment finalizes the
// order as paid through the aggregation engine.
func (s *Service) Webhook(ctx context.Context, req domain.PaymentWebhookRequest) (domain.Payment, error) {
	p, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		return domain.Payment{}, err
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return domain.Payment{}, domain.NewValidation(fmt.Sprintf("invalid payment status %q", req.Status))
		}
		p.Status = req.Status
	}
	if req.TransactionRef != "" {
		p.TransactionRef = req.TransactionRef
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return domain.Payment{}, err
	}

	if updated.Status == domain.PaymentCompleted {
		if _, err := s.orders.SetOrderStatus(ctx, updated.OrderID, domain.StatusPaid, false); err != nil {
			return domain.Payment{}, fmt.Errorf("finalize order: %w", err)
		}
	}
	return updated, nil
}

func (s *Service) GetByOrderID(ctx context.Context, orderID int64) (domain.Payment, error) {
	return s.repo.GetByOrderID(ctx, orderID)
}
