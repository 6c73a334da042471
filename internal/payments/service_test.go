package payments

import (
	"context"
	"testing"

	"restaurant-pos/internal/domain"
)

type fakeRepo struct {
	byOrder map[int64]domain.Payment
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byOrder: map[int64]domain.Payment{}, nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, p domain.Payment) (domain.Payment, error) {
	p.ID = f.nextID
	f.nextID++
	f.byOrder[p.OrderID] = p
	return p, nil
}

func (f *fakeRepo) GetByOrderID(_ context.Context, orderID int64) (domain.Payment, error) {
	p, ok := f.byOrder[orderID]
	if !ok {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, p domain.Payment) (domain.Payment, error) {
	if _, ok := f.byOrder[p.OrderID]; !ok {
		return domain.Payment{}, domain.ErrPaymentNotFound
	}
	f.byOrder[p.OrderID] = p
	return p, nil
}

type fakeOrders struct {
	finalized map[int64]domain.Status
}

func (f *fakeOrders) Get(_ context.Context, id int64) (domain.Order, error) {
	if id == 0 {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return domain.Order{ID: id, Status: domain.StatusServed}, nil
}

func (f *fakeOrders) SetOrderStatus(_ context.Context, id int64, status domain.Status, _ bool) (domain.Order, error) {
	if f.finalized == nil {
		f.finalized = map[int64]domain.Status{}
	}
	f.finalized[id] = status
	return domain.Order{ID: id, Status: status}, nil
}

func TestInitiateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeOrders{})
	tests := []struct {
		name string
		req  domain.InitiatePaymentRequest
	}{
		{"invalid method", domain.InitiatePaymentRequest{OrderID: 1, Method: "iou", Amount: 10}},
		{"zero amount", domain.InitiatePaymentRequest{OrderID: 1, Method: domain.PaymentCash, Amount: 0}},
		{"negative amount", domain.InitiatePaymentRequest{OrderID: 1, Method: domain.PaymentCash, Amount: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Initiate(context.Background(), tt.req); !domain.IsValidation(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestWebhookCompletedFinalizesOrder(t *testing.T) {
	repo := newFakeRepo()
	orders := &fakeOrders{}
	svc := NewService(repo, orders)
	ctx := context.Background()

	p, err := svc.Initiate(ctx, domain.InitiatePaymentRequest{OrderID: 5, Method: domain.PaymentOnline, Amount: 13.75})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if p.Status != domain.PaymentPending || p.Amount != 1375 {
		t.Fatalf("payment = %+v, want pending for 1375", p)
	}

	p, err = svc.Webhook(ctx, domain.PaymentWebhookRequest{
		OrderID: 5, Status: domain.PaymentCompleted, TransactionRef: "txn-99",
	})
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if p.Status != domain.PaymentCompleted || p.TransactionRef != "txn-99" {
		t.Errorf("payment = %+v, want completed txn-99", p)
	}
	if orders.finalized[5] != domain.StatusPaid {
		t.Errorf("order 5 finalized as %s, want paid", orders.finalized[5])
	}
}

func TestWebhookFailedLeavesOrderAlone(t *testing.T) {
	repo := newFakeRepo()
	orders := &fakeOrders{}
	svc := NewService(repo, orders)
	ctx := context.Background()

	if _, err := svc.Initiate(ctx, domain.InitiatePaymentRequest{OrderID: 6, Method: domain.PaymentCard, Amount: 20}); err != nil {
		t.Fatalf("initiate: %v", err)
	}
	p, err := svc.Webhook(ctx, domain.PaymentWebhookRequest{OrderID: 6, Status: domain.PaymentFailed})
	if err != nil {
		t.Fatalf("webhook: %v", err)
	}
	if p.Status != domain.PaymentFailed {
		t.Errorf("payment status = %s, want failed", p.Status)
	}
	if len(orders.finalized) != 0 {
		t.Errorf("failed payment finalized orders: %v", orders.finalized)
	}
}

func TestWebhookUnknownOrder(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeOrders{})
	if _, err := svc.Webhook(context.Background(), domain.PaymentWebhookRequest{OrderID: 404}); !domain.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}
