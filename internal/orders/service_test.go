package orders

import (
	"context"
	"testing"
	"time"

	"restaurant-pos/internal/domain"
)

// fakeRepo keeps orders in memory and assigns ids the way the database would.
type fakeRepo struct {
	orders     map[int64]domain.Order
	nextOrder  int64
	nextItem   int64
	updateCall int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{orders: map[int64]domain.Order{}, nextOrder: 1, nextItem: 1}
}

func (f *fakeRepo) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	o.ID = f.nextOrder
	f.nextOrder++
	for i := range o.Items {
		o.Items[i].ID = f.nextItem
		o.Items[i].OrderID = o.ID
		f.nextItem++
	}
	f.orders[o.ID] = clone(o)
	return clone(o), nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (domain.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return clone(o), nil
}

func (f *fakeRepo) List(_ context.Context) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		out = append(out, clone(o))
	}
	return out, nil
}

func (f *fakeRepo) ListByStatuses(_ context.Context, statuses []domain.Status, _ bool) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range f.orders {
		for _, st := range statuses {
			if o.Status == st {
				out = append(out, clone(o))
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, o domain.Order) (domain.Order, error) {
	f.updateCall++
	if _, ok := f.orders[o.ID]; !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	for i := range o.Items {
		if o.Items[i].ID == 0 {
			o.Items[i].ID = f.nextItem
			o.Items[i].OrderID = o.ID
			f.nextItem++
		}
	}
	f.orders[o.ID] = clone(o)
	return clone(o), nil
}

func clone(o domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

type stubTables struct{ table domain.Table }

func (s stubTables) GetByID(context.Context, int64) (domain.Table, error) {
	return s.table, nil
}

type stubSettings struct{ cfg domain.Settings }

func (s stubSettings) Get(context.Context) (domain.Settings, error) {
	return s.cfg, nil
}

type capturingPublisher struct{ bodies [][]byte }

func (p *capturingPublisher) PublishPersistent(_ context.Context, body []byte) error {
	p.bodies = append(p.bodies, body)
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, stubTables{table: domain.Table{ID: 1, Capacity: 4}}, stubSettings{cfg: domain.Settings{ExtraSeatPrice: 500}}, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func mustCreate(t *testing.T, svc *Service, items ...domain.NewOrderItem) domain.Order {
	t.Helper()
	o, err := svc.Create(context.Background(), 7, domain.CreateOrderRequest{TableID: 1, Items: items})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return o
}

func TestCreateComputesTotals(t *testing.T) {
	svc := newTestService(newFakeRepo())
	seats := 6
	o, err := svc.Create(context.Background(), 7, domain.CreateOrderRequest{
		TableID:        1,
		SeatsAllocated: &seats,
		Items: []domain.NewOrderItem{
			{MenuItemID: 1, Name: "Dal", Quantity: 2, Price: 1.50},
			{MenuItemID: 2, Name: "Naan", Quantity: 1, Price: 0.75},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("new order status = %s, want pending", o.Status)
	}
	// 2x150 + 75 items, plus 2 extra seats at 500 each.
	if o.ExtraSeatsCharge != 1000 {
		t.Errorf("extra seats charge = %d, want 1000", o.ExtraSeatsCharge)
	}
	if o.TotalAmount != 1375 {
		t.Errorf("total = %d, want 1375", o.TotalAmount)
	}
	for _, it := range o.Items {
		if it.Status != domain.StatusPending {
			t.Errorf("item %s status = %s, want pending", it.Name, it.Status)
		}
	}
}

func TestCreateRejectsEmptyOrder(t *testing.T) {
	svc := newTestService(newFakeRepo())
	_, err := svc.Create(context.Background(), 7, domain.CreateOrderRequest{TableID: 1})
	if !domain.IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestSetItemStatusDrivesOrderStatus(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc,
		domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1},
		domain.NewOrderItem{MenuItemID: 2, Name: "Naan", Quantity: 1, Price: 1},
	)
	ctx := context.Background()

	o, err := svc.SetItemStatus(ctx, o.ID, o.Items[0].ID, domain.StatusPreparing)
	if err != nil {
		t.Fatalf("set item status: %v", err)
	}
	if o.Status != domain.StatusPreparing {
		t.Errorf("order status = %s, want preparing", o.Status)
	}
	if o.Items[1].Status != domain.StatusPending {
		t.Errorf("sibling item touched: status = %s, want pending", o.Items[1].Status)
	}

	if o, err = svc.SetItemStatus(ctx, o.ID, o.Items[0].ID, domain.StatusReady); err != nil {
		t.Fatalf("set item status: %v", err)
	}
	if o.Status != domain.StatusPending {
		t.Errorf("order status = %s, want pending while second item is open", o.Status)
	}

	if o, err = svc.SetItemStatus(ctx, o.ID, o.Items[1].ID, domain.StatusCancelled); err != nil {
		t.Fatalf("set item status: %v", err)
	}
	if o.Status != domain.StatusReady {
		t.Errorf("order status = %s, want ready once only a cancelled sibling remains", o.Status)
	}
}

func TestSetItemStatusUnknownItem(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc, domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1})
	if _, err := svc.SetItemStatus(context.Background(), o.ID, 999, domain.StatusReady); err != domain.ErrItemNotFound {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
}

func TestSetOrderStatusTerminalPropagates(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc,
		domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1},
		domain.NewOrderItem{MenuItemID: 2, Name: "Naan", Quantity: 1, Price: 1},
	)
	ctx := context.Background()

	o, err := svc.SetItemStatus(ctx, o.ID, o.Items[1].ID, domain.StatusCancelled)
	if err != nil {
		t.Fatalf("set item status: %v", err)
	}

	o, err = svc.SetOrderStatus(ctx, o.ID, domain.StatusPaid, false)
	if err != nil {
		t.Fatalf("set order status: %v", err)
	}
	if o.Status != domain.StatusPaid {
		t.Errorf("order status = %s, want paid", o.Status)
	}
	if o.Items[0].Status != domain.StatusPaid {
		t.Errorf("open item status = %s, want paid", o.Items[0].Status)
	}
	if o.Items[1].Status != domain.StatusCancelled {
		t.Errorf("cancelled item status = %s, must stay cancelled", o.Items[1].Status)
	}

	// Terminal transitions are idempotent fixed points.
	again, err := svc.SetOrderStatus(ctx, o.ID, domain.StatusPaid, false)
	if err != nil {
		t.Fatalf("repeat set order status: %v", err)
	}
	if again.Status != o.Status || again.Items[0].Status != o.Items[0].Status {
		t.Errorf("repeated transition changed the order: %+v vs %+v", again, o)
	}
}

func TestBulkServeIsDeriveFixedPoint(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc,
		domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1},
		domain.NewOrderItem{MenuItemID: 2, Name: "Naan", Quantity: 1, Price: 1},
	)
	ctx := context.Background()

	o, err := svc.SetOrderStatus(ctx, o.ID, domain.StatusServed, true)
	if err != nil {
		t.Fatalf("set order status: %v", err)
	}
	for _, it := range o.Items {
		if it.Status != domain.StatusServed {
			t.Fatalf("item %s status = %s, want served after bulk finalization", it.Name, it.Status)
		}
	}

	// A fine-grained update recomputing from the bulk-served state lands on
	// served again.
	o, err = svc.SetItemStatus(ctx, o.ID, o.Items[0].ID, domain.StatusServed)
	if err != nil {
		t.Fatalf("set item status: %v", err)
	}
	if o.Status != domain.StatusServed {
		t.Errorf("order status = %s, want served fixed point", o.Status)
	}
}

func TestSetOrderStatusPropagateFlag(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc,
		domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1},
	)
	ctx := context.Background()

	o, err := svc.SetOrderStatus(ctx, o.ID, domain.StatusPreparing, false)
	if err != nil {
		t.Fatalf("set order status: %v", err)
	}
	if o.Items[0].Status != domain.StatusPending {
		t.Errorf("item propagated without flag: %s", o.Items[0].Status)
	}

	if o, err = svc.SetOrderStatus(ctx, o.ID, domain.StatusReady, true); err != nil {
		t.Fatalf("set order status: %v", err)
	}
	if o.Items[0].Status != domain.StatusReady {
		t.Errorf("item status = %s, want ready with propagate flag", o.Items[0].Status)
	}
}

func TestAddItemsGrowsTotalAndReopens(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc, domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 2})
	ctx := context.Background()

	o, err := svc.SetItemStatus(ctx, o.ID, o.Items[0].ID, domain.StatusReady)
	if err != nil {
		t.Fatalf("set item status: %v", err)
	}
	if o.Status != domain.StatusReady {
		t.Fatalf("order status = %s, want ready", o.Status)
	}

	before := o.TotalAmount
	o, err = svc.AddItems(ctx, o.ID, []domain.NewOrderItem{
		{MenuItemID: 2, Name: "Naan", Quantity: 2, Price: 0.50},
	})
	if err != nil {
		t.Fatalf("add items: %v", err)
	}
	if o.Status != domain.StatusPreparing {
		t.Errorf("order status = %s, want preparing after reopening", o.Status)
	}
	if got := o.TotalAmount - before; got != 100 {
		t.Errorf("total grew by %d, want 100", got)
	}
	if len(o.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(o.Items))
	}
	if o.Items[0].Status != domain.StatusReady {
		t.Errorf("existing item status = %s, must stay ready", o.Items[0].Status)
	}
	if o.Items[1].Status != domain.StatusPending {
		t.Errorf("new item status = %s, want pending", o.Items[1].Status)
	}
}

func TestAddItemsRejectedOnClosedOrders(t *testing.T) {
	for _, st := range []domain.Status{domain.StatusPaid, domain.StatusCancelled} {
		svc := newTestService(newFakeRepo())
		o := mustCreate(t, svc, domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1})
		ctx := context.Background()

		if _, err := svc.SetOrderStatus(ctx, o.ID, st, false); err != nil {
			t.Fatalf("set order status: %v", err)
		}
		_, err := svc.AddItems(ctx, o.ID, []domain.NewOrderItem{
			{MenuItemID: 2, Name: "Naan", Quantity: 1, Price: 1},
		})
		if !domain.IsValidation(err) {
			t.Errorf("add items to %s order: err = %v, want validation error", st, err)
		}
	}
}

func TestReorderItemAppendsFreshCopy(t *testing.T) {
	svc := newTestService(newFakeRepo())
	o := mustCreate(t, svc, domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 2, Price: 1.50})
	ctx := context.Background()

	o, err := svc.SetItemStatus(ctx, o.ID, o.Items[0].ID, domain.StatusServed)
	if err != nil {
		t.Fatalf("set item status: %v", err)
	}
	before := o.TotalAmount

	o, err = svc.ReorderItem(ctx, o.ID, o.Items[0].ID)
	if err != nil {
		t.Fatalf("reorder item: %v", err)
	}
	if len(o.Items) != 2 {
		t.Fatalf("item count = %d, want 2", len(o.Items))
	}
	if o.Items[0].Status != domain.StatusServed {
		t.Errorf("original item status = %s, must stay served", o.Items[0].Status)
	}
	dup := o.Items[1]
	if dup.Status != domain.StatusPending || dup.MenuItemID != 1 || dup.Quantity != 2 || dup.Price != 150 {
		t.Errorf("re-fired copy = %+v, want pending duplicate of the original", dup)
	}
	if dup.ID == o.Items[0].ID {
		t.Error("re-fired copy shares the original's id")
	}
	if o.Status != domain.StatusPreparing {
		t.Errorf("order status = %s, want preparing", o.Status)
	}
	if got := o.TotalAmount - before; got != 300 {
		t.Errorf("total grew by %d, want 300", got)
	}
}

func TestEventsPublishedOnlyOnStatusChange(t *testing.T) {
	repo := newFakeRepo()
	pub := &capturingPublisher{}
	svc := NewService(repo, stubTables{table: domain.Table{ID: 1, Capacity: 4}}, stubSettings{cfg: domain.Settings{ExtraSeatPrice: 500}}, pub)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	o := mustCreate(t, svc, domain.NewOrderItem{MenuItemID: 1, Name: "Dal", Quantity: 1, Price: 1})
	if len(pub.bodies) != 1 {
		t.Fatalf("events after create = %d, want 1", len(pub.bodies))
	}

	// A no-op transition publishes nothing.
	if _, err := svc.SetOrderStatus(context.Background(), o.ID, domain.StatusPending, false); err != nil {
		t.Fatalf("set order status: %v", err)
	}
	if len(pub.bodies) != 1 {
		t.Errorf("events after no-op transition = %d, want 1", len(pub.bodies))
	}

	if _, err := svc.SetOrderStatus(context.Background(), o.ID, domain.StatusServed, false); err != nil {
		t.Fatalf("set order status: %v", err)
	}
	if len(pub.bodies) != 2 {
		t.Errorf("events after real transition = %d, want 2", len(pub.bodies))
	}
}
