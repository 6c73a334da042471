package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/domain"
)

// TableGetter and SettingsGetter are the slices of the table and settings
// modules the order engine needs at creation time.
type TableGetter interface {
	GetByID(ctx context.Context, id int64) (domain.Table, error)
}

type SettingsGetter interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// Publisher emits advisory order events. A nil publisher disables publishing;
// failures are logged and never fail the mutation.
type Publisher interface {
	PublishPersistent(ctx context.Context, body []byte) error
}

type ServiceInterface interface {
	Create(ctx context.Context, userID int64, req domain.CreateOrderRequest) (domain.Order, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	KitchenOrders(ctx context.Context, history bool) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status domain.Status, propagateToItems bool) (domain.Order, error)
	SetItemStatus(ctx context.Context, orderID, itemID int64, status domain.Status) (domain.Order, error)
	AddItems(ctx context.Context, orderID int64, items []domain.NewOrderItem) (domain.Order, error)
	ReorderItem(ctx context.Context, orderID, itemID int64) (domain.Order, error)
}

type Service struct {
	repo     RepositoryInterface
	tables   TableGetter
	settings SettingsGetter
	pub      Publisher
	lg       *logger.Logger
	now      func() time.Time
}

func NewService(repo RepositoryInterface, tables TableGetter, settings SettingsGetter, pub Publisher) *Service {
	return &Service{
		repo:     repo,
		tables:   tables,
		settings: settings,
		pub:      pub,
		lg:       logger.New("order-service"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req domain.CreateOrderRequest) (domain.Order, error) {
	if err := validateNewItems(req.Items); err != nil {
		return domain.Order{}, err
	}

	table, err := s.tables.GetByID(ctx, req.TableID)
	if err != nil {
		return domain.Order{}, err
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load settings: %w", err)
	}

	seats := table.Capacity
	if req.SeatsAllocated != nil {
		if *req.SeatsAllocated < 1 {
			return domain.Order{}, domain.NewValidation("seatsAllocated must be at least 1")
		}
		seats = *req.SeatsAllocated
	}

	now := s.now()
	items := make([]domain.OrderItem, 0, len(req.Items))
	var subtotal domain.Cents
	for _, in := range req.Items {
		price := domain.CentsFromFloat(in.Price)
		items = append(items, domain.OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			Quantity:   in.Quantity,
			Price:      price,
			Status:     domain.StatusPending,
			FiredAt:    now,
		})
		subtotal += price.Mul(in.Quantity)
	}

	charge, total := ComputeOrderTotal(table.Capacity, seats, subtotal, cfg.ExtraSeatPrice)

	order := domain.Order{
		TableID:          table.ID,
		CreatedBy:        userID,
		Status:           domain.StatusPending,
		Items:            items,
		TotalAmount:      total,
		SeatsAllocated:   seats,
		ExtraSeatsCharge: charge,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}

	s.publish(ctx, domain.OrderEvent{
		EventType:  domain.EventOrderCreated,
		OccurredAt: now,
		OrderID:    created.ID,
		TableID:    created.TableID,
		Status:     created.Status,
	})
	return created, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

// KitchenOrders returns the live queue oldest-first so the kitchen works in
// arrival order, or the finished history newest-first.
func (s *Service) KitchenOrders(ctx context.Context, history bool) ([]domain.Order, error) {
	if history {
		return s.repo.ListByStatuses(ctx, []domain.Status{domain.StatusServed, domain.StatusPaid, domain.StatusCancelled}, false)
	}
	return s.repo.ListByStatuses(ctx, []domain.Status{domain.StatusPending, domain.StatusPreparing, domain.StatusReady}, true)
}

// SetOrderStatus is the coarse bulk transition. Terminal statuses always
// propagate to the non-cancelled items: once an order is served, paid or
// cancelled, individual item nuance is discarded. Idempotent.
func (s *Service) SetOrderStatus(ctx context.Context, id int64, status domain.Status, propagateToItems bool) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.NewValidation(fmt.Sprintf("invalid status %q", status))
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	prev := o.Status
	o.Status = status
	if propagateToItems || status.Terminal() {
		for i := range o.Items {
			if o.Items[i].Status != domain.StatusCancelled {
				o.Items[i].Status = status
			}
		}
	}

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	s.publishStatusChange(ctx, updated, prev)
	return updated, nil
}

// SetItemStatus is the fine-grained path: it mutates exactly one item and
// recomputes the aggregate via Derive. Sibling items are never touched.
func (s *Service) SetItemStatus(ctx context.Context, orderID, itemID int64, status domain.Status) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, domain.NewValidation(fmt.Sprintf("invalid status %q", status))
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	found := false
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return domain.Order{}, domain.ErrItemNotFound
	}

	prev := o.Status
	o.Status = Derive(o.Items)

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	s.publishStatusChange(ctx, updated, prev)
	return updated, nil
}

// AddItems appends fresh pending lines and grows the total by exactly their
// sum. A finalized ready/served order is reopened to preparing; a paid or
// cancelled order rejects additions.
func (s *Service) AddItems(ctx context.Context, orderID int64, items []domain.NewOrderItem) (domain.Order, error) {
	if err := validateNewItems(items); err != nil {
		return domain.Order{}, err
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status == domain.StatusPaid || o.Status == domain.StatusCancelled {
		return domain.Order{}, domain.NewValidation(fmt.Sprintf("cannot add items to a %s order", o.Status))
	}

	now := s.now()
	for _, in := range items {
		price := domain.CentsFromFloat(in.Price)
		o.Items = append(o.Items, domain.OrderItem{
			MenuItemID: in.MenuItemID,
			Name:       in.Name,
			Quantity:   in.Quantity,
			Price:      price,
			Status:     domain.StatusPending,
			FiredAt:    now,
		})
		o.TotalAmount += price.Mul(in.Quantity)
	}

	prev := o.Status
	if o.Status == domain.StatusReady || o.Status == domain.StatusServed {
		o.Status = domain.StatusPreparing
	}

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	s.publishStatusChange(ctx, updated, prev)
	return updated, nil
}

// ReorderItem re-fires a line: a fresh pending copy of the dish enters the
// kitchen queue, the original line keeps its status and firedAt.
func (s *Service) ReorderItem(ctx context.Context, orderID, itemID int64) (domain.Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status == domain.StatusPaid || o.Status == domain.StatusCancelled {
		return domain.Order{}, domain.NewValidation(fmt.Sprintf("cannot re-fire an item on a %s order", o.Status))
	}

	var src *domain.OrderItem
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			src = &o.Items[i]
			break
		}
	}
	if src == nil {
		return domain.Order{}, domain.ErrItemNotFound
	}

	o.Items = append(o.Items, domain.OrderItem{
		MenuItemID: src.MenuItemID,
		Name:       src.Name,
		Quantity:   src.Quantity,
		Price:      src.Price,
		Status:     domain.StatusPending,
		FiredAt:    s.now(),
	})
	o.TotalAmount += src.Price.Mul(src.Quantity)

	prev := o.Status
	o.Status = domain.StatusPreparing

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return domain.Order{}, fmt.Errorf("save order: %w", err)
	}
	s.publishStatusChange(ctx, updated, prev)
	return updated, nil
}

func (s *Service) publishStatusChange(ctx context.Context, o domain.Order, prev domain.Status) {
	if o.Status == prev {
		return
	}
	s.publish(ctx, domain.OrderEvent{
		EventType:      domain.EventOrderStatusChanged,
		OccurredAt:     s.now(),
		OrderID:        o.ID,
		TableID:        o.TableID,
		Status:         o.Status,
		PreviousStatus: prev,
	})
}

func (s *Service) publish(ctx context.Context, ev domain.OrderEvent) {
	if s.pub == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		s.lg.Error("event_marshal_failed", err, map[string]any{"order_id": ev.OrderID})
		return
	}
	if err := s.pub.PublishPersistent(ctx, body); err != nil {
		s.lg.Error("event_publish_failed", err, map[string]any{"order_id": ev.OrderID, "event": ev.EventType})
		return
	}
	s.lg.Debug("event_published", map[string]any{"order_id": ev.OrderID, "event": ev.EventType})
}

func validateNewItems(items []domain.NewOrderItem) error {
	if len(items) == 0 {
		return domain.NewValidation("at least one item is required")
	}
	for _, in := range items {
		if in.Name == "" {
			return domain.NewValidation("item name is required")
		}
		if in.Quantity < 1 {
			return domain.NewValidation(fmt.Sprintf("invalid quantity for item %s", in.Name))
		}
		if in.Price < 0 {
			return domain.NewValidation(fmt.Sprintf("invalid price for item %s", in.Name))
		}
	}
	return nil
}
