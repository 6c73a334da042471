package domain

import "time"

// Wire types. The external contract uses decimal floats for money and
// camelCase field names; conversion to and from Cents happens here only.

type OrderItemView struct {
	ID         int64     `json:"id"`
	MenuItemID int64     `json:"menuItemId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	Price      float64   `json:"price"`
	Status     Status    `json:"status"`
	FiredAt    time.Time `json:"firedAt"`
}

type OrderView struct {
	ID               int64           `json:"id"`
	TableID          int64           `json:"tableId"`
	CreatedBy        int64           `json:"createdBy"`
	Status           Status          `json:"status"`
	Items            []OrderItemView `json:"items"`
	TotalAmount      float64         `json:"totalAmount"`
	SeatsAllocated   int             `json:"seatsAllocated"`
	ExtraSeatsCharge float64         `json:"extraSeatsCharge"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (o Order) View() OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemView{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Price:      it.Price.Float64(),
			Status:     it.Status,
			FiredAt:    it.FiredAt,
		})
	}
	return OrderView{
		ID:               o.ID,
		TableID:          o.TableID,
		CreatedBy:        o.CreatedBy,
		Status:           o.Status,
		Items:            items,
		TotalAmount:      o.TotalAmount.Float64(),
		SeatsAllocated:   o.SeatsAllocated,
		ExtraSeatsCharge: o.ExtraSeatsCharge.Float64(),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func OrderViews(orders []Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, o.View())
	}
	return views
}

type NewOrderItem struct {
	MenuItemID int64   `json:"menuItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

type CreateOrderRequest struct {
	TableID        int64          `json:"tableId"`
	SeatsAllocated *int           `json:"seatsAllocated,omitempty"`
	Items          []NewOrderItem `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status           Status `json:"status"`
	PropagateToItems bool   `json:"propagateToItems,omitempty"`
}

type UpdateItemStatusRequest struct {
	Status Status `json:"status"`
}

type AddItemsRequest struct {
	Items []NewOrderItem `json:"items"`
}

type CreateTableRequest struct {
	TableNumber string `json:"tableNumber"`
	Capacity    int    `json:"capacity,omitempty"`
}

type UpdateTableRequest struct {
	TableNumber *string      `json:"tableNumber,omitempty"`
	Capacity    *int         `json:"capacity,omitempty"`
	IsActive    *bool        `json:"isActive,omitempty"`
	Status      *TableStatus `json:"status,omitempty"`
}

type TableView struct {
	ID          int64       `json:"id"`
	TableNumber string      `json:"tableNumber"`
	Capacity    int         `json:"capacity"`
	QRToken     string      `json:"qrToken"`
	IsActive    bool        `json:"isActive"`
	Status      TableStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (t Table) View() TableView {
	return TableView(t)
}

type MenuItemView struct {
	ID          int64   `json:"id"`
	CategoryID  int64   `json:"categoryId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsAvailable bool    `json:"isAvailable"`
}

func (m MenuItem) View() MenuItemView {
	return MenuItemView{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price.Float64(),
		Image:       m.Image,
		IsAvailable: m.IsAvailable,
	}
}

type MenuCategoryView struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	IsActive bool           `json:"isActive"`
	Items    []MenuItemView `json:"items"`
}

func (c MenuCategory) View() MenuCategoryView {
	items := make([]MenuItemView, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, it.View())
	}
	return MenuCategoryView{ID: c.ID, Name: c.Name, IsActive: c.IsActive, Items: items}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type CreateMenuItemRequest struct {
	CategoryID  int64   `json:"categoryId"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
}

type UpdateMenuItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Image       *string  `json:"image,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"roleId"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	RoleID   *int64  `json:"roleId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type InitiatePaymentRequest struct {
	OrderID int64         `json:"orderId"`
	Method  PaymentMethod `json:"method"`
	Amount  float64       `json:"amount"`
}

type PaymentWebhookRequest struct {
	OrderID        int64         `json:"orderId"`
	Status         PaymentStatus `json:"status"`
	TransactionRef string        `json:"transactionRef,omitempty"`
}

type UpdateSettingsRequest struct {
	RestaurantName    *string  `json:"restaurantName,omitempty"`
	ExtraSeatPrice    *float64 `json:"extraSeatPrice,omitempty"`
	TaxRate           *float64 `json:"taxRate,omitempty"`
	ServiceChargeRate *float64 `json:"serviceChargeRate,omitempty"`
	Currency          *string  `json:"currency,omitempty"`
}

type RoleView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (r Role) View() RoleView {
	return RoleView(r)
}

type UserView struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   int64  `json:"roleId"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"isActive"`
}

func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, RoleID: u.RoleID, Role: u.RoleName, IsActive: u.IsActive}
}

type PaymentView struct {
	ID             int64         `json:"id"`
	OrderID        int64         `json:"orderId"`
	Method         PaymentMethod `json:"method"`
	Status         PaymentStatus `json:"status"`
	Amount         float64       `json:"amount"`
	TransactionRef string        `json:"transactionRef,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (p Payment) View() PaymentView {
	return PaymentView{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Method:         p.Method,
		Status:         p.Status,
		Amount:         p.Amount.Float64(),
		TransactionRef: p.TransactionRef,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type SettingsView struct {
	RestaurantName    string    `json:"restaurantName"`
	ExtraSeatPrice    float64   `json:"extraSeatPrice"`
	TaxRate           float64   `json:"taxRate"`
	ServiceChargeRate float64   `json:"serviceChargeRate"`
	Currency          string    `json:"currency"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func (s Settings) View() SettingsView {
	return SettingsView{
		RestaurantName:    s.RestaurantName,
		ExtraSeatPrice:    s.ExtraSeatPrice.Float64(),
		TaxRate:           s.TaxRate,
		ServiceChargeRate: s.ServiceChargeRate,
		Currency:          s.Currency,
		UpdatedAt:         s.UpdatedAt,
	}
}
