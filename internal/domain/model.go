package domain

import "time"

type Order struct {
	ID               int64
	TableID          int64
	CreatedBy        int64
	Status           Status
	Items            []OrderItem
	TotalAmount      Cents
	SeatsAllocated   int
	ExtraSeatsCharge Cents
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Subtotal is the item portion of the bill, excluding the seat overage charge.
func (o Order) Subtotal() Cents {
	var sum Cents
	for _, it := range o.Items {
		sum += it.Price.Mul(it.Quantity)
	}
	return sum
}

type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Name       string
	Quantity   int
	Price      Cents
	Status     Status
	FiredAt    time.Time
}

type Table struct {
	ID          int64
	TableNumber string
	Capacity    int
	QRToken     string
	IsActive    bool
	Status      TableStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type MenuCategory struct {
	ID       int64
	Name     string
	IsActive bool
	Items    []MenuItem
}

type MenuItem struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       Cents
	Image       string
	IsAvailable bool
}

type Role struct {
	ID          int64
	Name        string
	Description string
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	RoleID       int64
	RoleName     string
	IsActive     bool
	CreatedAt    time.Time
}

type Payment struct {
	ID             int64
	OrderID        int64
	Method         PaymentMethod
	Status         PaymentStatus
	Amount         Cents
	TransactionRef string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Settings is the restaurant-wide singleton record, lazily created with these
// defaults on first read.
type Settings struct {
	RestaurantName    string
	ExtraSeatPrice    Cents
	TaxRate           float64
	ServiceChargeRate float64
	Currency          string
	UpdatedAt         time.Time
}

func DefaultSettings() Settings {
	return Settings{
		RestaurantName: "My Restaurant",
		ExtraSeatPrice: 500,
		Currency:       "INR",
	}
}
