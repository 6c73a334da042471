package reports

import (
	"context"
	"fmt"
	"net/http"

	"restaurant-pos/internal/common/db"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/domain"
)

type SalesReport struct {
	TotalSales float64 `json:"totalSales"`
	Count      int     `json:"count"`
}

type OrdersReport struct {
	TotalOrders   int `json:"totalOrders"`
	PendingOrders int `json:"pendingOrders"`
	ServedOrders  int `json:"servedOrders"`
}

type TablesReport struct {
	TotalTables  int `json:"totalTables"`
	ActiveTables int `json:"activeTables"`
}

type Service struct {
	conn *db.Conn
}

func NewService(conn *db.Conn) *Service {
	return &Service{conn: conn}
}

func (s *Service) Sales(ctx context.Context) (SalesReport, error) {
	var total domain.Cents
	var count int
	err := s.conn.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0), COUNT(*) FROM payments WHERE status = 'completed'`,
	).Scan(&total, &count)
	if err != nil {
		return SalesReport{}, fmt.Errorf("sales report: %w", err)
	}
	return SalesReport{TotalSales: total.Float64(), Count: count}, nil
}

func (s *Service) Orders(ctx context.Context) (OrdersReport, error) {
	var out OrdersReport
	err := s.conn.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COUNT(*) FILTER (WHERE status = 'served')
		FROM orders`,
	).Scan(&out.TotalOrders, &out.PendingOrders, &out.ServedOrders)
	if err != nil {
		return OrdersReport{}, fmt.Errorf("orders report: %w", err)
	}
	return out, nil
}

func (s *Service) Tables(ctx context.Context) (TablesReport, error) {
	var out TablesReport
	err := s.conn.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active) FROM tables`,
	).Scan(&out.TotalTables, &out.ActiveTables)
	if err != nil {
		return TablesReport{}, fmt.Errorf("tables report: %w", err)
	}
	return out, nil
}

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Sales(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Orders(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Tables(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
