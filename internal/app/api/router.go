package api

import (
	"net/http"

	"restaurant-pos/internal/auth"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/menu"
	"restaurant-pos/internal/orders"
	"restaurant-pos/internal/payments"
	"restaurant-pos/internal/public"
	"restaurant-pos/internal/reports"
	"restaurant-pos/internal/settings"
	"restaurant-pos/internal/tables"
	"restaurant-pos/internal/users"
)

type deps struct {
	auth     *auth.Service
	authH    *auth.Handler
	orders   *orders.Handler
	tables   *tables.Handler
	menu     *menu.Handler
	users    *users.Handler
	payments *payments.Handler
	settings *settings.Handler
	reports  *reports.Handler
	public   *public.Handler
}

func newRouter(d deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Unauthenticated surface.
	mux.HandleFunc("POST /api/auth/login", d.authH.Login)
	mux.HandleFunc("GET /api/public/table/{qrToken}/validate", d.public.Validate)
	mux.HandleFunc("GET /api/public/table/{qrToken}/menu", d.public.Menu)
	mux.HandleFunc("POST /api/payments/webhook", d.payments.Webhook)
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"message": "API is running"})
	})

	// protect wraps a handler with bearer auth and an optional role gate.
	protect := func(h http.HandlerFunc, roles ...string) http.Handler {
		if len(roles) > 0 {
			h = auth.RequireRole(h, roles...)
		}
		return d.auth.Middleware(h)
	}
	admin := []string{auth.RoleAdmin}
	kitchen := []string{auth.RoleChef, auth.RoleAdmin}
	floor := []string{auth.RoleWaiter, auth.RoleAdmin}

	mux.Handle("GET /api/auth/me", protect(d.authH.Me))
	mux.Handle("POST /api/auth/logout", protect(d.authH.Logout))

	// Orders: the waiter's surface, polled every 15s.
	mux.Handle("POST /api/orders", protect(d.orders.Create))
	mux.Handle("GET /api/orders", protect(d.orders.List))
	mux.Handle("GET /api/orders/{id}", protect(d.orders.Get))
	mux.Handle("PUT /api/orders/{id}/status", protect(d.orders.UpdateStatus))
	mux.Handle("PUT /api/orders/{id}/cancel", protect(d.orders.Cancel))
	mux.Handle("PATCH /api/orders/{id}/items", protect(d.orders.AddItems))

	// Kitchen: the chef's surface, polled every 10s.
	mux.Handle("GET /api/kitchen/orders", protect(d.orders.KitchenList, kitchen...))
	mux.Handle("PUT /api/kitchen/orders/{id}/items/{itemId}/status", protect(d.orders.UpdateItemStatus, kitchen...))
	mux.Handle("POST /api/kitchen/orders/{id}/items/{itemId}/reorder", protect(d.orders.Reorder, kitchen...))

	// Tables: admin manages them, the floor flips status.
	mux.Handle("GET /api/tables", protect(d.tables.List))
	mux.Handle("POST /api/tables", protect(d.tables.Create, admin...))
	mux.Handle("GET /api/tables/{id}", protect(d.tables.Get))
	mux.Handle("PUT /api/tables/{id}", protect(d.tables.Update, floor...))
	mux.Handle("DELETE /api/tables/{id}", protect(d.tables.Delete, admin...))
	mux.Handle("POST /api/tables/{id}/regenerate-qr", protect(d.tables.RegenerateQR, admin...))
	mux.Handle("GET /api/tables/{id}/qr", protect(d.tables.QRImage, admin...))

	// Menu.
	mux.Handle("GET /api/menu/categories", protect(d.menu.ListCategories))
	mux.Handle("POST /api/menu/categories", protect(d.menu.CreateCategory, admin...))
	mux.Handle("PUT /api/menu/categories/{id}", protect(d.menu.UpdateCategory, admin...))
	mux.Handle("DELETE /api/menu/categories/{id}", protect(d.menu.DeleteCategory, admin...))
	mux.Handle("GET /api/menu/items", protect(d.menu.ListItems))
	mux.Handle("POST /api/menu/items", protect(d.menu.CreateItem, admin...))
	mux.Handle("PUT /api/menu/items/{id}", protect(d.menu.UpdateItem, admin...))
	mux.Handle("DELETE /api/menu/items/{id}", protect(d.menu.DeleteItem, admin...))
	mux.Handle("PUT /api/menu/items/{id}/availability", protect(d.menu.ToggleAvailability, admin...))

	// Staff administration.
	mux.Handle("GET /api/users", protect(d.users.List, admin...))
	mux.Handle("POST /api/users", protect(d.users.Create, admin...))
	mux.Handle("GET /api/users/{id}", protect(d.users.Get, admin...))
	mux.Handle("PUT /api/users/{id}", protect(d.users.Update, admin...))
	mux.Handle("DELETE /api/users/{id}", protect(d.users.Delete, admin...))
	mux.Handle("GET /api/roles", protect(d.users.ListRoles, admin...))

	// Payments.
	mux.Handle("POST /api/payments/initiate", protect(d.payments.Initiate))
	mux.Handle("GET /api/payments/{orderId}", protect(d.payments.GetByOrder))

	// Settings and reports.
	mux.Handle("GET /api/settings", protect(d.settings.Get))
	mux.Handle("PUT /api/settings", protect(d.settings.Update, admin...))
	mux.Handle("GET /api/reports/sales", protect(d.reports.Sales, admin...))
	mux.Handle("GET /api/reports/orders", protect(d.reports.Orders, admin...))
	mux.Handle("GET /api/reports/tables", protect(d.reports.Tables, admin...))

	return mux
}
