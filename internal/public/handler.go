// Package public serves the unauthenticated guest endpoints reached by
// scanning a table's QR code.
package public

import (
	"context"
	"net/http"

	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/domain"
)

type TableResolver interface {
	GetByQRToken(ctx context.Context, token string) (domain.Table, error)
}

type MenuLister interface {
	PublicMenu(ctx context.Context) ([]domain.MenuCategory, error)
}

type Handler struct {
	tables TableResolver
	menu   MenuLister
}

func NewHandler(tables TableResolver, menu MenuLister) *Handler {
	return &Handler{tables: tables, menu: menu}
}

type validateResponse struct {
	Valid       bool   `json:"valid"`
	TableNumber string `json:"tableNumber,omitempty"`
	Message     string `json:"message,omitempty"`
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	table, err := h.tables.GetByQRToken(r.Context(), r.PathValue("qrToken"))
	if err != nil {
		if domain.IsNotFound(err) {
			httpx.JSON(w, http.StatusNotFound, validateResponse{Valid: false, Message: "invalid or inactive QR code"})
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, validateResponse{Valid: true, TableNumber: table.TableNumber})
}

func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	if _, err := h.tables.GetByQRToken(r.Context(), r.PathValue("qrToken")); err != nil {
		if domain.IsNotFound(err) {
			httpx.JSON(w, http.StatusNotFound, validateResponse{Valid: false, Message: "invalid or inactive QR code"})
			return
		}
		httpx.Error(w, err)
		return
	}
	cats, err := h.menu.PublicMenu(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	views := make([]domain.MenuCategoryView, 0, len(cats))
	for _, c := range cats {
		views = append(views, c.View())
	}
	httpx.JSON(w, http.StatusOK, views)
}
