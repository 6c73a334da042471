package orders

import (
	"testing"

	"restaurant-pos/internal/domain"
)

func itemsWith(statuses ...domain.Status) []domain.OrderItem {
	out := make([]domain.OrderItem, 0, len(statuses))
	for i, st := range statuses {
		out = append(out, domain.OrderItem{ID: int64(i + 1), Status: st})
	}
	return out
}

func TestDerive(t *testing.T) {
	pe := domain.StatusPending
	pr := domain.StatusPreparing
	re := domain.StatusReady
	se := domain.StatusServed
	ca := domain.StatusCancelled

	tests := []struct {
		name  string
		items []domain.Status
		want  domain.Status
	}{
		{"empty order is pending", nil, pe},
		{"single pending", []domain.Status{pe}, pe},
		{"single preparing", []domain.Status{pr}, pr},
		{"single ready", []domain.Status{re}, re},
		{"single served", []domain.Status{se}, se},
		{"single cancelled", []domain.Status{ca}, ca},
		{"all cancelled", []domain.Status{ca, ca, ca}, ca},
		{"served with cancelled sibling counts as served", []domain.Status{se, ca}, se},
		{"ready with cancelled sibling counts as ready", []domain.Status{re, ca}, re},
		{"ready and served mix is ready", []domain.Status{re, se}, re},
		{"ready served cancelled mix is ready", []domain.Status{re, se, ca}, re},
		{"any preparing wins over ready", []domain.Status{re, pr}, pr},
		{"any preparing wins over served", []domain.Status{se, pr, ca}, pr},
		{"pending blocks ready", []domain.Status{re, pe}, pe},
		{"pending blocks served", []domain.Status{se, pe}, pe},
		{"pending and preparing is preparing", []domain.Status{pe, pr}, pr},
		{"full kitchen spread", []domain.Status{pe, pr, re, se, ca}, pr},
		{"pending with cancelled sibling stays pending", []domain.Status{pe, ca}, pe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Derive(itemsWith(tt.items...)); got != tt.want {
				t.Errorf("Derive(%v) = %s, want %s", tt.items, got, tt.want)
			}
		})
	}
}

// An order must never read as served while some non-cancelled item is still
// short of served.
func TestDeriveNeverServesEarly(t *testing.T) {
	active := []domain.Status{domain.StatusPending, domain.StatusPreparing, domain.StatusReady}
	for _, st := range active {
		items := itemsWith(domain.StatusServed, domain.StatusServed, st)
		if got := Derive(items); got == domain.StatusServed {
			t.Errorf("order derived served with a %s item still open", st)
		}
	}
}
