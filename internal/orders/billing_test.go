package orders

import (
	"testing"

	"restaurant-pos/internal/domain"
)

func TestComputeOrderTotal(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		seats      int
		subtotal   domain.Cents
		seatPrice  domain.Cents
		wantCharge domain.Cents
		wantTotal  domain.Cents
	}{
		{"seats within capacity", 4, 4, 10000, 500, 0, 10000},
		{"seats below capacity", 4, 2, 10000, 500, 0, 10000},
		{"two extra seats", 4, 6, 10000, 500, 1000, 11000},
		{"one extra seat zero subtotal", 2, 3, 0, 500, 500, 500},
		{"free extra seats", 4, 8, 2500, 0, 0, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charge, total := ComputeOrderTotal(tt.capacity, tt.seats, tt.subtotal, tt.seatPrice)
			if charge != tt.wantCharge || total != tt.wantTotal {
				t.Errorf("ComputeOrderTotal() = (%d, %d), want (%d, %d)",
					charge, total, tt.wantCharge, tt.wantTotal)
			}
		})
	}
}
