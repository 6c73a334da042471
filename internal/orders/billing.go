package orders

import "restaurant-pos/internal/domain"

// ComputeOrderTotal derives the seat overage charge and the order total at
// creation time. Guests seated beyond the table's rated capacity are billed a
// flat per-seat surcharge; the charge is frozen on the order and never
// recomputed, even if the table's capacity or the surcharge price change
// later.
func ComputeOrderTotal(tableCapacity, seatsAllocated int, itemSubtotal, extraSeatPrice domain.Cents) (extraSeatsCharge, total domain.Cents) {
	extraSeats := seatsAllocated - tableCapacity
	if extraSeats < 0 {
		extraSeats = 0
	}
	extraSeatsCharge = extraSeatPrice.Mul(extraSeats)
	return extraSeatsCharge, itemSubtotal + extraSeatsCharge
}
