package orders

import "restaurant-pos/internal/domain"

// Derive computes an order's aggregate status from its item statuses. The
// rules are evaluated in strict priority order: the order tracks its
// least-done active item until every active item is terminal enough, at which
// point the order advances as a whole. Cancelled items are skipped by the
// "all" checks except when the entire order is cancelled.
//
//  1. all items cancelled                      -> cancelled
//  2. all items served or cancelled            -> served
//  3. all items ready, served or cancelled     -> ready
//  4. any item preparing                       -> preparing
//  5. otherwise                                -> pending
//
// An empty item list derives pending, the initial state of every order.
func Derive(items []domain.OrderItem) domain.Status {
	if len(items) == 0 {
		return domain.StatusPending
	}

	allCancelled := true
	allServed := true
	allReady := true
	anyPreparing := false

	for _, it := range items {
		if it.Status != domain.StatusCancelled {
			allCancelled = false
		}
		switch it.Status {
		case domain.StatusServed, domain.StatusCancelled:
		default:
			allServed = false
		}
		switch it.Status {
		case domain.StatusReady, domain.StatusServed, domain.StatusCancelled:
		default:
			allReady = false
		}
		if it.Status == domain.StatusPreparing {
			anyPreparing = true
		}
	}

	switch {
	case allCancelled:
		return domain.StatusCancelled
	case allServed:
		return domain.StatusServed
	case allReady:
		return domain.StatusReady
	case anyPreparing:
		return domain.StatusPreparing
	default:
		return domain.StatusPending
	}
}
