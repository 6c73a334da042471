package domain

import "math"

// Cents holds a monetary amount in minor units. All arithmetic on totals is
// integer arithmetic; float conversion happens only at the JSON boundary.
type Cents int64

func CentsFromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

func (c Cents) Float64() float64 {
	return float64(c) / 100
}

func (c Cents) Mul(n int) Cents {
	return c * Cents(n)
}
