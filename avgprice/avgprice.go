// Package avgprice computes the average acquisition price of a series of
// fills at different prices.
package avgprice

import "fmt"

// Calculator accumulates lots and reports the volume-weighted average.
type Calculator struct {
	qty   int
	value float64
}

// Add records one lot.
func (c *Calculator) Add(qty int, price float64) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}
	if price <= 0 {
		return fmt.Errorf("price must be positive, got %v", price)
	}
	c.qty += qty
	c.value += float64(qty) * price
	return nil
}

// Quantity returns the total units accumulated.
func (c *Calculator) Quantity() int { return c.qty }

// Average returns the volume-weighted average price. ok is false until at
// least one lot has been added.
func (c *Calculator) Average() (avg float64, ok bool) {
	if c.qty == 0 {
		return 0, false
	}
	return c.value / float64(c.qty), true
}
