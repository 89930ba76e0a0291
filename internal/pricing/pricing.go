// Package pricing computes order line totals. All amounts are in the
// smallest currency unit and every division floors.
package pricing

import "github.com/Skotchmaster/ecommerce/internal/models"

// PriceLine returns the total for quantity units of p after its discount.
// quantity must be positive.
func PriceLine(p *models.Product, quantity int64) int64 {
	return Line(p.Price, quantity, p.Discount)
}

func Line(unitPrice, quantity int64, d *models.Discount) int64 {
	base := unitPrice * quantity
	return base - DiscountAmount(base, d)
}

// DiscountAmount is the amount taken off base by d, or zero when d is absent,
// inactive or base is below its minimum purchase.
func DiscountAmount(base int64, d *models.Discount) int64 {
	if d == nil || !d.Active || base < d.MinPurchase {
		return 0
	}
	amount := base * d.Percentage / 100
	if amount > d.MaxDiscount {
		amount = d.MaxDiscount
	}
	return amount
}
