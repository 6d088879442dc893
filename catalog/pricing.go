package catalog

import "github.com/shopspring/decimal"

// HasDiscount reports whether originalPrice represents a real reduction
// relative to price. An absent originalPrice, or one at or below the
// current price, is no discount.
func HasDiscount(price decimal.Decimal, originalPrice *decimal.Decimal) bool {
	return originalPrice != nil && originalPrice.Cmp(price) > 0
}

// DiscountPercentage returns round((originalPrice - price) / originalPrice * 100)
// when a discount applies, else 0. This is the single discount derivation
// shared by every surface that displays prices.
func DiscountPercentage(price decimal.Decimal, originalPrice *decimal.Decimal) int {
	if !HasDiscount(price, originalPrice) {
		return 0
	}
	pct := originalPrice.Sub(price).
		Div(*originalPrice).
		Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}
