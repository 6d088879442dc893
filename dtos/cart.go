package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in a session cart. It carries the name and
// price data the external checkout collaborator packages into its
// payment-provider request.
type CartLine struct {
	ProductID          uint             `json:"product_id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	UnitPrice          decimal.Decimal  `json:"unit_price"`
	OriginalPrice      *decimal.Decimal `json:"original_price,omitempty"`
	HasDiscount        bool             `json:"has_discount"`
	DiscountPercentage int              `json:"discount_percentage"`
	Quantity           int              `json:"quantity"`
	LineTotal          decimal.Decimal  `json:"line_total"`
	ImageURL           *string          `json:"image_url,omitempty"`
}

// Cart is the session-scoped cart state. It lives in an injected store, not
// in ambient globals, and is addressed by an opaque session token.
type Cart struct {
	SessionID uuid.UUID       `json:"session_id"`
	Items     []CartLine      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RecalculateSubtotal recomputes line totals and the cart subtotal from unit
// prices and quantities.
func (c *Cart) RecalculateSubtotal() {
	subtotal := decimal.Zero
	for i := range c.Items {
		c.Items[i].LineTotal = c.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
		subtotal = subtotal.Add(c.Items[i].LineTotal)
	}
	c.Subtotal = subtotal
}
