package types

import (
	"github.com/aromacraft/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CartLine is one purchasable entry in a session's cart. Name is the
// de-duplication key: adding a line with a matching name merges quantities
// instead of appending a duplicate.
type CartLine struct {
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
	Roast       string          `json:"roast,omitempty"`
	Origin      string          `json:"origin,omitempty"`
}

// LineTotal returns unit price times quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Discount is the single active order modifier. Value is a percent for
// percentage discounts and a flat amount for fixed ones; shipping discounts
// ignore it and waive the shipping fee instead.
type Discount struct {
	Type        enums.DiscountType `json:"type"`
	Value       decimal.Decimal    `json:"value"`
	Description string             `json:"description"`
}

// PricingSummary is derived from the cart and active discount on every
// query; it is never stored.
type PricingSummary struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	Tax             decimal.Decimal `json:"tax"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	DiscountApplied bool            `json:"discount_applied"`
	ItemCount       int             `json:"item_count"`
}
