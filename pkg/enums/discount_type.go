package enums

import "fmt"

// DiscountType tags the single active cart discount variant.
type DiscountType string

const (
	// DiscountTypePercentage reduces the subtotal by value percent.
	DiscountTypePercentage DiscountType = "percentage"
	// DiscountTypeFixed reduces the subtotal by a flat amount.
	DiscountTypeFixed DiscountType = "fixed"
	// DiscountTypeShipping waives the shipping fee instead of touching the subtotal.
	DiscountTypeShipping DiscountType = "shipping"
)

var validDiscountTypes = []DiscountType{
	DiscountTypePercentage,
	DiscountTypeFixed,
	DiscountTypeShipping,
}

// String implements fmt.Stringer.
func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountType.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType converts raw input into a DiscountType.
func ParseDiscountType(value string) (DiscountType, error) {
	for _, candidate := range validDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}
