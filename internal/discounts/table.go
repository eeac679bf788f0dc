package discounts

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aromacraft/storefront-backend/pkg/enums"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

// table holds every recognized discount code. Codes are stored upper-case
// and matched case-insensitively.
var table = map[string]types.Discount{
	"SUBSCRIBE30": {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(30), Description: "30% off subscription"},
	"BUY2GET1":    {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(20), Description: "20% off (Buy 2 Get 1 equivalent)"},
	"FREESHIP":    {Type: enums.DiscountTypeShipping, Value: decimal.Zero, Description: "Free shipping"},
	"BREW25":      {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(25), Description: "25% off brewing equipment"},
	"STUDENT20":   {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(20), Description: "20% student discount"},
	"DOUBLE":      {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(10), Description: "10% loyalty bonus"},
	"WELCOME10":   {Type: enums.DiscountTypePercentage, Value: decimal.NewFromInt(10), Description: "10% welcome discount"},
}

// Lookup resolves a discount code to its definition. The match is
// case-insensitive and ignores surrounding whitespace.
func Lookup(code string) (types.Discount, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	discount, ok := table[normalized]
	return discount, ok
}

// Codes returns every recognized code, for diagnostics and tests.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	return codes
}
