package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice turns a display-formatted price string ("$19.99", "19.99 USD")
// into a decimal amount. Every character that is not a digit or a dot is
// stripped, then the leading numeric run is parsed; anything unparsable
// degrades to zero rather than an error.
func ParsePrice(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)

	var b strings.Builder
	dotSeen := false
	for _, r := range cleaned {
		if r == '.' {
			if dotSeen {
				break
			}
			dotSeen = true
		}
		b.WriteRune(r)
	}

	candidate := strings.TrimSuffix(b.String(), ".")
	if candidate == "" {
		return decimal.Zero
	}
	if strings.HasPrefix(candidate, ".") {
		candidate = "0" + candidate
	}

	amount, err := decimal.NewFromString(candidate)
	if err != nil {
		return decimal.Zero
	}
	return amount
}
