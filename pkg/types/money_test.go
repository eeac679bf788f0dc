package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "currency prefix", in: "$19.99", want: "19.99"},
		{name: "currency suffix", in: "13.50 USD", want: "13.5"},
		{name: "plain integer", in: "50", want: "50"},
		{name: "embedded junk", in: "price: 7.25!", want: "7.25"},
		{name: "second dot ignored", in: "12.3.4", want: "12.3"},
		{name: "leading dot", in: ".5", want: "0.5"},
		{name: "trailing dot", in: "5.", want: "5"},
		{name: "lone dot", in: ".", want: "0"},
		{name: "empty", in: "", want: "0"},
		{name: "letters only", in: "free", want: "0"},
		{name: "minus stripped", in: "-$5.00", want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := decimal.RequireFromString(tt.want)
			if got := ParsePrice(tt.in); !got.Equal(want) {
				t.Fatalf("ParsePrice(%q) = %s, want %s", tt.in, got, want)
			}
		})
	}
}

func TestCartLineLineTotal(t *testing.T) {
	line := CartLine{
		Name:      "Sunset Roast",
		UnitPrice: decimal.RequireFromString("19.99"),
		Quantity:  3,
	}
	if got := line.LineTotal(); !got.Equal(decimal.RequireFromString("59.97")) {
		t.Fatalf("unexpected line total %s", got)
	}
}
