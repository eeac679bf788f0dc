package catalog

import (
	"fmt"

	"github.com/aromacraft/storefront-backend/pkg/db/models"
	"github.com/aromacraft/storefront-backend/pkg/enums"
	"github.com/aromacraft/storefront-backend/pkg/pagination"
)

// SortMode selects the catalog ordering.
type SortMode string

const (
	SortName      SortMode = "name"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortRating    SortMode = "rating"
)

// ParseSortMode converts raw input into a SortMode; empty input falls back
// to name order.
func ParseSortMode(value string) (SortMode, error) {
	switch SortMode(value) {
	case "":
		return SortName, nil
	case SortName, SortPriceAsc, SortPriceDesc, SortRating:
		return SortMode(value), nil
	}
	return "", fmt.Errorf("invalid sort mode %q", value)
}

// ListFilters describe the supported filter knobs for the browse endpoint.
type ListFilters struct {
	Category *enums.ProductCategory `json:"category,omitempty"`
	Roast    *enums.RoastLevel      `json:"roast,omitempty"`
	Origin   *string                `json:"origin,omitempty"`
	PriceMin *string                `json:"price_min,omitempty"`
	PriceMax *string                `json:"price_max,omitempty"`
	Query    string                 `json:"q,omitempty"`
}

// ListInput captures the inputs needed to paginate and filter the catalog.
type ListInput struct {
	Filters    ListFilters
	Sort       SortMode
	Pagination pagination.Params

	// ConsumeIntent pulls a pending landing-page search query out of the
	// session and applies it when no explicit query was given.
	ConsumeIntent bool
	SessionID     string
}

// ListResult is one page of catalog products.
type ListResult struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`

	// AppliedQuery echoes the free-text query actually used, including one
	// consumed from the session.
	AppliedQuery string `json:"applied_query,omitempty"`
}
