package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aromacraft/storefront-backend/api/middleware"
	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	catalogsvc "github.com/aromacraft/storefront-backend/internal/catalog"
	"github.com/aromacraft/storefront-backend/pkg/enums"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/logger"
	"github.com/aromacraft/storefront-backend/pkg/pagination"
)

// CatalogList serves the paginated product grid. A landing-page search
// intent stashed in the session is consumed when the request carries no
// explicit query.
func CatalogList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func CatalogRecommended(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.Recommended(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

type searchIntentRequest struct {
	Query string `json:"query" validate:"required"`
}

// CatalogSearchIntent stashes a landing-page search so the next catalog
// request picks it up. One-shot by design.
func CatalogSearchIntent(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload searchIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SaveSearchIntent(r.Context(), sessionID, payload.Query); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "saved"})
	}
}

func parseListInput(r *http.Request) (catalogsvc.ListInput, error) {
	query := r.URL.Query()

	sort, err := catalogsvc.ParseSortMode(query.Get("sort"))
	if err != nil {
		return catalogsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort mode")
	}

	filters := catalogsvc.ListFilters{
		Query: strings.TrimSpace(query.Get("q")),
	}

	if raw := query.Get("category"); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalogsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		filters.Category = &category
	}

	if raw := query.Get("roast"); raw != "" {
		roast, err := enums.ParseRoastLevel(raw)
		if err != nil {
			return catalogsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid roast level")
		}
		filters.Roast = &roast
	}

	if raw := strings.TrimSpace(query.Get("origin")); raw != "" {
		filters.Origin = &raw
	}

	if raw := query.Get("price_min"); raw != "" {
		if err := validPrice(raw); err != nil {
			return catalogsvc.ListInput{}, err
		}
		filters.PriceMin = &raw
	}
	if raw := query.Get("price_max"); raw != "" {
		if err := validPrice(raw); err != nil {
			return catalogsvc.ListInput{}, err
		}
		filters.PriceMax = &raw
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return catalogsvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid limit")
		}
		limit = parsed
	}

	return catalogsvc.ListInput{
		Filters: filters,
		Sort:    sort,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: query.Get("cursor"),
		},
		ConsumeIntent: true,
		SessionID:     middleware.SessionIDFromContext(r.Context()),
	}, nil
}

func validPrice(raw string) error {
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price bound")
	}
	return nil
}
