package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aromacraft/storefront-backend/api/middleware"
	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	cartsvc "github.com/aromacraft/storefront-backend/internal/cart"
	offerssvc "github.com/aromacraft/storefront-backend/internal/offers"
	pkgerrors "github.com/aromacraft/storefront-backend/pkg/errors"
	"github.com/aromacraft/storefront-backend/pkg/logger"
	"github.com/aromacraft/storefront-backend/pkg/types"
)

type cartResponse struct {
	Items   []types.CartLine      `json:"items"`
	Summary *types.PricingSummary `json:"summary"`
}

// CartFetch returns the session's line items and the derived pricing summary.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		items, err := svc.Items(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, cartResponse{Items: items, Summary: summary})
	}
}

type addItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Quantity    int    `json:"quantity"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Roast       string `json:"roast"`
	Origin      string `json:"origin"`
}

func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := cartsvc.AddItemInput{
			Name:        payload.Name,
			Price:       payload.Price,
			Quantity:    payload.Quantity,
			Image:       payload.Image,
			Description: payload.Description,
			Roast:       payload.Roast,
			Origin:      payload.Origin,
		}
		if err := svc.AddItem(r.Context(), sessionID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusCreated)
	}
}

type updateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// CartUpdateLine adjusts a line's quantity by a signed delta. Dropping to
// zero or below removes the line.
func CartUpdateLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		name, err := lineName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateQuantity(r.Context(), sessionID, name, payload.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusOK)
	}
}

// CartUpdateLineAt is the positional variant kept for clients that still
// address lines by display order.
func CartUpdateLineAt(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		index, err := lineIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateQuantityAt(r.Context(), sessionID, index, payload.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusOK)
	}
}

func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		name, err := lineName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveLine(r.Context(), sessionID, name); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusOK)
	}
}

func CartRemoveLineAt(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		index, err := lineIndex(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveLineAt(r.Context(), sessionID, index); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusOK)
	}
}

func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		if err := svc.Clear(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCartState(w, r, svc, logg, http.StatusOK)
	}
}

type applyDiscountRequest struct {
	Code string `json:"code" validate:"required"`
}

type applyDiscountResponse struct {
	Applied     bool                  `json:"applied"`
	Description string                `json:"description,omitempty"`
	Summary     *types.PricingSummary `json:"summary"`
}

func CartApplyDiscount(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyDiscountCode(r.Context(), sessionID, payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, applyDiscountResponse{
			Applied:     result.Applied,
			Description: result.Description,
			Summary:     summary,
		})
	}
}

type pendingDiscountResponse struct {
	Code        string `json:"code,omitempty"`
	Applied     bool   `json:"applied"`
	Description string `json:"description,omitempty"`
}

// CartPendingDiscount consumes a code claimed on the offers page and applies
// it to the cart in one step. The claim is one-shot; a second call finds
// nothing and reports applied false.
func CartPendingDiscount(cartService cartsvc.Service, offersService offerssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		code, err := offersService.PendingCode(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if code == "" {
			responses.WriteSuccess(w, pendingDiscountResponse{})
			return
		}

		result, err := cartService.ApplyDiscountCode(r.Context(), sessionID, code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pendingDiscountResponse{
			Code:        code,
			Applied:     result.Applied,
			Description: result.Description,
		})
	}
}

func writeCartState(w http.ResponseWriter, r *http.Request, svc cartsvc.Service, logg *logger.Logger, status int) {
	items, err := svc.Items(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	summary, err := svc.Summary(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, status, cartResponse{Items: items, Summary: summary})
}

func lineName(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "name")
	name, err := url.PathUnescape(raw)
	if err != nil || name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "line name is required")
	}
	return name, nil
}

func lineIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line index")
	}
	return index, nil
}
