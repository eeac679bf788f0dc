package controllers

import (
	"net/http"

	"github.com/aromacraft/storefront-backend/api/middleware"
	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	offerssvc "github.com/aromacraft/storefront-backend/internal/offers"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

func OffersList(svc offerssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"offers": svc.Offers(r.Context())})
	}
}

// OffersDeal returns the featured-deal countdown. The deadline is pinned on
// first access so every visitor in the window sees the same clock.
func OffersDeal(svc offerssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remaining, err := svc.Deal(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, remaining)
	}
}

type claimOfferRequest struct {
	Code string `json:"code" validate:"required"`
}

// OffersClaim stashes a known code against the session so the cart page can
// pick it up.
func OffersClaim(svc offerssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload claimOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Claim(r.Context(), sessionID, payload.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}
