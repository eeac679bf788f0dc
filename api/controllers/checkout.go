package controllers

import (
	"net/http"

	"github.com/aromacraft/storefront-backend/api/middleware"
	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	checkoutsvc "github.com/aromacraft/storefront-backend/internal/checkout"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

type checkoutStateResponse struct {
	State string `json:"state"`
}

func CheckoutState(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		state, err := svc.State(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutStateResponse{State: string(state)})
	}
}

func CheckoutBegin(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		if err := svc.Begin(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCheckoutState(w, r, svc, logg)
	}
}

type checkoutVerifyRequest struct {
	Token string `json:"token"`
}

func CheckoutVerify(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var payload checkoutVerifyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Verify(r.Context(), sessionID, payload.Token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCheckoutState(w, r, svc, logg)
	}
}

func CheckoutSubmit(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		var form checkoutsvc.OrderForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Submit(r.Context(), sessionID, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmation)
	}
}

func CheckoutAbandon(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		if err := svc.Abandon(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		writeCheckoutState(w, r, svc, logg)
	}
}

func writeCheckoutState(w http.ResponseWriter, r *http.Request, svc checkoutsvc.Service, logg *logger.Logger) {
	state, err := svc.State(r.Context(), middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, checkoutStateResponse{State: string(state)})
}
