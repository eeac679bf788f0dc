package controllers

import (
	"net/http"

	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	eventssvc "github.com/aromacraft/storefront-backend/internal/events"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

// EventsRegister records a tasting-event signup, forwarding an optional
// newsletter opt-in.
func EventsRegister(svc eventssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input eventssvc.RegistrationInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		registration, err := svc.Register(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, registration)
	}
}
