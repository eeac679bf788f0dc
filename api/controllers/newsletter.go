package controllers

import (
	"net/http"

	"github.com/aromacraft/storefront-backend/api/responses"
	"github.com/aromacraft/storefront-backend/api/validators"
	newslettersvc "github.com/aromacraft/storefront-backend/internal/newsletter"
	"github.com/aromacraft/storefront-backend/pkg/logger"
)

func NewsletterSubscribe(svc newslettersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input newslettersvc.SubscribeInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if input.Source == "" {
			input.Source = "offers-page"
		}

		result, err := svc.Subscribe(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
