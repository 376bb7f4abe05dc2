package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes carries the authenticated billing endpoints. The webhook and
// plans listing are mounted separately, outside the auth middleware.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/checkout", h.CreateCheckoutSession)
	r.Get("/checkout/success", h.CheckoutSuccess)
	r.Post("/portal", h.CreatePortalSession)
	r.Get("/subscription", h.Subscription)

	return r
}
