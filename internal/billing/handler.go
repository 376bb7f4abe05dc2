package billing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/user"
)

var validate = validator.New()

// Stripe caps webhook payloads well below this.
const maxWebhookBody = 1 << 16

type checkoutForm struct {
	Plan string `json:"plan" validate:"required,oneof=pro business"`
}

type Handler struct {
	service       BillingService
	synchronizer  *Synchronizer
	webhookSecret string
}

func NewHandler(service BillingService, synchronizer *Synchronizer, webhookSecret string) *Handler {
	return &Handler{
		service:       service,
		synchronizer:  synchronizer,
		webhookSecret: webhookSecret,
	}
}

// Plans handles GET /billing/plans.
func (h *Handler) Plans(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, h.service.Plans())
}

// CreateCheckoutSession handles POST /billing/checkout.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var form checkoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	url, err := h.service.Checkout(r.Context(), uuid.MustParse(claims.UserID), user.Tier(form.Plan))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"checkout_url": url})
}

// CheckoutSuccess handles GET /billing/checkout/success?session_id=...
func (h *Handler) CheckoutSuccess(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	u, err := h.service.CheckoutSuccess(r.Context(), uuid.MustParse(claims.UserID), sessionID)
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "subscription activated",
		"tier":    string(u.SubscriptionTier),
	})
}

// CreatePortalSession handles POST /billing/portal.
func (h *Handler) CreatePortalSession(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	url, err := h.service.Portal(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"portal_url": url})
}

// Subscription handles GET /billing/subscription.
func (h *Handler) Subscription(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	details, err := h.service.Subscription(r.Context(), uuid.MustParse(claims.UserID))
	if err != nil {
		writeServiceError(w, log, err)
		return
	}

	config.JSON(w, http.StatusOK, details)
}

// Webhook handles POST /billing/webhook. The signature is checked
// before anything else; a bad signature or payload changes no state.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read payload", http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret)
	if err != nil {
		log.WithError(err).Warn("rejected billing webhook")
		http.Error(w, "invalid signature", http.StatusBadRequest)
		return
	}

	ev, ok, err := normalizeEvent(event)
	if err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if !ok {
		// event types we do not consume are acknowledged untouched
		config.JSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.synchronizer.Apply(r.Context(), ev); err != nil {
		log.WithError(err).Error("failed to apply billing event")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// normalizeEvent reduces a provider event to the synchronizer's input.
func normalizeEvent(event stripe.Event) (Event, bool, error) {
	occurred := time.Unix(event.Created, 0).UTC()

	switch event.Type {
	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return Event{}, false, err
		}
		ev := Event{
			CustomerRef: customerRef(sub.Customer),
			OccurredAt:  occurred,
		}
		if event.Type == "customer.subscription.deleted" {
			ev.Kind = EventSubscriptionDeleted
			return ev, true, nil
		}
		ev.Kind = EventSubscriptionUpdated
		ev.Status = string(sub.Status)
		if sub.CurrentPeriodEnd > 0 {
			end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
			ev.PeriodEnd = &end
		}
		return ev, true, nil

	case "invoice.payment_failed", "invoice.payment_succeeded":
		var inv stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &inv); err != nil {
			return Event{}, false, err
		}
		kind := EventPaymentSucceeded
		if event.Type == "invoice.payment_failed" {
			kind = EventPaymentFailed
		}
		return Event{
			Kind:        kind,
			CustomerRef: customerRef(inv.Customer),
			OccurredAt:  occurred,
		}, true, nil
	}

	return Event{}, false, nil
}

func customerRef(c *stripe.Customer) string {
	if c == nil {
		return ""
	}
	return c.ID
}

func writeServiceError(w http.ResponseWriter, log *logrus.Entry, err error) {
	var provErr *ProviderError
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		http.Error(w, "user not found", http.StatusNotFound)
	case errors.Is(err, ErrUnknownPlan), errors.Is(err, ErrInvalidSession):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNoCustomer):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrPlanNotConfigured):
		log.WithError(err).Error("billing misconfigured")
		http.Error(w, "pricing not configured", http.StatusServiceUnavailable)
	case errors.As(err, &provErr):
		log.WithError(err).Warn("billing provider call failed")
		http.Error(w, "billing provider unavailable", http.StatusBadGateway)
	default:
		log.WithError(err).Error("Billing operation failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
