package billing_test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/planora-app/planora/internal/billing"
	"github.com/planora-app/planora/internal/user"
)

const testWebhookSecret = "whsec_test_secret"

func signedHeader(payload []byte, at time.Time) string {
	sig := webhook.ComputeSignature(at, payload, testWebhookSecret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

func deletedEventPayload(customerRef string, created time.Time) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test",
		"api_version": %q,
		"type": "customer.subscription.deleted",
		"created": %d,
		"data": {"object": {"id": "sub_456", "customer": "cus_123", "status": "canceled"}}
	}`, stripe.APIVersion, created.Unix()))
}

func TestWebhook(t *testing.T) {
	t.Run("bad signature is rejected with no state change", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		h := billing.NewHandler(nil, billing.NewSynchronizer(repo), testWebhookSecret)

		payload := deletedEventPayload(u.StripeCustomerID, time.Now())
		req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
		rec := httptest.NewRecorder()

		h.Webhook(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionTier != user.TierPro {
			t.Error("rejected webhook mutated user state")
		}
	})

	t.Run("signed subscription deleted event downgrades the user", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		h := billing.NewHandler(nil, billing.NewSynchronizer(repo), testWebhookSecret)

		now := time.Now()
		payload := deletedEventPayload(u.StripeCustomerID, now)
		req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", signedHeader(payload, now))
		rec := httptest.NewRecorder()

		h.Webhook(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body)
		}
		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionTier != user.TierFree || got.SubscriptionStatus != user.StatusCanceled {
			t.Errorf("user not downgraded: tier=%q status=%q", got.SubscriptionTier, got.SubscriptionStatus)
		}
	})

	t.Run("unconsumed event types are acknowledged", func(t *testing.T) {
		_, repo := openDB(t)
		h := billing.NewHandler(nil, billing.NewSynchronizer(repo), testWebhookSecret)

		now := time.Now()
		payload := []byte(fmt.Sprintf(`{"id": "evt_x", "api_version": %q, "type": "customer.created", "created": %d, "data": {"object": {}}}`, stripe.APIVersion, now.Unix()))
		req := httptest.NewRequest(http.MethodPost, "/billing/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", signedHeader(payload, now))
		rec := httptest.NewRecorder()

		h.Webhook(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}
