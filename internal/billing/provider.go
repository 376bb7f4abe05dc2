package billing

import (
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Provider abstracts the payment processor. The production implementation
// wraps an injected Stripe client; tests substitute a fake.
type Provider interface {
	CreateCustomer(email, userID, username string) (string, error)
	NewCheckoutSession(customerID, priceID, tier, successURL, cancelURL string) (*stripe.CheckoutSession, error)
	GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error)
	NewPortalSession(customerID, returnURL string) (string, error)
	GetSubscription(subscriptionID string) (*stripe.Subscription, error)
}

type stripeProvider struct {
	api *client.API
}

// NewStripeProvider wraps an already-configured Stripe client.
func NewStripeProvider(api *client.API) Provider {
	return &stripeProvider{api: api}
}

func (p *stripeProvider) CreateCustomer(email, userID, username string) (string, error) {
	c, err := p.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Params: stripe.Params{
			Metadata: map[string]string{
				"user_id":  userID,
				"username": username,
			},
		},
	})
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

func (p *stripeProvider) NewCheckoutSession(customerID, priceID, tier, successURL, cancelURL string) (*stripe.CheckoutSession, error) {
	return p.api.CheckoutSessions.New(&stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		Params: stripe.Params{
			Metadata: map[string]string{
				"plan": tier,
			},
		},
	})
}

func (p *stripeProvider) GetCheckoutSession(sessionID string) (*stripe.CheckoutSession, error) {
	return p.api.CheckoutSessions.Get(sessionID, nil)
}

func (p *stripeProvider) NewPortalSession(customerID, returnURL string) (string, error) {
	s, err := p.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (p *stripeProvider) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
	return p.api.Subscriptions.Get(subscriptionID, nil)
}
