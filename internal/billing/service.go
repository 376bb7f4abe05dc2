package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/user"
)

var (
	ErrUnknownPlan       = errors.New("unknown plan")
	ErrPlanNotConfigured = errors.New("plan has no configured price")
	ErrNoCustomer        = errors.New("no billing customer for user")
	ErrInvalidSession    = errors.New("invalid checkout session")
)

// ProviderError wraps a failure talking to the payment processor. It is
// surfaced to the caller as a warning, never a crash.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("billing provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SubscriptionDetails is the view returned to the account page.
type SubscriptionDetails struct {
	Tier              user.Tier               `json:"tier"`
	Status            user.SubscriptionStatus `json:"status"`
	PeriodEnd         *time.Time              `json:"period_end,omitempty"`
	CancelAtPeriodEnd bool                    `json:"cancel_at_period_end"`
}

type BillingService interface {
	Plans() []Plan
	// Checkout returns the provider-hosted checkout URL for the given
	// plan, creating the billing customer on first use.
	Checkout(ctx context.Context, userID uuid.UUID, tier user.Tier) (string, error)
	// CheckoutSuccess applies a completed checkout session to the user.
	CheckoutSuccess(ctx context.Context, userID uuid.UUID, sessionID string) (*user.User, error)
	Portal(ctx context.Context, userID uuid.UUID) (string, error)
	Subscription(ctx context.Context, userID uuid.UUID) (*SubscriptionDetails, error)
}

type billingService struct {
	provider Provider
	userRepo user.UserRepository
	plans    map[user.Tier]Plan
	cfg      config.StripeConfig
}

func NewService(provider Provider, userRepo user.UserRepository, cfg config.StripeConfig) BillingService {
	return &billingService{
		provider: provider,
		userRepo: userRepo,
		plans:    Plans(cfg),
		cfg:      cfg,
	}
}

func (s *billingService) Plans() []Plan {
	return []Plan{s.plans[user.TierPro], s.plans[user.TierBusiness]}
}

func (s *billingService) Checkout(ctx context.Context, userID uuid.UUID, tier user.Tier) (string, error) {
	log := config.WithContext(ctx)

	plan, ok := s.plans[tier]
	if !ok {
		return "", ErrUnknownPlan
	}
	if plan.PriceID == "" {
		return "", ErrPlanNotConfigured
	}

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", user.ErrUserNotFound
	}

	if u.StripeCustomerID == "" {
		customerID, err := s.provider.CreateCustomer(u.Email, u.ID.String(), u.Username)
		if err != nil {
			return "", &ProviderError{Op: "create customer", Err: err}
		}
		u.StripeCustomerID = customerID
		if err := s.userRepo.Update(u); err != nil {
			return "", err
		}
	}

	session, err := s.provider.NewCheckoutSession(u.StripeCustomerID, plan.PriceID, string(tier), s.cfg.SuccessURL, s.cfg.CancelURL)
	if err != nil {
		return "", &ProviderError{Op: "create checkout session", Err: err}
	}

	log.WithField("user_id", u.ID).Infof("checkout session created for %s plan", tier)
	return session.URL, nil
}

func (s *billingService) CheckoutSuccess(ctx context.Context, userID uuid.UUID, sessionID string) (*user.User, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	session, err := s.provider.GetCheckoutSession(sessionID)
	if err != nil {
		return nil, &ProviderError{Op: "retrieve checkout session", Err: err}
	}
	if session.Customer == nil || session.Customer.ID != u.StripeCustomerID {
		return nil, ErrInvalidSession
	}

	tier := user.Tier(session.Metadata["plan"])
	if !tier.IsValid() {
		tier = user.TierPro
	}

	if session.Subscription != nil {
		u.StripeSubscriptionID = session.Subscription.ID
	}
	u.SubscriptionTier = tier
	u.SubscriptionStatus = user.StatusActive

	if err := s.userRepo.Update(u); err != nil {
		return nil, err
	}

	log.WithField("user_id", u.ID).Infof("subscription activated on %s plan", tier)
	return u, nil
}

func (s *billingService) Portal(ctx context.Context, userID uuid.UUID) (string, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", user.ErrUserNotFound
	}
	if u.StripeCustomerID == "" {
		return "", ErrNoCustomer
	}

	url, err := s.provider.NewPortalSession(u.StripeCustomerID, s.cfg.PortalReturnURL)
	if err != nil {
		return "", &ProviderError{Op: "create portal session", Err: err}
	}
	return url, nil
}

func (s *billingService) Subscription(ctx context.Context, userID uuid.UUID) (*SubscriptionDetails, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	details := SubscriptionDetails{
		Tier:      u.EffectiveTier(),
		Status:    u.SubscriptionStatus,
		PeriodEnd: u.SubscriptionEnd,
	}
	if u.StripeSubscriptionID != "" {
		sub, err := s.provider.GetSubscription(u.StripeSubscriptionID)
		if err != nil {
			return nil, &ProviderError{Op: "retrieve subscription", Err: err}
		}
		details.CancelAtPeriodEnd = sub.CancelAtPeriodEnd
		if sub.CurrentPeriodEnd > 0 {
			end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
			details.PeriodEnd = &end
		}
	}
	return &details, nil
}
