package billing

import (
	"context"
	"time"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/user"
)

// EventKind is a normalized billing provider event.
type EventKind string

const (
	EventSubscriptionUpdated EventKind = "subscription_updated"
	EventSubscriptionDeleted EventKind = "subscription_deleted"
	EventPaymentFailed       EventKind = "payment_failed"
	EventPaymentSucceeded    EventKind = "payment_succeeded"
)

// Event is a provider webhook payload reduced to the fields the
// synchronizer acts on.
type Event struct {
	Kind        EventKind
	CustomerRef string
	// Status and PeriodEnd are only meaningful for subscription-updated.
	Status    string
	PeriodEnd *time.Time
	// OccurredAt is the provider-supplied event creation time, used to
	// drop stale redeliveries.
	OccurredAt time.Time
}

// Synchronizer applies provider events to user subscription state.
type Synchronizer struct {
	userRepo user.UserRepository
}

func NewSynchronizer(userRepo user.UserRepository) *Synchronizer {
	return &Synchronizer{userRepo: userRepo}
}

// Apply updates the user identified by the event's customer ref. Events
// for unknown customers are a no-op: the provider sends events for test
// customers too. Events older than the user's last applied event time
// are skipped so an out-of-order redelivery cannot overwrite newer
// state. Applying the same event twice leaves the user unchanged.
func (s *Synchronizer) Apply(ctx context.Context, ev Event) error {
	log := config.WithContext(ctx).WithField("customer_ref", ev.CustomerRef)

	u, err := s.userRepo.FindByStripeCustomerID(ev.CustomerRef)
	if err != nil {
		return err
	}
	if u == nil {
		log.Debugf("billing event %s for unknown customer, ignoring", ev.Kind)
		return nil
	}

	if u.BillingSyncedAt != nil && ev.OccurredAt.Before(*u.BillingSyncedAt) {
		log.Debugf("billing event %s is stale, ignoring", ev.Kind)
		return nil
	}

	switch ev.Kind {
	case EventSubscriptionUpdated:
		u.SubscriptionStatus = user.SubscriptionStatus(ev.Status)
		if ev.PeriodEnd != nil {
			u.SubscriptionEnd = ev.PeriodEnd
		}
	case EventSubscriptionDeleted:
		u.SubscriptionTier = user.TierFree
		u.SubscriptionStatus = user.StatusCanceled
		u.StripeSubscriptionID = ""
	case EventPaymentFailed:
		u.SubscriptionStatus = user.StatusPastDue
	case EventPaymentSucceeded:
		u.SubscriptionStatus = user.StatusActive
	default:
		log.Warnf("unhandled billing event kind %q", ev.Kind)
		return nil
	}

	occurred := ev.OccurredAt
	u.BillingSyncedAt = &occurred

	if err := s.userRepo.Update(u); err != nil {
		return err
	}

	log.WithField("user_id", u.ID).Infof("applied billing event %s", ev.Kind)
	return nil
}
