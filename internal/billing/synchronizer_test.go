package billing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/billing"
	"github.com/planora-app/planora/internal/user"
)

func openDB(t *testing.T) (*gorm.DB, user.UserRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db, user.NewRepository(db)
}

func seedSubscriber(t *testing.T, db *gorm.DB) *user.User {
	t.Helper()
	u := &user.User{
		ID:                   uuid.New(),
		Username:             "subscriber",
		Email:                "subscriber@example.com",
		SubscriptionTier:     user.TierPro,
		SubscriptionStatus:   user.StatusActive,
		StripeCustomerID:     "cus_123",
		StripeSubscriptionID: "sub_456",
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown customer is a no-op", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		sync := billing.NewSynchronizer(repo)

		err := sync.Apply(ctx, billing.Event{
			Kind:        billing.EventSubscriptionDeleted,
			CustomerRef: "cus_unknown",
			OccurredAt:  time.Now(),
		})
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}

		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionTier != user.TierPro || got.SubscriptionStatus != user.StatusActive {
			t.Error("unknown customer event mutated an unrelated user")
		}
	})

	t.Run("subscription deleted downgrades and is idempotent", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		sync := billing.NewSynchronizer(repo)

		ev := billing.Event{
			Kind:        billing.EventSubscriptionDeleted,
			CustomerRef: u.StripeCustomerID,
			OccurredAt:  time.Now().UTC().Truncate(time.Second),
		}
		if err := sync.Apply(ctx, ev); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		first, _ := repo.FindByID(u.ID)
		if first.SubscriptionTier != user.TierFree {
			t.Errorf("tier = %q, want free", first.SubscriptionTier)
		}
		if first.SubscriptionStatus != user.StatusCanceled {
			t.Errorf("status = %q, want canceled", first.SubscriptionStatus)
		}
		if first.StripeSubscriptionID != "" {
			t.Errorf("subscription ref = %q, want cleared", first.StripeSubscriptionID)
		}

		if err := sync.Apply(ctx, ev); err != nil {
			t.Fatalf("Apply replay: %v", err)
		}
		second, _ := repo.FindByID(u.ID)
		if second.SubscriptionTier != first.SubscriptionTier ||
			second.SubscriptionStatus != first.SubscriptionStatus ||
			second.StripeSubscriptionID != first.StripeSubscriptionID {
			t.Error("replaying the same event changed user state")
		}
	})

	t.Run("stale event does not overwrite newer state", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		sync := billing.NewSynchronizer(repo)

		now := time.Now().UTC().Truncate(time.Second)
		if err := sync.Apply(ctx, billing.Event{
			Kind:        billing.EventPaymentSucceeded,
			CustomerRef: u.StripeCustomerID,
			OccurredAt:  now,
		}); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		// a failed-payment event from before the success arrives late
		if err := sync.Apply(ctx, billing.Event{
			Kind:        billing.EventPaymentFailed,
			CustomerRef: u.StripeCustomerID,
			OccurredAt:  now.Add(-time.Hour),
		}); err != nil {
			t.Fatalf("Apply stale: %v", err)
		}

		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionStatus != user.StatusActive {
			t.Errorf("status = %q, want active after stale event skipped", got.SubscriptionStatus)
		}
	})

	t.Run("payment failed marks past due", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		sync := billing.NewSynchronizer(repo)

		if err := sync.Apply(ctx, billing.Event{
			Kind:        billing.EventPaymentFailed,
			CustomerRef: u.StripeCustomerID,
			OccurredAt:  time.Now(),
		}); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionStatus != user.StatusPastDue {
			t.Errorf("status = %q, want past_due", got.SubscriptionStatus)
		}
	})

	t.Run("subscription updated copies status and period end", func(t *testing.T) {
		db, repo := openDB(t)
		u := seedSubscriber(t, db)
		sync := billing.NewSynchronizer(repo)

		end := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
		if err := sync.Apply(ctx, billing.Event{
			Kind:        billing.EventSubscriptionUpdated,
			CustomerRef: u.StripeCustomerID,
			Status:      "past_due",
			PeriodEnd:   &end,
			OccurredAt:  time.Now(),
		}); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		got, _ := repo.FindByID(u.ID)
		if got.SubscriptionStatus != user.StatusPastDue {
			t.Errorf("status = %q, want past_due", got.SubscriptionStatus)
		}
		if got.SubscriptionEnd == nil || !got.SubscriptionEnd.Equal(end) {
			t.Errorf("period end = %v, want %v", got.SubscriptionEnd, end)
		}
	})
}
