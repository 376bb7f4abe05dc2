package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`

	// Google OAuth refresh token, AES-GCM encrypted at rest.
	GoogleRefreshToken string `json:"-"`

	SubscriptionTier     Tier               `gorm:"size:20;default:free" json:"subscription_tier"`
	SubscriptionStatus   SubscriptionStatus `gorm:"size:20;default:active" json:"subscription_status"`
	StripeCustomerID     string             `gorm:"size:255;index" json:"-"`
	StripeSubscriptionID string             `gorm:"size:255" json:"-"`
	SubscriptionEnd      *time.Time         `json:"subscription_end,omitempty"`

	// BillingSyncedAt is the provider event time of the last applied
	// billing webhook. Older events are treated as stale and skipped.
	BillingSyncedAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTier falls back to free for anything unknown, so a bad value in
// the column can never unlock paid quotas.
func (u *User) EffectiveTier() Tier {
	if u.SubscriptionTier.IsValid() {
		return u.SubscriptionTier
	}
	return TierFree
}
