package user

import (
	"time"

	"github.com/google/uuid"
)

type RegisterDTO struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginDTO struct {
	Code string `json:"code" validate:"required"`
}

type UserResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	SubscriptionTier   Tier               `json:"subscription_tier"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	SubscriptionEnd    *time.Time         `json:"subscription_end,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		SubscriptionTier:   u.EffectiveTier(),
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionEnd:    u.SubscriptionEnd,
		CreatedAt:          u.CreatedAt,
	}
}
