package entitlement

import (
	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

type Service interface {
	// CheckCreate counts the user's existing resources of the given kind
	// inside tx and returns a *QuotaError when the tier limit is reached.
	// Run it in the same transaction as the insert so a concurrent request
	// cannot slip past the quota.
	CheckCreate(tx *gorm.DB, u *user.User, resource Resource) error

	// CheckTaskCreate enforces the per-project task limit.
	CheckTaskCreate(tx *gorm.DB, u *user.User, projectID uuid.UUID) error
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) CheckCreate(tx *gorm.DB, u *user.User, resource Resource) error {
	tier := u.EffectiveTier()
	limit := LimitsFor(tier).For(resource)
	if limit.IsUnlimited() {
		return nil
	}

	var count int64
	if err := tx.Table(string(resource)).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		return err
	}

	if !limit.Allows(count) {
		return &QuotaError{Resource: resource, Tier: tier, Limit: limit}
	}
	return nil
}

func (s *service) CheckTaskCreate(tx *gorm.DB, u *user.User, projectID uuid.UUID) error {
	tier := u.EffectiveTier()
	limit := LimitsFor(tier).TasksPerProject
	if limit.IsUnlimited() {
		return nil
	}

	var count int64
	if err := tx.Table("tasks").Where("project_id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}

	if !limit.Allows(count) {
		return &QuotaError{Resource: ResourceTasks, Tier: tier, Limit: limit}
	}
	return nil
}
