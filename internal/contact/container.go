package contact

import (
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

type ContactContainer struct {
	Handler *Handler
	Service ContactService
	Repo    ContactRepository
}

func NewContactContainer(db *gorm.DB, userRepo user.UserRepository, entitlements entitlement.Service) *ContactContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, userRepo, entitlements)
	handler := NewHandler(service)

	return &ContactContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
