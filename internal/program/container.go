package program

import (
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

type ProgramContainer struct {
	Handler *Handler
	Service ProgramService
	Repo    ProgramRepository
}

func NewProgramContainer(db *gorm.DB, userRepo user.UserRepository, entitlements entitlement.Service) *ProgramContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, userRepo, entitlements)
	handler := NewHandler(service)

	return &ProgramContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
