package project

import (
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

type ProjectContainer struct {
	Handler *Handler
	Service ProjectService
	Repo    ProjectRepository
}

func NewProjectContainer(db *gorm.DB, programService program.ProgramService, userRepo user.UserRepository, entitlements entitlement.Service) *ProjectContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, programService, userRepo, entitlements)
	handler := NewHandler(service)

	return &ProjectContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
