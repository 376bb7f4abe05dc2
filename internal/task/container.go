package task

import (
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

type TaskContainer struct {
	Handler *Handler
	Service TaskService
	Repo    TaskRepository
}

func NewTaskContainer(db *gorm.DB, projectService project.ProjectService, userRepo user.UserRepository, entitlements entitlement.Service) *TaskContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, projectService, userRepo, entitlements)
	handler := NewHandler(service)

	return &TaskContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
