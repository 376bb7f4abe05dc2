package material

import (
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
)

type MaterialContainer struct {
	Handler *Handler
	Service MaterialService
	Repo    MaterialRepository
}

func NewMaterialContainer(db *gorm.DB, programService program.ProgramService, projectService project.ProjectService, taskService task.TaskService) *MaterialContainer {
	repo := NewRepository(db)
	service := NewService(repo, programService, projectService, taskService)
	handler := NewHandler(service)

	return &MaterialContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
