package milestone

import (
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
)

type MilestoneContainer struct {
	Handler *Handler
	Service MilestoneService
	Repo    MilestoneRepository
}

func NewMilestoneContainer(db *gorm.DB, programService program.ProgramService, projectService project.ProjectService) *MilestoneContainer {
	repo := NewRepository(db)
	service := NewService(repo, programService, projectService)
	handler := NewHandler(service)

	return &MilestoneContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
