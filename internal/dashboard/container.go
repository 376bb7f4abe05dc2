package dashboard

import (
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
)

type DashboardContainer struct {
	Handler *Handler
	Service DashboardService
}

func NewDashboardContainer(db *gorm.DB, programRepo program.ProgramRepository, projectRepo project.ProjectRepository) *DashboardContainer {
	service := NewService(db, programRepo, projectRepo)

	return &DashboardContainer{
		Handler: NewHandler(service),
		Service: service,
	}
}
