package dashboard

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
)

// Stats is the per-user overview shown on the landing page.
type Stats struct {
	Programs int64 `json:"programs"`
	Projects int64 `json:"projects"`
	Tasks    int64 `json:"tasks"`
	Contacts int64 `json:"contacts"`
}

// Overview bundles the stats with the top-level entities.
type Overview struct {
	Stats              Stats              `json:"stats"`
	Programs           []*program.Program `json:"programs"`
	StandaloneProjects []*project.Project `json:"standalone_projects"`
}

type DashboardService interface {
	Overview(ctx context.Context, userID uuid.UUID) (*Overview, error)
}

type dashboardService struct {
	db          *gorm.DB
	programRepo program.ProgramRepository
	projectRepo project.ProjectRepository
}

func NewService(db *gorm.DB, programRepo program.ProgramRepository, projectRepo project.ProjectRepository) DashboardService {
	return &dashboardService{
		db:          db,
		programRepo: programRepo,
		projectRepo: projectRepo,
	}
}

func (s *dashboardService) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	var out Overview

	counts := map[string]*int64{
		"programs": &out.Stats.Programs,
		"projects": &out.Stats.Projects,
		"contacts": &out.Stats.Contacts,
	}
	for table, dst := range counts {
		if err := s.db.Table(table).Where("user_id = ?", userID).Count(dst).Error; err != nil {
			return nil, err
		}
	}
	err := s.db.Table("tasks").
		Where("project_id IN (SELECT id FROM projects WHERE user_id = ?)", userID).
		Count(&out.Stats.Tasks).Error
	if err != nil {
		return nil, err
	}

	if out.Programs, err = s.programRepo.FindAllByUserID(userID); err != nil {
		return nil, err
	}
	if out.StandaloneProjects, err = s.projectRepo.FindStandaloneByUserID(userID); err != nil {
		return nil, err
	}
	return &out, nil
}
