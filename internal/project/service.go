package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrProgramNotFound = program.ErrProgramNotFound
	ErrInvalidStatus   = errors.New("invalid project status")
)

type ProjectService interface {
	Create(ctx context.Context, userID uuid.UUID, form ProjectForm) (*Project, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Project, error)
	ListByProgram(ctx context.Context, programID, userID uuid.UUID) ([]*Project, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Project, error)
	Update(ctx context.Context, id, userID uuid.UUID, form ProjectForm) (*Project, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type projectService struct {
	repo           ProjectRepository
	programService program.ProgramService
	userRepo       user.UserRepository
	entitlements   entitlement.Service
	db             *gorm.DB
}

func NewService(db *gorm.DB, repo ProjectRepository, programService program.ProgramService, userRepo user.UserRepository, entitlements entitlement.Service) ProjectService {
	return &projectService{
		repo:           repo,
		programService: programService,
		userRepo:       userRepo,
		entitlements:   entitlements,
		db:             db,
	}
}

// checkProgram verifies that a referenced program exists and belongs to the
// same user as the project.
func (s *projectService) checkProgram(ctx context.Context, programID *uuid.UUID, userID uuid.UUID) error {
	if programID == nil {
		return nil
	}
	_, err := s.programService.GetByID(ctx, *programID, userID)
	return err
}

func (s *projectService) Create(ctx context.Context, userID uuid.UUID, form ProjectForm) (*Project, error) {
	log := config.WithContext(ctx)

	if form.Status != "" && !form.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, user.ErrUserNotFound
	}

	if err := s.checkProgram(ctx, form.ProgramID, userID); err != nil {
		return nil, err
	}

	p := Project{
		ID:          uuid.New(),
		UserID:      userID,
		ProgramID:   form.ProgramID,
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Status:      form.status(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entitlements.CheckCreate(tx, owner, entitlement.ResourceProjects); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			log.WithError(err).Error("Failed to create project")
		}
		return nil, err
	}

	log.WithField("project_id", p.ID).Info("Project created")
	return &p, nil
}

func (s *projectService) List(ctx context.Context, userID uuid.UUID) ([]*Project, error) {
	return s.repo.FindAllByUserID(userID)
}

func (s *projectService) ListByProgram(ctx context.Context, programID, userID uuid.UUID) ([]*Project, error) {
	if _, err := s.programService.GetByID(ctx, programID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByProgramID(programID)
}

func (s *projectService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Project, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if err := guard.Authorize(p.UserID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id, userID uuid.UUID, form ProjectForm) (*Project, error) {
	log := config.WithContext(ctx)

	if form.Status != "" && !form.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	p, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.checkProgram(ctx, form.ProgramID, userID); err != nil {
		return nil, err
	}

	p.Name = form.Name
	p.Description = form.Description
	p.ProgramID = form.ProgramID
	p.StartDate = form.StartDate
	p.EndDate = form.EndDate
	p.Status = form.status()
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		log.WithError(err).Error("Failed to update project")
		return nil, err
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	p, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, p.ID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete project")
		return err
	}

	log.WithField("project_id", id).Info("Project deleted")
	return nil
}
