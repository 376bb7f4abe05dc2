package milestone

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	util "github.com/planora-app/planora/internal/utils"
)

var (
	ErrMilestoneNotFound = errors.New("milestone not found")
	ErrInvalidParent     = errors.New("milestone parent must be a program or a project")
)

type MilestoneService interface {
	Create(ctx context.Context, ref parent.Ref, userID uuid.UUID, form MilestoneForm) (*Milestone, error)
	ListByParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]*Milestone, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Milestone, error)
	Update(ctx context.Context, id, userID uuid.UUID, form MilestoneForm) (*Milestone, error)
	// Toggle flips the achieved flag, stamping or clearing the achieved
	// date, and returns the updated milestone.
	Toggle(ctx context.Context, id, userID uuid.UUID) (*Milestone, error)
	// Delete removes the milestone and returns the parent reference the
	// caller should land on afterwards.
	Delete(ctx context.Context, id, userID uuid.UUID) (parent.Ref, error)
}

type milestoneService struct {
	repo           MilestoneRepository
	programService program.ProgramService
	projectService project.ProjectService
}

func NewService(repo MilestoneRepository, programService program.ProgramService, projectService project.ProjectService) MilestoneService {
	return &milestoneService{
		repo:           repo,
		programService: programService,
		projectService: projectService,
	}
}

func (s *milestoneService) Create(ctx context.Context, ref parent.Ref, userID uuid.UUID, form MilestoneForm) (*Milestone, error) {
	log := config.WithContext(ctx)

	if err := s.authorizeParent(ctx, ref, userID); err != nil {
		return nil, err
	}

	m := Milestone{
		ID:         uuid.New(),
		Name:       form.Name,
		TargetDate: form.TargetDate,
	}
	id := ref.ID()
	if ref.Kind() == parent.KindProgram {
		m.ProgramID = &id
	} else {
		m.ProjectID = &id
	}

	if err := s.repo.Create(&m); err != nil {
		log.WithError(err).Error("Failed to create milestone")
		return nil, err
	}

	log.WithField("milestone_id", m.ID).Info("Milestone created")
	return &m, nil
}

func (s *milestoneService) ListByParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]*Milestone, error) {
	if err := s.authorizeParent(ctx, ref, userID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByParent(ref)
}

func (s *milestoneService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Milestone, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMilestoneNotFound
	}
	ref, err := m.Parent()
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParent(ctx, ref, userID); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) Update(ctx context.Context, id, userID uuid.UUID, form MilestoneForm) (*Milestone, error) {
	log := config.WithContext(ctx)

	m, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	m.Name = form.Name
	m.TargetDate = form.TargetDate
	m.UpdatedAt = time.Now()

	if err := s.repo.Update(m); err != nil {
		log.WithError(err).Error("Failed to update milestone")
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) Toggle(ctx context.Context, id, userID uuid.UUID) (*Milestone, error) {
	log := config.WithContext(ctx)

	m, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	m.Achieved = !m.Achieved
	if m.Achieved {
		m.AchievedDate = util.Today()
	} else {
		m.AchievedDate = util.DateOnly{}
	}
	m.UpdatedAt = time.Now()

	if err := s.repo.Update(m); err != nil {
		log.WithError(err).Error("Failed to toggle milestone")
		return nil, err
	}
	return m, nil
}

func (s *milestoneService) Delete(ctx context.Context, id, userID uuid.UUID) (parent.Ref, error) {
	log := config.WithContext(ctx)

	m, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return parent.Ref{}, err
	}
	ref, err := m.Parent()
	if err != nil {
		return parent.Ref{}, err
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete milestone")
		return parent.Ref{}, err
	}

	log.WithField("milestone_id", id).Info("Milestone deleted")
	return ref, nil
}

func (s *milestoneService) authorizeParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) error {
	switch ref.Kind() {
	case parent.KindProgram:
		_, err := s.programService.GetByID(ctx, ref.ID(), userID)
		return err
	case parent.KindProject:
		_, err := s.projectService.GetByID(ctx, ref.ID(), userID)
		return err
	default:
		return ErrInvalidParent
	}
}
