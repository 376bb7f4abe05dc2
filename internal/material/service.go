package material

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
)

var ErrMaterialNotFound = errors.New("material not found")

type MaterialService interface {
	Create(ctx context.Context, ref parent.Ref, userID uuid.UUID, form MaterialForm) (*Material, error)
	ListByParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]*Material, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Material, error)
	Update(ctx context.Context, id, userID uuid.UUID, form MaterialForm) (*Material, error)
	// Delete removes the material and returns the program or project the
	// caller should land on afterwards. A task-owned material redirects
	// to the task's project.
	Delete(ctx context.Context, id, userID uuid.UUID) (parent.Ref, error)
	RedirectTarget(ctx context.Context, m *Material) (parent.Ref, error)
}

type materialService struct {
	repo           MaterialRepository
	programService program.ProgramService
	projectService project.ProjectService
	taskService    task.TaskService
}

func NewService(repo MaterialRepository, programService program.ProgramService, projectService project.ProjectService, taskService task.TaskService) MaterialService {
	return &materialService{
		repo:           repo,
		programService: programService,
		projectService: projectService,
		taskService:    taskService,
	}
}

func (s *materialService) Create(ctx context.Context, ref parent.Ref, userID uuid.UUID, form MaterialForm) (*Material, error) {
	log := config.WithContext(ctx)

	if err := s.authorizeParent(ctx, ref, userID); err != nil {
		return nil, err
	}

	m := Material{
		ID:          uuid.New(),
		Name:        form.Name,
		Quantity:    form.quantity(),
		Unit:        form.Unit,
		CostPerUnit: form.CostPerUnit,
		Supplier:    form.Supplier,
	}
	id := ref.ID()
	switch ref.Kind() {
	case parent.KindProgram:
		m.ProgramID = &id
	case parent.KindProject:
		m.ProjectID = &id
	default:
		m.TaskID = &id
	}

	if err := s.repo.Create(&m); err != nil {
		log.WithError(err).Error("Failed to create material")
		return nil, err
	}

	log.WithField("material_id", m.ID).Info("Material created")
	return &m, nil
}

func (s *materialService) ListByParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]*Material, error) {
	if err := s.authorizeParent(ctx, ref, userID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByParent(ref)
}

func (s *materialService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Material, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMaterialNotFound
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

func (s *materialService) Update(ctx context.Context, id, userID uuid.UUID, form MaterialForm) (*Material, error) {
	log := config.WithContext(ctx)

	m, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	m.Name = form.Name
	m.Quantity = form.quantity()
	m.Unit = form.Unit
	m.CostPerUnit = form.CostPerUnit
	m.Supplier = form.Supplier
	m.UpdatedAt = time.Now()

	if err := s.repo.Update(m); err != nil {
		log.WithError(err).Error("Failed to update material")
		return nil, err
	}
	return m, nil
}

func (s *materialService) Delete(ctx context.Context, id, userID uuid.UUID) (parent.Ref, error) {
	log := config.WithContext(ctx)

	m, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return parent.Ref{}, err
	}
	target, err := s.RedirectTarget(ctx, m)
	if err != nil {
		return parent.Ref{}, err
	}

	if err := s.repo.Delete(id); err != nil {
		log.WithError(err).Error("Failed to delete material")
		return parent.Ref{}, err
	}

	log.WithField("material_id", id).Info("Material deleted")
	return target, nil
}

// RedirectTarget resolves the program or project a material belongs to,
// walking a task parent up to its project.
func (s *materialService) RedirectTarget(ctx context.Context, m *Material) (parent.Ref, error) {
	ref, err := m.Parent()
	if err != nil {
		return parent.Ref{}, err
	}
	if ref.Kind() != parent.KindTask {
		return ref, nil
	}
	t, err := s.taskService.FindByID(ref.ID())
	if err != nil {
		return parent.Ref{}, err
	}
	if t == nil {
		return parent.Ref{}, task.ErrTaskNotFound
	}
	return parent.ForProject(t.ProjectID), nil
}

func (s *materialService) authorizeParent(ctx context.Context, ref parent.Ref, userID uuid.UUID) error {
	var err error
	switch ref.Kind() {
	case parent.KindProgram:
		_, err = s.programService.GetByID(ctx, ref.ID(), userID)
	case parent.KindProject:
		_, err = s.projectService.GetByID(ctx, ref.ID(), userID)
	default:
		_, err = s.taskService.GetByID(ctx, ref.ID(), userID)
	}
	return err
}
