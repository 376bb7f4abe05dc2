package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = project.ErrProjectNotFound
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type TaskService interface {
	Create(ctx context.Context, projectID, userID uuid.UUID, form TaskForm) (*Task, error)
	ListByProject(ctx context.Context, projectID, userID uuid.UUID) ([]*Task, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Task, error)
	// FindByID fetches without an ownership check; callers must have
	// already authorized access through a parent lookup.
	FindByID(id uuid.UUID) (*Task, error)
	Update(ctx context.Context, id, userID uuid.UUID, form TaskForm) (*Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type taskService struct {
	repo           TaskRepository
	projectService project.ProjectService
	userRepo       user.UserRepository
	entitlements   entitlement.Service
	db             *gorm.DB
}

func NewService(db *gorm.DB, repo TaskRepository, projectService project.ProjectService, userRepo user.UserRepository, entitlements entitlement.Service) TaskService {
	return &taskService{
		repo:           repo,
		projectService: projectService,
		userRepo:       userRepo,
		entitlements:   entitlements,
		db:             db,
	}
}

func validateForm(form *TaskForm) error {
	if form.Status != "" && !form.Status.IsValid() {
		return ErrInvalidStatus
	}
	if form.Priority != "" && !form.Priority.IsValid() {
		return ErrInvalidPriority
	}
	return nil
}

func clampCompletion(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func (s *taskService) Create(ctx context.Context, projectID, userID uuid.UUID, form TaskForm) (*Task, error) {
	log := config.WithContext(ctx)

	if err := validateForm(&form); err != nil {
		return nil, err
	}

	if _, err := s.projectService.GetByID(ctx, projectID, userID); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, user.ErrUserNotFound
	}

	t := Task{
		ID:                   uuid.New(),
		ProjectID:            projectID,
		Name:                 form.Name,
		Description:          form.Description,
		StartDate:            form.StartDate,
		EndDate:              form.EndDate,
		Status:               form.status(),
		Priority:             form.priority(),
		CompletionPercentage: clampCompletion(form.CompletionPercentage),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entitlements.CheckTaskCreate(tx, owner, projectID); err != nil {
			return err
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			log.WithError(err).Error("Failed to create task")
		}
		return nil, err
	}

	log.WithField("task_id", t.ID).Info("Task created")
	return &t, nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID, userID uuid.UUID) ([]*Task, error) {
	if _, err := s.projectService.GetByID(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByProjectID(projectID)
}

// GetByID resolves the owning user through the task's project before
// returning the task.
func (s *taskService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Task, error) {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if _, err := s.projectService.GetByID(ctx, t.ProjectID, userID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *taskService) FindByID(id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(id)
}

func (s *taskService) Update(ctx context.Context, id, userID uuid.UUID, form TaskForm) (*Task, error) {
	log := config.WithContext(ctx)

	if err := validateForm(&form); err != nil {
		return nil, err
	}

	t, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	t.Name = form.Name
	t.Description = form.Description
	t.StartDate = form.StartDate
	t.EndDate = form.EndDate
	t.Status = form.status()
	t.Priority = form.priority()
	t.CompletionPercentage = clampCompletion(form.CompletionPercentage)
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to update task")
		return nil, err
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	t, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, t.ID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete task")
		return err
	}

	log.WithField("task_id", id).Info("Task deleted")
	return nil
}
