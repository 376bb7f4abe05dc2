package program

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/user"
	"gorm.io/gorm"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrInvalidStatus   = errors.New("invalid program status")
)

type ProgramService interface {
	Create(ctx context.Context, userID uuid.UUID, form ProgramForm) (*Program, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Program, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Program, error)
	Update(ctx context.Context, id, userID uuid.UUID, form ProgramForm) (*Program, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type programService struct {
	repo         ProgramRepository
	userRepo     user.UserRepository
	entitlements entitlement.Service
	db           *gorm.DB
}

func NewService(db *gorm.DB, repo ProgramRepository, userRepo user.UserRepository, entitlements entitlement.Service) ProgramService {
	return &programService{
		repo:         repo,
		userRepo:     userRepo,
		entitlements: entitlements,
		db:           db,
	}
}

func (s *programService) Create(ctx context.Context, userID uuid.UUID, form ProgramForm) (*Program, error) {
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

	p := Program{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        form.Name,
		Description: form.Description,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Status:      form.status(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entitlements.CheckCreate(tx, owner, entitlement.ResourcePrograms); err != nil {
			return err
		}
		return tx.Create(&p).Error
	})
	if err != nil {
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			log.WithError(err).Error("Failed to create program")
		}
		return nil, err
	}

	log.WithField("program_id", p.ID).Info("Program created")
	return &p, nil
}

func (s *programService) List(ctx context.Context, userID uuid.UUID) ([]*Program, error) {
	return s.repo.FindAllByUserID(userID)
}

func (s *programService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Program, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProgramNotFound
	}
	if err := guard.Authorize(p.UserID, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *programService) Update(ctx context.Context, id, userID uuid.UUID, form ProgramForm) (*Program, error) {
	log := config.WithContext(ctx)

	if form.Status != "" && !form.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	p, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	p.Name = form.Name
	p.Description = form.Description
	p.StartDate = form.StartDate
	p.EndDate = form.EndDate
	p.Status = form.status()
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(p); err != nil {
		log.WithError(err).Error("Failed to update program")
		return nil, err
	}
	return p, nil
}

func (s *programService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	p, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, p.ID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete program")
		return err
	}

	log.WithField("program_id", id).Info("Program deleted")
	return nil
}
