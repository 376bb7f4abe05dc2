package contact

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

var ErrContactNotFound = errors.New("contact not found")

type ContactService interface {
	Create(ctx context.Context, userID uuid.UUID, form ContactForm) (*Contact, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Contact, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	Update(ctx context.Context, id, userID uuid.UUID, form ContactForm) (*Contact, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type contactService struct {
	repo         ContactRepository
	userRepo     user.UserRepository
	entitlements entitlement.Service
	db           *gorm.DB
}

func NewService(db *gorm.DB, repo ContactRepository, userRepo user.UserRepository, entitlements entitlement.Service) ContactService {
	return &contactService{
		repo:         repo,
		userRepo:     userRepo,
		entitlements: entitlements,
		db:           db,
	}
}

func (s *contactService) Create(ctx context.Context, userID uuid.UUID, form ContactForm) (*Contact, error) {
	log := config.WithContext(ctx)

	owner, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, user.ErrUserNotFound
	}

	c := Contact{
		ID:     uuid.New(),
		UserID: userID,
		Name:   form.Name,
		Email:  form.Email,
		Phone:  form.Phone,
		Role:   form.Role,
		Notes:  form.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entitlements.CheckCreate(tx, owner, entitlement.ResourceContacts); err != nil {
			return err
		}
		return tx.Create(&c).Error
	})
	if err != nil {
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			log.WithError(err).Error("Failed to create contact")
		}
		return nil, err
	}

	log.WithField("contact_id", c.ID).Info("Contact created")
	return &c, nil
}

func (s *contactService) List(ctx context.Context, userID uuid.UUID) ([]*Contact, error) {
	return s.repo.FindAllByUserID(userID)
}

func (s *contactService) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	if err := guard.Authorize(c.UserID, userID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id, userID uuid.UUID, form ContactForm) (*Contact, error) {
	log := config.WithContext(ctx)

	c, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	c.Name = form.Name
	c.Email = form.Email
	c.Phone = form.Phone
	c.Role = form.Role
	c.Notes = form.Notes
	c.UpdatedAt = time.Now()

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update contact")
		return nil, err
	}
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	c, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, c.ID)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete contact")
		return err
	}

	log.WithField("contact_id", id).Info("Contact deleted")
	return nil
}
