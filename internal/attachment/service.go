package attachment

import (
	"context"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
)

type AttachmentService interface {
	Assign(ctx context.Context, ref parent.Ref, contactID, userID uuid.UUID) error
	Unassign(ctx context.Context, ref parent.Ref, contactID, userID uuid.UUID) error
	ListContacts(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]contact.Contact, error)
}

type attachmentService struct {
	repo           AttachmentRepository
	contactService contact.ContactService
	programService program.ProgramService
	projectService project.ProjectService
	taskService    task.TaskService
}

func NewAttachmentService(
	repo AttachmentRepository,
	contactService contact.ContactService,
	programService program.ProgramService,
	projectService project.ProjectService,
	taskService task.TaskService,
) AttachmentService {
	return &attachmentService{
		repo:           repo,
		contactService: contactService,
		programService: programService,
		projectService: projectService,
		taskService:    taskService,
	}
}

// Assign links a contact to a program, project or task. Linking an
// already linked pair is a no-op.
func (s *attachmentService) Assign(ctx context.Context, ref parent.Ref, contactID, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	if err := s.authorize(ctx, ref, contactID, userID); err != nil {
		return err
	}

	linked, err := s.repo.Exists(ref, contactID)
	if err != nil {
		log.WithError(err).Error("failed to check contact link")
		return err
	}
	if linked {
		return nil
	}

	if err := s.repo.Link(ref, contactID); err != nil {
		log.WithError(err).Error("failed to link contact")
		return err
	}

	log.WithField("contact_id", contactID).Infof("contact assigned to %s %s", ref.Kind(), ref.ID())
	return nil
}

// Unassign removes a contact link. Removing a link that does not exist
// is a no-op.
func (s *attachmentService) Unassign(ctx context.Context, ref parent.Ref, contactID, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	if err := s.authorize(ctx, ref, contactID, userID); err != nil {
		return err
	}

	if err := s.repo.Unlink(ref, contactID); err != nil {
		log.WithError(err).Error("failed to unlink contact")
		return err
	}
	return nil
}

func (s *attachmentService) ListContacts(ctx context.Context, ref parent.Ref, userID uuid.UUID) ([]contact.Contact, error) {
	if err := s.authorizeTarget(ctx, ref, userID); err != nil {
		return nil, err
	}
	return s.repo.FindContacts(ref)
}

// authorize checks that the requester owns both ends of the link.
func (s *attachmentService) authorize(ctx context.Context, ref parent.Ref, contactID, userID uuid.UUID) error {
	if err := s.authorizeTarget(ctx, ref, userID); err != nil {
		return err
	}
	if _, err := s.contactService.GetByID(ctx, contactID, userID); err != nil {
		return err
	}
	return nil
}

func (s *attachmentService) authorizeTarget(ctx context.Context, ref parent.Ref, userID uuid.UUID) error {
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
