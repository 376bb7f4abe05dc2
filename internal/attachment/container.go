package attachment

import (
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
)

type AttachmentContainer struct {
	Repository AttachmentRepository
	Service    AttachmentService
	Handler    *Handler
}

func NewAttachmentContainer(
	db *gorm.DB,
	contactService contact.ContactService,
	programService program.ProgramService,
	projectService project.ProjectService,
	taskService task.TaskService,
) *AttachmentContainer {
	repo := NewAttachmentRepository(db)
	service := NewAttachmentService(repo, contactService, programService, projectService, taskService)
	return &AttachmentContainer{
		Repository: repo,
		Service:    service,
		Handler:    NewHandler(service),
	}
}
