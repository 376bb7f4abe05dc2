package container

import (
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/attachment"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/material"
	"github.com/planora-app/planora/internal/milestone"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

// Migrate creates or updates the full schema. Parents come before
// children so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&contact.Contact{},
		&program.Program{},
		&project.Project{},
		&task.Task{},
		&milestone.Milestone{},
		&material.Material{},
		&attachment.ProgramContact{},
		&attachment.ProjectContact{},
		&attachment.TaskContact{},
	)
}
