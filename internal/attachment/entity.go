package attachment

import (
	"time"

	"github.com/google/uuid"
)

// Join rows linking contacts to programs, projects and tasks. Composite
// primary keys give the (entity, contact) pair its uniqueness constraint.

type ProgramContact struct {
	ProgramID uuid.UUID `gorm:"type:uuid;primaryKey" json:"program_id"`
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contact_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProgramContact) TableName() string { return "program_contacts" }

type ProjectContact struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contact_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProjectContact) TableName() string { return "project_contacts" }

type TaskContact struct {
	TaskID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"task_id"`
	ContactID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contact_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (TaskContact) TableName() string { return "task_contacts" }
