package milestone

import (
	"time"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/parent"
	util "github.com/planora-app/planora/internal/utils"
)

// Milestone belongs to exactly one of a program or a project.
type Milestone struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID    *uuid.UUID    `gorm:"type:uuid;index" json:"program_id,omitempty"`
	ProjectID    *uuid.UUID    `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Name         string        `gorm:"not null" json:"name"`
	TargetDate   util.DateOnly `gorm:"type:date" json:"target_date"`
	Achieved     bool          `gorm:"not null;default:false" json:"achieved"`
	AchievedDate util.DateOnly `gorm:"type:date" json:"achieved_date"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Parent returns the owning reference.
func (m *Milestone) Parent() (parent.Ref, error) {
	return parent.FromIDs(m.ProgramID, m.ProjectID, nil)
}
