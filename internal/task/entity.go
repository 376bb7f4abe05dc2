package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/project"
	util "github.com/planora-app/planora/internal/utils"
)

// Task always belongs to a project; it is never standalone. Ownership is
// resolved through the project.
type Task struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID            uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Project              project.Project `gorm:"foreignKey:ProjectID" json:"-"`
	Name                 string          `gorm:"size:200;not null" json:"name"`
	Description          string          `gorm:"type:text" json:"description,omitempty"`
	StartDate            util.DateOnly   `gorm:"type:date" json:"start_date"`
	EndDate              util.DateOnly   `gorm:"type:date" json:"end_date"`
	Status               TaskStatus      `gorm:"size:50;default:Not Started" json:"status"`
	Priority             TaskPriority    `gorm:"size:20;default:Medium" json:"priority"`
	CompletionPercentage int             `gorm:"default:0" json:"completion_percentage"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
