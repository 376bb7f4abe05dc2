package material

import (
	"time"

	"github.com/google/uuid"

	"github.com/planora-app/planora/internal/parent"
)

// Material belongs to exactly one of a program, a project or a task.
type Material struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProgramID   *uuid.UUID `gorm:"type:uuid;index" json:"program_id,omitempty"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index" json:"project_id,omitempty"`
	TaskID      *uuid.UUID `gorm:"type:uuid;index" json:"task_id,omitempty"`
	Name        string     `gorm:"not null" json:"name"`
	Quantity    float64    `gorm:"not null;default:1" json:"quantity"`
	Unit        string     `json:"unit"`
	CostPerUnit *float64   `json:"cost_per_unit,omitempty"`
	Supplier    string     `json:"supplier"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Parent returns the owning reference.
func (m *Material) Parent() (parent.Ref, error) {
	return parent.FromIDs(m.ProgramID, m.ProjectID, m.TaskID)
}

// TotalCost is quantity times unit cost, or zero when no cost is set.
func (m *Material) TotalCost() float64 {
	if m.CostPerUnit == nil {
		return 0
	}
	return m.Quantity * *m.CostPerUnit
}
