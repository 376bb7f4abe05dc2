package project

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/user"
	util "github.com/planora-app/planora/internal/utils"
)

// Project belongs to a user and optionally to one of the user's programs.
type Project struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User        user.User        `gorm:"foreignKey:UserID" json:"-"`
	ProgramID   *uuid.UUID       `gorm:"type:uuid;index" json:"program_id,omitempty"`
	Program     *program.Program `gorm:"foreignKey:ProgramID" json:"-"`
	Name        string           `gorm:"size:200;not null" json:"name"`
	Description string           `gorm:"type:text" json:"description,omitempty"`
	StartDate   util.DateOnly    `gorm:"type:date" json:"start_date"`
	EndDate     util.DateOnly    `gorm:"type:date" json:"end_date"`
	Status      ProjectStatus    `gorm:"size:50;default:Planning" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
