package program

import (
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/user"
	util "github.com/planora-app/planora/internal/utils"
)

type Program struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        user.User     `gorm:"foreignKey:UserID" json:"-"`
	Name        string        `gorm:"size:200;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	StartDate   util.DateOnly `gorm:"type:date" json:"start_date"`
	EndDate     util.DateOnly `gorm:"type:date" json:"end_date"`
	Status      ProgramStatus `gorm:"size:50;default:Planning" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
