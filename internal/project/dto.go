package project

import (
	"github.com/google/uuid"
	util "github.com/planora-app/planora/internal/utils"
)

type ProjectForm struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Description string        `json:"description"`
	ProgramID   *uuid.UUID    `json:"program_id"`
	StartDate   util.DateOnly `json:"start_date"`
	EndDate     util.DateOnly `json:"end_date"`
	Status      ProjectStatus `json:"status"`
}

func (f *ProjectForm) status() ProjectStatus {
	if f.Status == "" {
		return StatusPlanning
	}
	return f.Status
}
