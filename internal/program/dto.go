package program

import (
	util "github.com/planora-app/planora/internal/utils"
)

// ProgramForm carries the full editable field set; edits always replace
// the whole record.
type ProgramForm struct {
	Name        string        `json:"name" validate:"required,max=200"`
	Description string        `json:"description"`
	StartDate   util.DateOnly `json:"start_date"`
	EndDate     util.DateOnly `json:"end_date"`
	Status      ProgramStatus `json:"status"`
}

func (f *ProgramForm) status() ProgramStatus {
	if f.Status == "" {
		return StatusPlanning
	}
	return f.Status
}
