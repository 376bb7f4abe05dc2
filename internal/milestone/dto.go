package milestone

import (
	util "github.com/planora-app/planora/internal/utils"
)

type MilestoneForm struct {
	Name       string        `json:"name" validate:"required,max=200"`
	TargetDate util.DateOnly `json:"target_date"`
}
