package task

import (
	util "github.com/planora-app/planora/internal/utils"
)

type TaskForm struct {
	Name                 string        `json:"name" validate:"required,max=200"`
	Description          string        `json:"description"`
	StartDate            util.DateOnly `json:"start_date"`
	EndDate              util.DateOnly `json:"end_date"`
	Status               TaskStatus    `json:"status"`
	Priority             TaskPriority  `json:"priority"`
	CompletionPercentage int           `json:"completion_percentage" validate:"gte=0,lte=100"`
}

func (f *TaskForm) status() TaskStatus {
	if f.Status == "" {
		return StatusNotStarted
	}
	return f.Status
}

func (f *TaskForm) priority() TaskPriority {
	if f.Priority == "" {
		return PriorityMedium
	}
	return f.Priority
}
