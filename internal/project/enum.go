package project

type ProjectStatus string

const (
	StatusPlanning  ProjectStatus = "Planning"
	StatusActive    ProjectStatus = "Active"
	StatusCompleted ProjectStatus = "Completed"
	StatusOnHold    ProjectStatus = "On Hold"
)

var AllStatuses = []ProjectStatus{
	StatusPlanning,
	StatusActive,
	StatusCompleted,
	StatusOnHold,
}

func (s ProjectStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
