package program

type ProgramStatus string

const (
	StatusPlanning  ProgramStatus = "Planning"
	StatusActive    ProgramStatus = "Active"
	StatusCompleted ProgramStatus = "Completed"
	StatusOnHold    ProgramStatus = "On Hold"
)

var AllStatuses = []ProgramStatus{
	StatusPlanning,
	StatusActive,
	StatusCompleted,
	StatusOnHold,
}

func (s ProgramStatus) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}
