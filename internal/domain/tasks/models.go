package tasks

import "time"

const (
	Collection = "tasks"

	FieldAssignedTo  = "assignedTo"
	FieldStatus      = "status"
	FieldCompletedAt = "completedAt"
)

const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

const (
	TypeGeneral = "General"
	TypeCRM     = "CRM"
)

type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	AssignedTo       string     `json:"assignedTo"`
	AssignedToName   string     `json:"assignedToName"`
	Status           string     `json:"status"`
	DueDate          time.Time  `json:"dueDate"`
	Type             string     `json:"type"`
	LeadID           string     `json:"leadId,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate,omitempty"`
	Instructions     string     `json:"instructions,omitempty"`
}

func (t Task) IsCRM() bool {
	return t.Type == TypeCRM
}

type NewTask struct {
	Title            string
	Description      string
	AssignedTo       string
	AssignedToName   string
	Status           string
	DueDate          time.Time
	Type             string
	LeadID           string
	Instructions     string
	NextFollowUpDate *time.Time
}

// Update is a partial change; nil fields are left untouched.
type Update struct {
	Title            *string
	Description      *string
	Status           *string
	DueDate          *time.Time
	Remarks          *string
	NextFollowUpDate *time.Time
	Instructions     *string
}

// Change reports the task before and after a status update.
type Change struct {
	Before Task
	After  Task
}

// NewlyCompleted is true only for the transition into Completed.
func (c Change) NewlyCompleted() bool {
	return c.Before.Status != StatusCompleted && c.After.Status == StatusCompleted
}
