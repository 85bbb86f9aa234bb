package notifications

const (
	Collection = "notifications"

	FieldUserID    = "userId"
	FieldRead      = "read"
	FieldTimestamp = "timestamp"
)

const (
	TypeTaskCompleted = "task-completed"
	TypeLeaveRequest  = "leave-request"
	TypeNewTask       = "new-task"
	TypeLeaveStatus   = "leave-status"
)

func validType(t string) bool {
	switch t {
	case TypeTaskCompleted, TypeLeaveRequest, TypeNewTask, TypeLeaveStatus:
		return true
	default:
		return false
	}
}
