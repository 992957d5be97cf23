package domain

import "time"

// TaskStatus enumerates the task workflow states. The values match the
// task_status enum in the database schema, whose declaration order drives
// the status sort in list queries.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ParseTaskStatus validates a wire-format status value.
func ParseTaskStatus(value string) (TaskStatus, bool) {
	switch TaskStatus(value) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(value), true
	}
	return "", false
}

// Task is a user-owned work item. Ownership is assigned at creation and
// never transferred.
type Task struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Status    TaskStatus `json:"status"`
	DueDate   *time.Time `json:"dueDate"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TaskPatch carries a partial update. Nil fields are left untouched.
// DueDateSet distinguishes "clear the due date" from "leave it alone".
type TaskPatch struct {
	Title      *string
	Content    *string
	Status     *TaskStatus
	DueDate    *time.Time
	DueDateSet bool
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Status == nil && !p.DueDateSet
}
