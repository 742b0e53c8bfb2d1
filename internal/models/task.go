package models

type TaskState string

const (
	TaskTodo  TaskState = "todo"
	TaskDoing TaskState = "doing"
	TaskDone  TaskState = "done"
)

// Task is a single actionable item. Plain tasks and recurring occurrences
// share this type and the same storage collection; an occurrence is a task
// whose RecurringTaskID is set.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Media       []string  `json:"media,omitempty"`
	State       TaskState `json:"state"`
	DueDate     string    `json:"due_date,omitempty"` // YYYY-MM-DD format
	CreatedAt   string    `json:"created_at"`         // RFC3339 timestamp
	StartedAt   string    `json:"started_at,omitempty"`
	CompletedAt string    `json:"completed_at,omitempty"`

	// Recurring occurrence metadata, empty for plain tasks
	RecurringTaskID  string `json:"recurring_task_id,omitempty"`
	PeriodKey        string `json:"period_key,omitempty"`
	OccurrenceNumber int    `json:"occurrence_number,omitempty"`
	TotalForPeriod   int    `json:"total_for_period,omitempty"`
}

// IsOccurrence reports whether this task was generated from a recurring
// template.
func (t Task) IsOccurrence() bool {
	return t.RecurringTaskID != ""
}
