package models

type IntervalUnit string

const (
	IntervalDay   IntervalUnit = "day"
	IntervalWeek  IntervalUnit = "week"
	IntervalMonth IntervalUnit = "month"
	IntervalYear  IntervalUnit = "year"
)

type PeriodUnit string

const (
	PeriodDay   PeriodUnit = "day"
	PeriodWeek  PeriodUnit = "week"
	PeriodMonth PeriodUnit = "month"
)

type EndType string

const (
	EndNever      EndType = "never"
	EndOnDate     EndType = "date"
	EndAfterCount EndType = "occurrences"
)

// RecurrenceRule defines how often and how many times a template repeats.
// StartDate is the earliest date an occurrence may be generated.
type RecurrenceRule struct {
	IntervalAmount int          `json:"interval_amount"`
	IntervalUnit   IntervalUnit `json:"interval_unit"`
	TimesPerPeriod int          `json:"times_per_period"`
	PeriodUnit     PeriodUnit   `json:"period_unit"`
	StartDate      string       `json:"start_date"` // YYYY-MM-DD format
	EndType        EndType      `json:"end_type"`
	EndDate        string       `json:"end_date,omitempty"`        // YYYY-MM-DD, set when EndType is "date"
	MaxOccurrences int          `json:"max_occurrences,omitempty"` // set when EndType is "occurrences"
}

// Stats holds the aggregate completion record for one recurring template.
type Stats struct {
	TotalCompleted    int    `json:"total_completed"`
	TotalMissed       int    `json:"total_missed"`
	TotalSkipped      int    `json:"total_skipped"`
	CurrentStreak     int    `json:"current_streak"`
	BestStreak        int    `json:"best_streak"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // RFC3339 timestamp
}

// Handled is the number of period-slots that have been resolved one way or
// another; used against MaxOccurrences end conditions.
func (s Stats) Handled() int {
	return s.TotalCompleted + s.TotalMissed + s.TotalSkipped
}

// RecurringTask is the user-defined template a task occurrence is generated
// from. Occurrences reference it by ID; deleting a template cascades to its
// occurrences and history.
type RecurringTask struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Media       []string       `json:"media,omitempty"`
	Rule        RecurrenceRule `json:"rule"`
	Stats       Stats          `json:"stats"`
	Active      bool           `json:"active"`
	CreatedAt   string         `json:"created_at"` // RFC3339 timestamp
}

type HistoryStatus string

const (
	HistoryCompleted HistoryStatus = "completed"
	HistoryMissed    HistoryStatus = "missed"
	HistorySkipped   HistoryStatus = "skipped"
	HistoryDeleted   HistoryStatus = "deleted"
)

// HistoryEntry records what happened to one period-slot of one template.
// History is append-only; entries are never mutated.
type HistoryEntry struct {
	Date      string        `json:"date"` // YYYY-MM-DD format
	PeriodKey string        `json:"period_key"`
	Status    HistoryStatus `json:"status"`
	Reason    string        `json:"reason,omitempty"` // set for skipped entries
	Timestamp string        `json:"timestamp"`        // RFC3339
	TaskID    string        `json:"task_id,omitempty"`
}

// StatsView is the derived per-template summary returned by the stats
// operation.
type StatsView struct {
	TotalCompleted int
	TotalMissed    int
	TotalSkipped   int
	CurrentStreak  int
	BestStreak     int
	CompletionRate int
	LastCompleted  string
	History        []HistoryEntry
}
