package models

type PomodoroMode string

const (
	PomodoroWork       PomodoroMode = "work"
	PomodoroShortBreak PomodoroMode = "short_break"
	PomodoroLongBreak  PomodoroMode = "long_break"
)

// PomodoroSession is one completed or abandoned timer run.
type PomodoroSession struct {
	ID          string       `json:"id"`
	Mode        PomodoroMode `json:"mode"`
	DurationMin int          `json:"duration_min"`
	TaskID      string       `json:"task_id,omitempty"`
	StartedAt   string       `json:"started_at"` // RFC3339 timestamp
	EndedAt     string       `json:"ended_at,omitempty"`
	Completed   bool         `json:"completed"`
}

// PomodoroDayStats aggregates one day's sessions.
type PomodoroDayStats struct {
	Day           string `json:"day"` // YYYY-MM-DD format
	SessionsTotal int    `json:"sessions_total"`
	SessionsDone  int    `json:"sessions_done"`
	FocusMinutes  int    `json:"focus_minutes"`
}
