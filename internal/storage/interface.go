package storage

import "github.com/jmserra/tempo/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Recurring templates and their history. The engine owns these
	// collections in memory and mirrors them with full-replace writes.
	LoadRecurringTasks() ([]models.RecurringTask, error)
	SaveRecurringTasks([]models.RecurringTask) error
	LoadHistory() (map[string][]models.HistoryEntry, error)
	SaveHistory(map[string][]models.HistoryEntry) error

	// Tasks. Plain tasks and recurring occurrences share this collection;
	// occurrences carry a recurring_task_id back-reference.
	LoadTasks() ([]models.Task, error)
	SaveTasks([]models.Task) error

	// Habits
	AddHabit(models.Habit) error
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error

	// Habit Entries
	AddHabitEntry(models.HabitEntry) error
	GetHabitEntry(habitID, day string) (models.HabitEntry, error)
	DeleteHabitEntry(id string) error
	GetHabitEntriesForDay(day string) ([]models.HabitEntry, error)
	GetHabitEntriesForHabit(habitID, startDay, endDay string) ([]models.HabitEntry, error)

	// Pomodoro
	AddPomodoroSession(models.PomodoroSession) error
	GetPomodoroSessions(startDay, endDay string) ([]models.PomodoroSession, error)

	// Utils
	GetConfigPath() string
}
