// Package habit tracks daily practices and the streak math over their
// entries. Unlike recurring tasks, habits have no generation pass: a habit
// is either marked for a day or it is not.
package habit

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/storage"
	"github.com/jmserra/tempo/internal/validation"
)

// Service wraps the store with habit-level operations.
type Service struct {
	store storage.Provider
	clock func() time.Time
}

// NewService creates a habit service. A nil clock defaults to time.Now.
func NewService(store storage.Provider, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{store: store, clock: clock}
}

// Summary is a habit with its derived streaks and today's state.
type Summary struct {
	Habit         models.Habit
	MarkedToday   bool
	CurrentStreak int
	LongestStreak int
}

// Add registers a new habit. Names are unique; adding an existing name is
// an error.
func (s *Service) Add(name string) (models.Habit, error) {
	if err := validation.ValidateTitle(name); err != nil {
		return models.Habit{}, err
	}
	if _, err := s.store.GetHabitByName(name); err == nil {
		return models.Habit{}, fmt.Errorf("habit %q already exists", name)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, err
	}

	h := models.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: s.clock(),
	}
	if err := s.store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// Mark records the habit as done for the given day (today when day is
// empty). Marking an already-marked day is a no-op.
func (s *Service) Mark(name, day, note string) error {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no habit named %q", name)
		}
		return err
	}

	if day == "" {
		day = s.clock().Format(constants.DateFormat)
	} else if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return fmt.Errorf("invalid day %q: %w", day, err)
	}

	if _, err := s.store.GetHabitEntry(h.ID, day); err == nil {
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return s.store.AddHabitEntry(models.HabitEntry{
		ID:        uuid.New().String(),
		HabitID:   h.ID,
		Day:       day,
		Note:      note,
		CreatedAt: s.clock(),
	})
}

// Unmark deletes the habit's entry for the given day, if any.
func (s *Service) Unmark(name, day string) error {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no habit named %q", name)
		}
		return err
	}
	if day == "" {
		day = s.clock().Format(constants.DateFormat)
	}

	entry, err := s.store.GetHabitEntry(h.ID, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	return s.store.DeleteHabitEntry(entry.ID)
}

// Archive hides the habit from listings without touching its entry log.
func (s *Service) Archive(name string) error {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no habit named %q", name)
		}
		return err
	}
	return s.store.ArchiveHabit(h.ID)
}

// Unarchive brings an archived habit back into listings.
func (s *Service) Unarchive(name string) error {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no habit named %q", name)
		}
		return err
	}
	return s.store.UnarchiveHabit(h.ID)
}

// Delete removes a habit and its entire entry log. Irreversible.
func (s *Service) Delete(name string) error {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no habit named %q", name)
		}
		return err
	}
	return s.store.DeleteHabit(h.ID)
}

// List returns every unarchived habit with streaks computed from its full
// entry log.
func (s *Service) List() ([]Summary, error) {
	habits, err := s.store.GetAllHabits(false)
	if err != nil {
		return nil, err
	}

	today := s.clock().Format(constants.DateFormat)
	summaries := make([]Summary, 0, len(habits))
	for _, h := range habits {
		entries, err := s.store.GetHabitEntriesForHabit(h.ID, "", "")
		if err != nil {
			return nil, err
		}
		days := make(map[string]bool, len(entries))
		for _, e := range entries {
			days[e.Day] = true
		}
		summaries = append(summaries, Summary{
			Habit:         h,
			MarkedToday:   days[today],
			CurrentStreak: CurrentStreak(days, s.clock()),
			LongestStreak: LongestStreak(days),
		})
	}
	return summaries, nil
}

// Log returns the habit's entries between startDay and endDay inclusive.
// Empty bounds mean unbounded.
func (s *Service) Log(name, startDay, endDay string) ([]models.HabitEntry, error) {
	h, err := s.store.GetHabitByName(name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no habit named %q", name)
		}
		return nil, err
	}
	return s.store.GetHabitEntriesForHabit(h.ID, startDay, endDay)
}

// CurrentStreak counts consecutive marked days ending today. An unmarked
// today does not break the streak so long as yesterday is marked; the run
// just has not been extended yet.
func CurrentStreak(days map[string]bool, now time.Time) int {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !days[day.Format(constants.DateFormat)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for days[day.Format(constants.DateFormat)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak finds the longest run of consecutive marked days anywhere
// in the log.
func LongestStreak(days map[string]bool) int {
	best := 0
	for d := range days {
		prev, err := time.Parse(constants.DateFormat, d)
		if err != nil {
			continue
		}
		// Only start counting at the beginning of a run.
		if days[prev.AddDate(0, 0, -1).Format(constants.DateFormat)] {
			continue
		}
		run := 0
		day := prev
		for days[day.Format(constants.DateFormat)] {
			run++
			day = day.AddDate(0, 0, 1)
		}
		if run > best {
			best = run
		}
	}
	return best
}
