// Package pomo records pomodoro sessions and aggregates per-day focus
// stats. The timer itself runs wherever the user runs it; this package only
// keeps the log.
package pomo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/storage"
)

// Service wraps the store with pomodoro-level operations.
type Service struct {
	store storage.Provider
	clock func() time.Time
}

// NewService creates a pomodoro service. A nil clock defaults to time.Now.
func NewService(store storage.Provider, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{store: store, clock: clock}
}

// SessionInput is the user input for logging one finished session.
type SessionInput struct {
	Mode        models.PomodoroMode
	DurationMin int
	TaskID      string
	Completed   bool
}

// Log records a session that just ended. StartedAt is derived from the
// duration so a session logged right after finishing lands on the correct
// day.
func (s *Service) Log(in SessionInput) (models.PomodoroSession, error) {
	if in.Mode == "" {
		in.Mode = models.PomodoroWork
	}
	switch in.Mode {
	case models.PomodoroWork, models.PomodoroShortBreak, models.PomodoroLongBreak:
	default:
		return models.PomodoroSession{}, fmt.Errorf("unknown pomodoro mode %q", in.Mode)
	}
	if in.DurationMin <= 0 {
		return models.PomodoroSession{}, fmt.Errorf("duration must be positive, got %d", in.DurationMin)
	}

	now := s.clock()
	sess := models.PomodoroSession{
		ID:          uuid.New().String(),
		Mode:        in.Mode,
		DurationMin: in.DurationMin,
		TaskID:      in.TaskID,
		StartedAt:   now.Add(-time.Duration(in.DurationMin) * time.Minute).Format(time.RFC3339),
		EndedAt:     now.Format(time.RFC3339),
		Completed:   in.Completed,
	}
	if err := s.store.AddPomodoroSession(sess); err != nil {
		return models.PomodoroSession{}, err
	}
	return sess, nil
}

// Stats aggregates sessions per day for the last n days, most recent
// first. Only work sessions count toward focus minutes.
func (s *Service) Stats(days int) ([]models.PomodoroDayStats, error) {
	if days <= 0 {
		days = 7
	}

	now := s.clock()
	end := now.Format(constants.DateFormat)
	start := now.AddDate(0, 0, -(days - 1)).Format(constants.DateFormat)

	sessions, err := s.store.GetPomodoroSessions(start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*models.PomodoroDayStats)
	for _, sess := range sessions {
		if len(sess.StartedAt) < len(constants.DateFormat) {
			continue
		}
		day := sess.StartedAt[:len(constants.DateFormat)]
		st := byDay[day]
		if st == nil {
			st = &models.PomodoroDayStats{Day: day}
			byDay[day] = st
		}
		if sess.Mode != models.PomodoroWork {
			continue
		}
		st.SessionsTotal++
		if sess.Completed {
			st.SessionsDone++
			st.FocusMinutes += sess.DurationMin
		}
	}

	out := make([]models.PomodoroDayStats, 0, days)
	for d := 0; d < days; d++ {
		day := now.AddDate(0, 0, -d).Format(constants.DateFormat)
		if st := byDay[day]; st != nil {
			out = append(out, *st)
		} else {
			out = append(out, models.PomodoroDayStats{Day: day})
		}
	}
	return out, nil
}
