package pomo

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/storage"
)

func newTestService(t *testing.T) (*Service, *fixedClock) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	clock := &fixedClock{now: time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)}
	return NewService(store, clock.Now), clock
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func TestLogValidatesInput(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Log(SessionInput{DurationMin: 0}); err == nil {
		t.Error("zero duration accepted")
	}
	if _, err := svc.Log(SessionInput{Mode: "nap", DurationMin: 25}); err == nil {
		t.Error("unknown mode accepted")
	}

	sess, err := svc.Log(SessionInput{DurationMin: 25, Completed: true})
	if err != nil {
		t.Fatalf("Log() failed: %v", err)
	}
	if sess.Mode != models.PomodoroWork {
		t.Errorf("default mode = %q, want work", sess.Mode)
	}
	if sess.StartedAt >= sess.EndedAt {
		t.Errorf("session interval inverted: %s .. %s", sess.StartedAt, sess.EndedAt)
	}
}

func TestStatsAggregatesWorkSessions(t *testing.T) {
	svc, clock := newTestService(t)

	// Yesterday: two completed work sessions and a break.
	clock.now = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if _, err := svc.Log(SessionInput{DurationMin: 25, Completed: true}); err != nil {
			t.Fatalf("Log() failed: %v", err)
		}
	}
	if _, err := svc.Log(SessionInput{Mode: models.PomodoroShortBreak, DurationMin: 5, Completed: true}); err != nil {
		t.Fatalf("Log() failed: %v", err)
	}

	// Today: one completed, one abandoned.
	clock.now = time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
	if _, err := svc.Log(SessionInput{DurationMin: 50, Completed: true}); err != nil {
		t.Fatalf("Log() failed: %v", err)
	}
	if _, err := svc.Log(SessionInput{DurationMin: 25, Completed: false}); err != nil {
		t.Fatalf("Log() failed: %v", err)
	}

	stats, err := svc.Stats(3)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d day rows, want 3", len(stats))
	}

	today := stats[0]
	if today.Day != "2026-03-04" {
		t.Fatalf("first row day = %s, want today", today.Day)
	}
	if today.SessionsTotal != 2 || today.SessionsDone != 1 || today.FocusMinutes != 50 {
		t.Errorf("today = %+v, want 2 total / 1 done / 50 focus minutes", today)
	}

	yesterday := stats[1]
	if yesterday.SessionsTotal != 2 || yesterday.FocusMinutes != 50 {
		t.Errorf("yesterday = %+v, want 2 work sessions and 50 focus minutes", yesterday)
	}

	empty := stats[2]
	if empty.SessionsTotal != 0 || empty.FocusMinutes != 0 {
		t.Errorf("day with no sessions = %+v, want zeros", empty)
	}
}
