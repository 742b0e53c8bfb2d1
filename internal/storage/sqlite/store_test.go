package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmserra/tempo/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() on a missing database should fail")
	}
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	again := NewStore(path)
	if err := again.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
	again.Close()
}

func TestRecurringTasksRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	in := []models.RecurringTask{
		{
			ID:          "t1",
			Title:       "morning run",
			Description: "5k around the park",
			Tags:        []string{"health"},
			Rule: models.RecurrenceRule{
				IntervalAmount: 1,
				IntervalUnit:   models.IntervalDay,
				TimesPerPeriod: 1,
				PeriodUnit:     models.PeriodDay,
				StartDate:      "2026-03-01",
				EndType:        models.EndOnDate,
				EndDate:        "2026-06-01",
			},
			Stats: models.Stats{
				TotalCompleted:    12,
				TotalMissed:       2,
				TotalSkipped:      1,
				CurrentStreak:     4,
				BestStreak:        9,
				LastCompletedDate: "2026-03-04T08:00:00Z",
			},
			Active:    true,
			CreatedAt: "2026-03-01T09:00:00Z",
		},
		{
			ID:    "t2",
			Title: "review budget",
			Rule: models.RecurrenceRule{
				IntervalAmount: 1,
				IntervalUnit:   models.IntervalMonth,
				TimesPerPeriod: 1,
				PeriodUnit:     models.PeriodMonth,
				StartDate:      "2026-01-01",
				EndType:        models.EndNever,
			},
			Active:    false,
			CreatedAt: "2026-01-01T09:00:00Z",
		},
	}

	if err := store.SaveRecurringTasks(in); err != nil {
		t.Fatalf("SaveRecurringTasks() failed: %v", err)
	}
	out, err := store.LoadRecurringTasks()
	if err != nil {
		t.Fatalf("LoadRecurringTasks() failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d templates, want 2", len(out))
	}

	// created_at ordering puts the January template first.
	if out[0].ID != "t2" || out[1].ID != "t1" {
		t.Fatalf("load order = %s, %s; want t2, t1", out[0].ID, out[1].ID)
	}
	if out[0].Active {
		t.Error("t2 loaded as active, was saved paused")
	}

	run := out[1]
	if run.Rule != in[0].Rule {
		t.Errorf("rule round trip mismatch:\n got %+v\nwant %+v", run.Rule, in[0].Rule)
	}
	if run.Stats != in[0].Stats {
		t.Errorf("stats round trip mismatch:\n got %+v\nwant %+v", run.Stats, in[0].Stats)
	}
	if len(run.Tags) != 1 || run.Tags[0] != "health" {
		t.Errorf("tags round trip = %v, want [health]", run.Tags)
	}

	// Full replace: saving a shorter list drops the rest.
	if err := store.SaveRecurringTasks(in[:1]); err != nil {
		t.Fatalf("second SaveRecurringTasks() failed: %v", err)
	}
	out, err = store.LoadRecurringTasks()
	if err != nil {
		t.Fatalf("LoadRecurringTasks() failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "t1" {
		t.Errorf("after replace, loaded %d templates, want just t1", len(out))
	}
}

func TestHistoryRoundTripPreservesOrder(t *testing.T) {
	store := setupTestStore(t)

	in := map[string][]models.HistoryEntry{
		"t1": {
			{Date: "2026-03-01", PeriodKey: "2026-03-01", Status: models.HistoryCompleted, Timestamp: "2026-03-01T20:00:00Z", TaskID: "a"},
			{Date: "2026-03-02", PeriodKey: "2026-03-02", Status: models.HistoryMissed, Timestamp: "2026-03-03T00:01:00Z"},
			{Date: "2026-03-03", PeriodKey: "2026-03-03", Status: models.HistorySkipped, Reason: "travel", Timestamp: "2026-03-03T09:00:00Z", TaskID: "b"},
		},
		"t2": {
			{Date: "2026-03-03", PeriodKey: "week_2026-03-01", Status: models.HistoryDeleted, Timestamp: "2026-03-03T10:00:00Z"},
		},
	}

	if err := store.SaveHistory(in); err != nil {
		t.Fatalf("SaveHistory() failed: %v", err)
	}
	out, err := store.LoadHistory()
	if err != nil {
		t.Fatalf("LoadHistory() failed: %v", err)
	}

	if len(out["t1"]) != 3 || len(out["t2"]) != 1 {
		t.Fatalf("loaded %d/%d entries, want 3/1", len(out["t1"]), len(out["t2"]))
	}
	for i, want := range in["t1"] {
		if out["t1"][i] != want {
			t.Errorf("t1 entry %d = %+v, want %+v", i, out["t1"][i], want)
		}
	}
	if out["t2"][0].Status != models.HistoryDeleted {
		t.Errorf("t2 entry status = %s, want deleted", out["t2"][0].Status)
	}
}

func TestTasksRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	in := []models.Task{
		{
			ID:        "plain",
			Title:     "file taxes",
			Tags:      []string{"admin", "money"},
			State:     models.TaskTodo,
			DueDate:   "2026-04-15",
			CreatedAt: "2026-03-04T09:00:00Z",
		},
		{
			ID:               "occ",
			Title:            "morning run",
			State:            models.TaskDone,
			CreatedAt:        "2026-03-03T07:00:00Z",
			CompletedAt:      "2026-03-03T08:00:00Z",
			RecurringTaskID:  "t1",
			PeriodKey:        "2026-03-03",
			OccurrenceNumber: 1,
			TotalForPeriod:   1,
		},
	}

	if err := store.SaveTasks(in); err != nil {
		t.Fatalf("SaveTasks() failed: %v", err)
	}
	out, err := store.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks() failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(out))
	}

	// Newest first.
	if out[0].ID != "plain" || out[1].ID != "occ" {
		t.Errorf("task order = %s, %s; want plain, occ", out[0].ID, out[1].ID)
	}
	if !out[1].IsOccurrence() {
		t.Error("occurrence lost its template reference")
	}
	if out[1].PeriodKey != "2026-03-03" || out[1].OccurrenceNumber != 1 {
		t.Errorf("occurrence metadata = %s/%d, want 2026-03-03/1",
			out[1].PeriodKey, out[1].OccurrenceNumber)
	}
	if len(out[0].Tags) != 2 {
		t.Errorf("tags round trip = %v, want 2 tags", out[0].Tags)
	}
}

func TestHabitLifecycle(t *testing.T) {
	store := setupTestStore(t)
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	h := models.Habit{ID: "h1", Name: "read", CreatedAt: created}
	if err := store.AddHabit(h); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	got, err := store.GetHabitByName("read")
	if err != nil {
		t.Fatalf("GetHabitByName() failed: %v", err)
	}
	if got.ID != "h1" || !got.CreatedAt.Equal(created) {
		t.Errorf("habit = %+v, want id h1 created %s", got, created)
	}

	if err := store.ArchiveHabit("h1"); err != nil {
		t.Fatalf("ArchiveHabit() failed: %v", err)
	}
	active, err := store.GetAllHabits(false)
	if err != nil {
		t.Fatalf("GetAllHabits(false) failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("archived habit still listed as active")
	}
	all, err := store.GetAllHabits(true)
	if err != nil {
		t.Fatalf("GetAllHabits(true) failed: %v", err)
	}
	if len(all) != 1 || all[0].ArchivedAt == nil {
		t.Errorf("expected 1 archived habit, got %d", len(all))
	}

	if err := store.ArchiveHabit("h1"); err == nil {
		t.Error("archiving twice should fail")
	}
	if err := store.UnarchiveHabit("h1"); err != nil {
		t.Fatalf("UnarchiveHabit() failed: %v", err)
	}
}

func TestHabitEntriesQueries(t *testing.T) {
	store := setupTestStore(t)
	now := time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC)

	if err := store.AddHabit(models.Habit{ID: "h1", Name: "read", CreatedAt: now}); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	days := []string{"2026-03-01", "2026-03-02", "2026-03-04"}
	for _, day := range days {
		note := ""
		if day == "2026-03-04" {
			note = "chapter 3"
		}
		err := store.AddHabitEntry(models.HabitEntry{
			ID: "e" + day, HabitID: "h1", Day: day, Note: note, CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("AddHabitEntry(%s) failed: %v", day, err)
		}
	}

	t.Run("unbounded", func(t *testing.T) {
		entries, err := store.GetHabitEntriesForHabit("h1", "", "")
		if err != nil {
			t.Fatalf("GetHabitEntriesForHabit() failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("got %d entries, want 3", len(entries))
		}
	})

	t.Run("bounded", func(t *testing.T) {
		entries, err := store.GetHabitEntriesForHabit("h1", "2026-03-02", "2026-03-03")
		if err != nil {
			t.Fatalf("GetHabitEntriesForHabit() failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Day != "2026-03-02" {
			t.Errorf("bounded query = %v, want only 2026-03-02", entries)
		}
	})

	t.Run("single day across habits", func(t *testing.T) {
		entries, err := store.GetHabitEntriesForDay("2026-03-04")
		if err != nil {
			t.Fatalf("GetHabitEntriesForDay() failed: %v", err)
		}
		if len(entries) != 1 || entries[0].Note != "chapter 3" {
			t.Errorf("day query = %v, want the noted entry", entries)
		}
	})

	t.Run("duplicate day updates note", func(t *testing.T) {
		err := store.AddHabitEntry(models.HabitEntry{
			ID: "dup", HabitID: "h1", Day: "2026-03-04", Note: "chapter 4", CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("duplicate AddHabitEntry() failed: %v", err)
		}
		entry, err := store.GetHabitEntry("h1", "2026-03-04")
		if err != nil {
			t.Fatalf("GetHabitEntry() failed: %v", err)
		}
		if entry.Note != "chapter 4" {
			t.Errorf("note = %q, want updated to chapter 4", entry.Note)
		}
	})
}

func TestPomodoroSessionsDayFilter(t *testing.T) {
	store := setupTestStore(t)

	sessions := []models.PomodoroSession{
		{ID: "s1", Mode: models.PomodoroWork, DurationMin: 25, StartedAt: "2026-03-03T09:00:00Z", Completed: true},
		{ID: "s2", Mode: models.PomodoroWork, DurationMin: 25, StartedAt: "2026-03-04T10:00:00Z", Completed: true},
		{ID: "s3", Mode: models.PomodoroShortBreak, DurationMin: 5, StartedAt: "2026-03-04T10:30:00Z", Completed: true},
		{ID: "s4", Mode: models.PomodoroWork, DurationMin: 25, StartedAt: "2026-03-05T09:00:00Z", Completed: false},
	}
	for _, sess := range sessions {
		if err := store.AddPomodoroSession(sess); err != nil {
			t.Fatalf("AddPomodoroSession(%s) failed: %v", sess.ID, err)
		}
	}

	got, err := store.GetPomodoroSessions("2026-03-04", "2026-03-04")
	if err != nil {
		t.Fatalf("GetPomodoroSessions() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sessions for the day, want 2", len(got))
	}
	if got[0].ID != "s2" || got[1].ID != "s3" {
		t.Errorf("session order = %s, %s; want s2, s3", got[0].ID, got[1].ID)
	}
	if !got[0].Completed || got[0].DurationMin != 25 {
		t.Errorf("session round trip mismatch: %+v", got[0])
	}
}
