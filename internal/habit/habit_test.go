package habit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmserra/tempo/internal/storage"
)

func daysFrom(list ...string) map[string]bool {
	days := make(map[string]bool, len(list))
	for _, d := range list {
		days[d] = true
	}
	return days
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days map[string]bool
		want int
	}{
		{"no entries", daysFrom(), 0},
		{"today only", daysFrom("2026-03-04"), 1},
		{"three days ending today", daysFrom("2026-03-02", "2026-03-03", "2026-03-04"), 3},
		{
			"unmarked today keeps yesterday's run",
			daysFrom("2026-03-02", "2026-03-03"),
			2,
		},
		{"gap two days ago breaks the run", daysFrom("2026-03-01", "2026-03-03", "2026-03-04"), 2},
		{"only old entries", daysFrom("2026-02-20", "2026-02-21"), 0},
		{
			"run across a month boundary",
			daysFrom("2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"),
			6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(tt.days, now); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name string
		days map[string]bool
		want int
	}{
		{"no entries", daysFrom(), 0},
		{"single day", daysFrom("2026-01-10"), 1},
		{
			"longest run is in the past",
			daysFrom("2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04", "2026-02-01", "2026-02-02"),
			4,
		},
		{"two equal runs", daysFrom("2026-01-01", "2026-01-02", "2026-01-10", "2026-01-11"), 2},
		{"scattered singles", daysFrom("2026-01-01", "2026-01-03", "2026-01-05"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongestStreak(tt.days); got != tt.want {
				t.Errorf("LongestStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServiceLifecycle(t *testing.T) {
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	now := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	svc := NewService(store, func() time.Time { return now })

	if _, err := svc.Add("meditate"); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if _, err := svc.Add("meditate"); err == nil {
		t.Error("Add() of a duplicate name should fail")
	}

	if err := svc.Mark("meditate", "2026-03-03", ""); err != nil {
		t.Fatalf("Mark() failed: %v", err)
	}
	if err := svc.Mark("meditate", "", "felt calm"); err != nil {
		t.Fatalf("Mark() for today failed: %v", err)
	}
	if err := svc.Mark("meditate", "", ""); err != nil {
		t.Fatalf("re-Mark() should be a no-op, got %v", err)
	}
	if err := svc.Mark("no-such", "", ""); err == nil {
		t.Error("Mark() of an unknown habit should fail")
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List() returned %d habits, want 1", len(list))
	}
	got := list[0]
	if !got.MarkedToday {
		t.Error("habit should be marked today")
	}
	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}

	if err := svc.Unmark("meditate", ""); err != nil {
		t.Fatalf("Unmark() failed: %v", err)
	}
	list, err = svc.List()
	if err != nil {
		t.Fatalf("List() after Unmark failed: %v", err)
	}
	if list[0].MarkedToday {
		t.Error("habit should no longer be marked today")
	}
	if list[0].CurrentStreak != 1 {
		t.Errorf("CurrentStreak after Unmark = %d, want 1", list[0].CurrentStreak)
	}

	if err := svc.Archive("meditate"); err != nil {
		t.Fatalf("Archive() failed: %v", err)
	}
	list, err = svc.List()
	if err != nil {
		t.Fatalf("List() after Archive failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List() after Archive returned %d habits, want 0", len(list))
	}

	if err := svc.Unarchive("meditate"); err != nil {
		t.Fatalf("Unarchive() failed: %v", err)
	}
	if err := svc.Delete("meditate"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := svc.Delete("meditate"); err == nil {
		t.Error("Delete() of a removed habit should fail")
	}
}
