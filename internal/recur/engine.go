package recur

import (
	"errors"
	"sync"
	"time"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/logger"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/storage"
)

// ErrNotFound is returned when an operation references a template or task
// that no longer exists. Callers may treat it as a no-op.
var ErrNotFound = errors.New("not found")

// Engine owns the recurring templates, their append-only history, and the
// shared task collection (plain tasks plus generated occurrences). All state
// lives in memory and is mirrored to the store on a trailing debounce; the
// in-memory copy stays authoritative when a write fails.
type Engine struct {
	mu    sync.Mutex
	store storage.Provider
	clock func() time.Time

	templates []models.RecurringTask
	history   map[string][]models.HistoryEntry
	tasks     []models.Task

	dirtyTemplates bool
	dirtyHistory   bool
	dirtyTasks     bool
	saveTimer      *time.Timer
}

// New creates an engine over the given store. A nil clock defaults to
// time.Now.
func New(store storage.Provider, clock func() time.Time) *Engine {
	if clock == nil {
		clock = time.Now
	}
	return &Engine{
		store:   store,
		clock:   clock,
		history: make(map[string][]models.HistoryEntry),
	}
}

// Load reads all three collections from the store. Call once before any
// other operation.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	templates, err := e.store.LoadRecurringTasks()
	if err != nil {
		return err
	}
	history, err := e.store.LoadHistory()
	if err != nil {
		return err
	}
	tasks, err := e.store.LoadTasks()
	if err != nil {
		return err
	}

	e.templates = templates
	e.history = history
	if e.history == nil {
		e.history = make(map[string][]models.HistoryEntry)
	}
	e.tasks = tasks
	return nil
}

// Now returns the engine's current time.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// Templates returns a copy of the template list.
func (e *Engine) Templates() []models.RecurringTask {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.RecurringTask, len(e.templates))
	copy(out, e.templates)
	return out
}

// Tasks returns a copy of the shared task collection.
func (e *Engine) Tasks() []models.Task {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.Task, len(e.tasks))
	copy(out, e.tasks)
	return out
}

// HistoryFor returns a copy of one template's history log.
func (e *Engine) HistoryFor(templateID string) []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	entries := e.history[templateID]
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

// Flush writes every dirty collection to the store synchronously. Failures
// are logged and the dirty flags kept, so the next flush retries.
func (e *Engine) Flush() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.flushLocked()
}

func (e *Engine) flushLocked() {
	if e.saveTimer != nil {
		e.saveTimer.Stop()
		e.saveTimer = nil
	}

	if e.dirtyTemplates {
		if err := e.store.SaveRecurringTasks(e.templates); err != nil {
			logger.Error("Failed to save recurring templates", "error", err)
		} else {
			e.dirtyTemplates = false
		}
	}
	if e.dirtyHistory {
		if err := e.store.SaveHistory(e.history); err != nil {
			logger.Error("Failed to save recurring history", "error", err)
		} else {
			e.dirtyHistory = false
		}
	}
	if e.dirtyTasks {
		if err := e.store.SaveTasks(e.tasks); err != nil {
			logger.Error("Failed to save tasks", "error", err)
		} else {
			e.dirtyTasks = false
		}
	}
}

// scheduleSave arms the trailing debounce so rapid successive mutations
// coalesce into one store write. Caller must hold e.mu.
func (e *Engine) scheduleSave() {
	if e.saveTimer != nil {
		e.saveTimer.Stop()
	}
	e.saveTimer = time.AfterFunc(constants.SaveDebounce, e.Flush)
}

func (e *Engine) findTemplate(id string) int {
	for i := range e.templates {
		if e.templates[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) findTask(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
