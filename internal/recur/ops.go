package recur

import (
	"fmt"
	"time"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/logger"
	"github.com/jmserra/tempo/internal/models"
)

// Complete marks an occurrence done, records a Completed history entry,
// advances the streak, and re-runs the generation pass so a later slot in
// the same period appears at once.
func (e *Engine) Complete(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 || !e.tasks[ti].IsOccurrence() {
		logger.Warn("Complete on unknown occurrence", "task", taskID)
		return fmt.Errorf("occurrence %s: %w", taskID, ErrNotFound)
	}
	task := &e.tasks[ti]
	if task.State == models.TaskDone {
		return nil
	}

	ri := e.findTemplate(task.RecurringTaskID)
	if ri < 0 {
		logger.Warn("Complete on occurrence of deleted template", "task", taskID)
		return fmt.Errorf("template %s: %w", task.RecurringTaskID, ErrNotFound)
	}
	rt := &e.templates[ri]

	now := e.clock()
	e.history[rt.ID] = append(e.history[rt.ID], models.HistoryEntry{
		Date:      now.Format(constants.DateFormat),
		PeriodKey: task.PeriodKey,
		Status:    models.HistoryCompleted,
		Timestamp: now.Format(time.RFC3339),
		TaskID:    task.ID,
	})

	rt.Stats.TotalCompleted++
	rt.Stats.CurrentStreak++
	if rt.Stats.CurrentStreak > rt.Stats.BestStreak {
		rt.Stats.BestStreak = rt.Stats.CurrentStreak
	}
	rt.Stats.LastCompletedDate = now.Format(time.RFC3339)

	task.State = models.TaskDone
	task.CompletedAt = now.Format(time.RFC3339)

	e.dirtyHistory = true
	e.dirtyTemplates = true
	e.dirtyTasks = true
	e.processLocked(now)
	e.scheduleSave()
	return nil
}

// Skip removes an occurrence from the active set and records a Skipped
// entry. The streak is untouched: skipping neither breaks nor extends it.
func (e *Engine) Skip(taskID, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 || !e.tasks[ti].IsOccurrence() {
		logger.Warn("Skip on unknown occurrence", "task", taskID)
		return fmt.Errorf("occurrence %s: %w", taskID, ErrNotFound)
	}
	task := e.tasks[ti]

	ri := e.findTemplate(task.RecurringTaskID)
	if ri < 0 {
		logger.Warn("Skip on occurrence of deleted template", "task", taskID)
		return fmt.Errorf("template %s: %w", task.RecurringTaskID, ErrNotFound)
	}
	rt := &e.templates[ri]

	now := e.clock()
	e.history[rt.ID] = append(e.history[rt.ID], models.HistoryEntry{
		Date:      now.Format(constants.DateFormat),
		PeriodKey: task.PeriodKey,
		Status:    models.HistorySkipped,
		Reason:    reason,
		Timestamp: now.Format(time.RFC3339),
		TaskID:    task.ID,
	})
	rt.Stats.TotalSkipped++

	e.tasks = append(e.tasks[:ti], e.tasks[ti+1:]...)

	e.dirtyHistory = true
	e.dirtyTemplates = true
	e.dirtyTasks = true
	e.processLocked(now)
	e.scheduleSave()
	return nil
}

// DeleteOccurrence removes one occurrence without completing it. The slot
// is recorded as Deleted so it is not regenerated for this period; aggregate
// stats are untouched.
func (e *Engine) DeleteOccurrence(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 || !e.tasks[ti].IsOccurrence() {
		logger.Warn("Delete on unknown occurrence", "task", taskID)
		return fmt.Errorf("occurrence %s: %w", taskID, ErrNotFound)
	}
	task := e.tasks[ti]

	now := e.clock()
	e.history[task.RecurringTaskID] = append(e.history[task.RecurringTaskID], models.HistoryEntry{
		Date:      now.Format(constants.DateFormat),
		PeriodKey: task.PeriodKey,
		Status:    models.HistoryDeleted,
		Timestamp: now.Format(time.RFC3339),
		TaskID:    task.ID,
	})

	e.tasks = append(e.tasks[:ti], e.tasks[ti+1:]...)

	e.dirtyHistory = true
	e.dirtyTasks = true
	e.scheduleSave()
	return nil
}

// StartOccurrence moves an occurrence from todo to doing.
func (e *Engine) StartOccurrence(taskID string) error {
	return e.setOccurrenceState(taskID, models.TaskDoing)
}

// StopOccurrence moves an occurrence from doing back to todo.
func (e *Engine) StopOccurrence(taskID string) error {
	return e.setOccurrenceState(taskID, models.TaskTodo)
}

func (e *Engine) setOccurrenceState(taskID string, state models.TaskState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 || !e.tasks[ti].IsOccurrence() {
		return fmt.Errorf("occurrence %s: %w", taskID, ErrNotFound)
	}
	task := &e.tasks[ti]
	if task.State == models.TaskDone {
		return fmt.Errorf("occurrence %s is already done", taskID)
	}

	task.State = state
	if state == models.TaskDoing {
		task.StartedAt = e.clock().Format(time.RFC3339)
	}
	e.dirtyTasks = true
	e.scheduleSave()
	return nil
}

// Pause stops occurrence generation for a template.
func (e *Engine) Pause(templateID string) error {
	return e.setActive(templateID, false)
}

// Resume re-enables a template and immediately runs a generation pass.
func (e *Engine) Resume(templateID string) error {
	return e.setActive(templateID, true)
}

func (e *Engine) setActive(templateID string, active bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ri := e.findTemplate(templateID)
	if ri < 0 {
		return fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}
	e.templates[ri].Active = active
	e.dirtyTemplates = true
	if active {
		e.processLocked(e.clock())
	}
	e.scheduleSave()
	return nil
}

// DeleteTemplate removes a template, all of its occurrences regardless of
// state, and its entire history log. Irreversible.
func (e *Engine) DeleteTemplate(templateID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ri := e.findTemplate(templateID)
	if ri < 0 {
		return fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}

	e.templates = append(e.templates[:ri], e.templates[ri+1:]...)

	kept := e.tasks[:0]
	for _, t := range e.tasks {
		if t.RecurringTaskID != templateID {
			kept = append(kept, t)
		}
	}
	e.tasks = kept

	delete(e.history, templateID)

	e.dirtyTemplates = true
	e.dirtyHistory = true
	e.dirtyTasks = true
	e.scheduleSave()
	return nil
}

// StatsFor returns the derived stats view for one template, including the
// last entries of its history for display.
func (e *Engine) StatsFor(templateID string) (models.StatsView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ri := e.findTemplate(templateID)
	if ri < 0 {
		return models.StatsView{}, fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}
	rt := e.templates[ri]

	total := rt.Stats.Handled()
	rate := 0
	if total > 0 {
		rate = int(float64(rt.Stats.TotalCompleted)/float64(total)*100 + 0.5)
	}

	entries := e.history[templateID]
	start := len(entries) - constants.StatsHistoryEntries
	if start < 0 {
		start = 0
	}
	tail := make([]models.HistoryEntry, len(entries)-start)
	copy(tail, entries[start:])

	return models.StatsView{
		TotalCompleted: rt.Stats.TotalCompleted,
		TotalMissed:    rt.Stats.TotalMissed,
		TotalSkipped:   rt.Stats.TotalSkipped,
		CurrentStreak:  rt.Stats.CurrentStreak,
		BestStreak:     rt.Stats.BestStreak,
		CompletionRate: rate,
		LastCompleted:  rt.Stats.LastCompletedDate,
		History:        tail,
	}, nil
}
