package recur

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/validation"
)

// TaskDefinition is the user input for a new plain task.
type TaskDefinition struct {
	Title       string
	Description string
	Tags        []string
	DueDate     string
}

// AddTask validates and registers a plain (non-recurring) task.
func (e *Engine) AddTask(def TaskDefinition) (models.Task, error) {
	if err := validation.ValidateTitle(def.Title); err != nil {
		return models.Task{}, err
	}
	if err := validation.ValidateTags(def.Tags); err != nil {
		return models.Task{}, err
	}
	if def.DueDate != "" {
		if _, err := time.Parse(constants.DateFormat, def.DueDate); err != nil {
			return models.Task{}, fmt.Errorf("invalid due date %q: %w", def.DueDate, err)
		}
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       def.Title,
		Description: def.Description,
		Tags:        def.Tags,
		State:       models.TaskTodo,
		DueDate:     def.DueDate,
		CreatedAt:   e.clock().Format(time.RFC3339),
	}

	e.mu.Lock()
	e.tasks = append([]models.Task{task}, e.tasks...)
	e.dirtyTasks = true
	e.scheduleSave()
	e.mu.Unlock()

	return task, nil
}

// SetTaskState transitions a plain task between todo, doing, and done.
// Occurrences must go through Complete, Skip, Start/StopOccurrence so their
// template's stats stay consistent.
func (e *Engine) SetTaskState(taskID string, state models.TaskState) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	task := &e.tasks[ti]
	if task.IsOccurrence() {
		return fmt.Errorf("task %s is a recurring occurrence", taskID)
	}

	now := e.clock()
	task.State = state
	switch state {
	case models.TaskDoing:
		task.StartedAt = now.Format(time.RFC3339)
	case models.TaskDone:
		task.CompletedAt = now.Format(time.RFC3339)
	}
	e.dirtyTasks = true
	e.scheduleSave()
	return nil
}

// DeleteTask removes a plain task outright. Occurrences must go through
// DeleteOccurrence so the slot is recorded and not regenerated.
func (e *Engine) DeleteTask(taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ti := e.findTask(taskID)
	if ti < 0 {
		return fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	if e.tasks[ti].IsOccurrence() {
		return fmt.Errorf("task %s is a recurring occurrence", taskID)
	}

	e.tasks = append(e.tasks[:ti], e.tasks[ti+1:]...)
	e.dirtyTasks = true
	e.scheduleSave()
	return nil
}
