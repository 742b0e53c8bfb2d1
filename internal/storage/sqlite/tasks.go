package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/jmserra/tempo/internal/models"
)

func (s *Store) LoadTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, tags, media, state, due_date,
		       created_at, started_at, completed_at,
		       recurring_task_id, period_key, occurrence_number, total_for_period
		FROM tasks ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		var tags, media string

		err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &tags, &media, &t.State, &t.DueDate,
			&t.CreatedAt, &t.StartedAt, &t.CompletedAt,
			&t.RecurringTaskID, &t.PeriodKey, &t.OccurrenceNumber, &t.TotalForPeriod,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags for task %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(media), &t.Media); err != nil {
			return nil, fmt.Errorf("failed to parse media for task %s: %w", t.ID, err)
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Store) SaveTasks(tasks []models.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (
			id, title, description, tags, media, state, due_date,
			created_at, started_at, completed_at,
			recurring_task_id, period_key, occurrence_number, total_for_period
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for task %s: %w", t.ID, err)
		}
		media, err := json.Marshal(t.Media)
		if err != nil {
			return fmt.Errorf("failed to marshal media for task %s: %w", t.ID, err)
		}

		_, err = stmt.Exec(
			t.ID, t.Title, t.Description, string(tags), string(media), t.State, t.DueDate,
			t.CreatedAt, t.StartedAt, t.CompletedAt,
			t.RecurringTaskID, t.PeriodKey, t.OccurrenceNumber, t.TotalForPeriod,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
