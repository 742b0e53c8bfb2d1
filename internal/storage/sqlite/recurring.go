package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/jmserra/tempo/internal/models"
)

func (s *Store) LoadRecurringTasks() ([]models.RecurringTask, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, tags, media,
		       interval_amount, interval_unit, times_per_period, period_unit,
		       start_date, end_type, end_date, max_occurrences,
		       total_completed, total_missed, total_skipped,
		       current_streak, best_streak, last_completed_date,
		       active, created_at
		FROM recurring_tasks ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []models.RecurringTask
	for rows.Next() {
		var rt models.RecurringTask
		var tags, media string
		var active int

		err := rows.Scan(
			&rt.ID, &rt.Title, &rt.Description, &tags, &media,
			&rt.Rule.IntervalAmount, &rt.Rule.IntervalUnit, &rt.Rule.TimesPerPeriod, &rt.Rule.PeriodUnit,
			&rt.Rule.StartDate, &rt.Rule.EndType, &rt.Rule.EndDate, &rt.Rule.MaxOccurrences,
			&rt.Stats.TotalCompleted, &rt.Stats.TotalMissed, &rt.Stats.TotalSkipped,
			&rt.Stats.CurrentStreak, &rt.Stats.BestStreak, &rt.Stats.LastCompletedDate,
			&active, &rt.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		rt.Active = active == 1
		if err := json.Unmarshal([]byte(tags), &rt.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags for template %s: %w", rt.ID, err)
		}
		if err := json.Unmarshal([]byte(media), &rt.Media); err != nil {
			return nil, fmt.Errorf("failed to parse media for template %s: %w", rt.ID, err)
		}

		templates = append(templates, rt)
	}

	return templates, rows.Err()
}

func (s *Store) SaveRecurringTasks(templates []models.RecurringTask) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recurring_tasks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO recurring_tasks (
			id, title, description, tags, media,
			interval_amount, interval_unit, times_per_period, period_unit,
			start_date, end_type, end_date, max_occurrences,
			total_completed, total_missed, total_skipped,
			current_streak, best_streak, last_completed_date,
			active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rt := range templates {
		tags, err := json.Marshal(rt.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags for template %s: %w", rt.ID, err)
		}
		media, err := json.Marshal(rt.Media)
		if err != nil {
			return fmt.Errorf("failed to marshal media for template %s: %w", rt.ID, err)
		}
		active := 0
		if rt.Active {
			active = 1
		}

		_, err = stmt.Exec(
			rt.ID, rt.Title, rt.Description, string(tags), string(media),
			rt.Rule.IntervalAmount, rt.Rule.IntervalUnit, rt.Rule.TimesPerPeriod, rt.Rule.PeriodUnit,
			rt.Rule.StartDate, rt.Rule.EndType, rt.Rule.EndDate, rt.Rule.MaxOccurrences,
			rt.Stats.TotalCompleted, rt.Stats.TotalMissed, rt.Stats.TotalSkipped,
			rt.Stats.CurrentStreak, rt.Stats.BestStreak, rt.Stats.LastCompletedDate,
			active, rt.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) LoadHistory() (map[string][]models.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT recurring_task_id, date, period_key, status, reason, timestamp, task_id
		FROM recurring_history ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(map[string][]models.HistoryEntry)
	for rows.Next() {
		var templateID string
		var e models.HistoryEntry

		err := rows.Scan(&templateID, &e.Date, &e.PeriodKey, &e.Status, &e.Reason, &e.Timestamp, &e.TaskID)
		if err != nil {
			return nil, err
		}

		history[templateID] = append(history[templateID], e)
	}

	return history, rows.Err()
}

func (s *Store) SaveHistory(history map[string][]models.HistoryEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM recurring_history"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO recurring_history (
			recurring_task_id, date, period_key, status, reason, timestamp, task_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for templateID, entries := range history {
		for _, e := range entries {
			_, err = stmt.Exec(templateID, e.Date, e.PeriodKey, e.Status, e.Reason, e.Timestamp, e.TaskID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
