package sqlite

import "github.com/jmserra/tempo/internal/models"

func (s *Store) AddPomodoroSession(session models.PomodoroSession) error {
	completed := 0
	if session.Completed {
		completed = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO pomodoro_sessions (id, mode, duration_min, task_id, started_at, ended_at, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ended_at = excluded.ended_at,
			completed = excluded.completed`,
		session.ID, session.Mode, session.DurationMin, session.TaskID,
		session.StartedAt, session.EndedAt, completed)

	return err
}

// GetPomodoroSessions returns sessions whose start date falls in the given
// day range (inclusive, YYYY-MM-DD).
func (s *Store) GetPomodoroSessions(startDay, endDay string) ([]models.PomodoroSession, error) {
	rows, err := s.db.Query(`
		SELECT id, mode, duration_min, task_id, started_at, ended_at, completed
		FROM pomodoro_sessions
		WHERE substr(started_at, 1, 10) >= ? AND substr(started_at, 1, 10) <= ?
		ORDER BY started_at`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PomodoroSession
	for rows.Next() {
		var sess models.PomodoroSession
		var completed int

		err := rows.Scan(&sess.ID, &sess.Mode, &sess.DurationMin, &sess.TaskID,
			&sess.StartedAt, &sess.EndedAt, &completed)
		if err != nil {
			return nil, err
		}

		sess.Completed = completed == 1
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}
