// Package ticker drives the recurring engine's periodic pass while the
// watch command is running.
package ticker

import (
	"github.com/robfig/cron/v3"

	"github.com/jmserra/tempo/internal/logger"
	"github.com/jmserra/tempo/internal/recur"
)

// Ticker runs the engine's generation pass once a minute, so occurrences
// appear shortly after midnight without the process restarting.
type Ticker struct {
	engine *recur.Engine
	cron   *cron.Cron
}

func New(engine *recur.Engine) *Ticker {
	return &Ticker{
		engine: engine,
		cron:   cron.New(),
	}
}

// Start runs one pass immediately, then schedules the minutely tick. The
// cron scheduler runs jobs on its own goroutine; the engine serializes
// access internally.
func (t *Ticker) Start() error {
	t.engine.Process(t.engine.Now())

	if _, err := t.cron.AddFunc("* * * * *", func() {
		t.engine.Process(t.engine.Now())
	}); err != nil {
		return err
	}

	t.cron.Start()
	logger.Debug("Ticker started")
	return nil
}

// Stop halts the schedule, waits for an in-flight pass, and flushes any
// pending writes.
func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.engine.Flush()
	logger.Debug("Ticker stopped")
}
