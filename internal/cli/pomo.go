package cli

import (
	"fmt"

	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/pomo"
)

type PomoCmd struct {
	Log   PomoLogCmd   `cmd:"" help:"Record a finished pomodoro session."`
	Stats PomoStatsCmd `cmd:"" help:"Show focus stats per day." default:"1"`
}

type PomoLogCmd struct {
	Duration  int    `arg:"" help:"Session length in minutes."`
	Mode      string `short:"m" help:"Session mode." default:"work" enum:"work,short_break,long_break"`
	Task      string `short:"t" help:"Task ID or prefix this session was spent on."`
	Abandoned bool   `help:"Record the session as abandoned rather than completed."`
}

func (c *PomoLogCmd) Run(ctx *Context) error {
	taskID := ""
	if c.Task != "" {
		task, err := ctx.FindTask(c.Task)
		if err != nil {
			return err
		}
		taskID = task.ID
	}

	sess, err := ctx.Pomos.Log(pomo.SessionInput{
		Mode:        models.PomodoroMode(c.Mode),
		DurationMin: c.Duration,
		TaskID:      taskID,
		Completed:   !c.Abandoned,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %dm %s session\n", sess.DurationMin, sess.Mode)
	return nil
}

type PomoStatsCmd struct {
	Days int `short:"n" help:"Number of days to show." default:"7"`
}

func (c *PomoStatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Pomos.Stats(c.Days)
	if err != nil {
		return err
	}

	for _, day := range stats {
		bar := ""
		for i := 0; i < day.SessionsDone; i++ {
			bar += doneStyle.Render("●")
		}
		for i := day.SessionsDone; i < day.SessionsTotal; i++ {
			bar += skippedStyle.Render("○")
		}
		fmt.Printf("  %s  %3dm  %s\n", day.Day, day.FocusMinutes, bar)
	}
	return nil
}
