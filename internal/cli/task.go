package cli

import (
	"errors"
	"fmt"

	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/recur"
)

type TaskListCmd struct {
	All     bool `help:"Include completed tasks."`
	ShowIDs bool `help:"Show full task IDs." name:"show-ids"`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	ctx.Engine.Process(ctx.Engine.Now())
	ctx.Engine.Flush()

	tasks := ctx.Engine.Tasks()
	if len(tasks) == 0 {
		fmt.Println("No tasks")
		return nil
	}

	shown := 0
	for _, t := range tasks {
		if !c.All && t.State == models.TaskDone {
			continue
		}
		shown++

		marker := " "
		switch t.State {
		case models.TaskDoing:
			marker = ">"
		case models.TaskDone:
			marker = "x"
		}

		id := shortID(t.ID)
		if c.ShowIDs {
			id = t.ID
		}

		suffix := ""
		if t.IsOccurrence() {
			suffix = labelStyle.Render(fmt.Sprintf("  ↻ %d/%d", t.OccurrenceNumber, t.TotalForPeriod))
		} else if t.DueDate != "" {
			suffix = labelStyle.Render("  due " + t.DueDate)
		}

		fmt.Printf("  [%s] %s (%s)%s\n", marker, t.Title, id, suffix)
	}

	if shown == 0 {
		fmt.Println("No open tasks")
	}
	return nil
}

type TaskAddCmd struct {
	Title       string   `arg:"" help:"Task title."`
	Description string   `short:"d" help:"Optional description."`
	Tags        []string `short:"t" help:"Tags (up to 5)."`
	Due         string   `help:"Due date (YYYY-MM-DD)."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	task, err := ctx.Engine.AddTask(recur.TaskDefinition{
		Title:       c.Title,
		Description: c.Description,
		Tags:        c.Tags,
		DueDate:     c.Due,
	})
	if err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Added %s (%s)\n", task.Title, shortID(task.ID))
	return nil
}

type TaskDoneCmd struct {
	Ref string `arg:"" help:"Task ID or ID prefix."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	task, err := ctx.FindTask(c.Ref)
	if err != nil {
		return err
	}

	if task.IsOccurrence() {
		err = ctx.Engine.Complete(task.ID)
	} else {
		err = ctx.Engine.SetTaskState(task.ID, models.TaskDone)
	}
	if err != nil {
		return err
	}
	ctx.Engine.Flush()

	fmt.Printf("Done: %s\n", task.Title)
	if task.IsOccurrence() {
		if rt, err := ctx.FindTemplate(task.RecurringTaskID); err == nil && rt.Stats.CurrentStreak > 1 {
			fmt.Println(streakStyle.Render(fmt.Sprintf("🔥 %d day streak", rt.Stats.CurrentStreak)))
		}
	}
	return nil
}

type TaskStartCmd struct {
	Ref string `arg:"" help:"Task ID or ID prefix."`
}

func (c *TaskStartCmd) Run(ctx *Context) error {
	return setState(ctx, c.Ref, models.TaskDoing, "Started")
}

type TaskStopCmd struct {
	Ref string `arg:"" help:"Task ID or ID prefix."`
}

func (c *TaskStopCmd) Run(ctx *Context) error {
	return setState(ctx, c.Ref, models.TaskTodo, "Stopped")
}

func setState(ctx *Context, ref string, state models.TaskState, verb string) error {
	task, err := ctx.FindTask(ref)
	if err != nil {
		return err
	}

	if task.IsOccurrence() {
		if state == models.TaskDoing {
			err = ctx.Engine.StartOccurrence(task.ID)
		} else {
			err = ctx.Engine.StopOccurrence(task.ID)
		}
	} else {
		err = ctx.Engine.SetTaskState(task.ID, state)
	}
	if err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("%s: %s\n", verb, task.Title)
	return nil
}

type TaskSkipCmd struct {
	Ref    string `arg:"" help:"Occurrence ID or ID prefix."`
	Reason string `short:"r" help:"Why this occurrence is being skipped."`
}

func (c *TaskSkipCmd) Run(ctx *Context) error {
	task, err := ctx.FindTask(c.Ref)
	if err != nil {
		return err
	}
	if !task.IsOccurrence() {
		return fmt.Errorf("%s is not a recurring occurrence; use 'tempo drop' instead", task.Title)
	}

	if err := ctx.Engine.Skip(task.ID, c.Reason); err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Skipped: %s\n", task.Title)
	return nil
}

type TaskDropCmd struct {
	Ref string `arg:"" help:"Task ID or ID prefix."`
}

func (c *TaskDropCmd) Run(ctx *Context) error {
	task, err := ctx.FindTask(c.Ref)
	if err != nil {
		return err
	}

	if task.IsOccurrence() {
		err = ctx.Engine.DeleteOccurrence(task.ID)
	} else {
		err = ctx.Engine.DeleteTask(task.ID)
	}
	if err != nil {
		if errors.Is(err, recur.ErrNotFound) {
			return fmt.Errorf("task %q no longer exists", c.Ref)
		}
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Dropped: %s\n", task.Title)
	return nil
}
