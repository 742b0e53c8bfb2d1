package cli

import (
	"fmt"
	"strings"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Track a new habit."`
	Mark    HabitMarkCmd    `cmd:"" help:"Mark a habit done for a day."`
	List    HabitListCmd    `cmd:"" help:"List habits with their streaks." default:"1"`
	Log     HabitLogCmd     `cmd:"" help:"Show a habit's entry log."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit, keeping its log."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and its log."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	h, err := ctx.Habits.Add(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Tracking habit %s\n", h.Name)
	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Day  string `short:"d" help:"Day to mark (YYYY-MM-DD, default today)."`
	Note string `short:"n" help:"Optional note."`
	Undo bool   `help:"Unmark the day instead."`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	if c.Undo {
		if err := ctx.Habits.Unmark(c.Name, c.Day); err != nil {
			return err
		}
		fmt.Printf("Unmarked %s\n", c.Name)
		return nil
	}

	if err := ctx.Habits.Mark(c.Name, c.Day, c.Note); err != nil {
		return err
	}
	fmt.Printf("Marked %s\n", c.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	summaries, err := ctx.Habits.List()
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No habits tracked")
		return nil
	}

	for _, s := range summaries {
		marker := " "
		if s.MarkedToday {
			marker = doneStyle.Render("✓")
		}
		streak := ""
		if s.CurrentStreak > 0 {
			streak = streakStyle.Render(fmt.Sprintf("  🔥 %d", s.CurrentStreak))
		}
		fmt.Printf("  [%s] %s%s %s\n", marker, s.Habit.Name, streak,
			labelStyle.Render(fmt.Sprintf("(best %d)", s.LongestStreak)))
	}
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name."`
	Undo bool   `help:"Unarchive instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if c.Undo {
		if err := ctx.Habits.Unarchive(c.Name); err != nil {
			return err
		}
		fmt.Printf("Unarchived %s\n", c.Name)
		return nil
	}

	if err := ctx.Habits.Archive(c.Name); err != nil {
		return err
	}
	fmt.Printf("Archived %s\n", c.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if !c.Force {
		fmt.Printf("Delete %q and its entire log? [y/N] ", c.Name)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := ctx.Habits.Delete(c.Name); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.Name)
	return nil
}

type HabitLogCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Since string `help:"Earliest day to show (YYYY-MM-DD)."`
	Until string `help:"Latest day to show (YYYY-MM-DD)."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	entries, err := ctx.Habits.Log(c.Name, c.Since, c.Until)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No entries")
		return nil
	}

	for _, e := range entries {
		if e.Note != "" {
			fmt.Printf("  %s  %s\n", e.Day, labelStyle.Render(e.Note))
		} else {
			fmt.Printf("  %s\n", e.Day)
		}
	}
	return nil
}
