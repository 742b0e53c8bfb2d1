package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/recur"
)

type RecurAddCmd struct {
	Title          string   `arg:"" help:"Title of the recurring task."`
	Description    string   `short:"d" help:"Optional description."`
	Tags           []string `short:"t" help:"Tags (up to 5)."`
	Times          int      `short:"n" help:"Times per period." default:"1"`
	Period         string   `short:"p" help:"Period unit (day|week|month)." default:"day" enum:"day,week,month"`
	Start          string   `short:"s" help:"Start date (YYYY-MM-DD, default today)."`
	Until          string   `help:"Stop generating after this date (YYYY-MM-DD)."`
	MaxOccurrences int      `help:"Stop after this many occurrences."`
}

func (c *RecurAddCmd) Validate() error {
	if c.Until != "" && c.MaxOccurrences > 0 {
		return fmt.Errorf("--until and --max-occurrences are mutually exclusive")
	}
	if c.Start != "" {
		if _, err := time.Parse(constants.DateFormat, c.Start); err != nil {
			return fmt.Errorf("invalid start date (expected YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

func (c *RecurAddCmd) Run(ctx *Context) error {
	rule := models.RecurrenceRule{
		TimesPerPeriod: c.Times,
		PeriodUnit:     models.PeriodUnit(c.Period),
		StartDate:      c.Start,
	}
	switch {
	case c.Until != "":
		rule.EndType = models.EndOnDate
		rule.EndDate = c.Until
	case c.MaxOccurrences > 0:
		rule.EndType = models.EndAfterCount
		rule.MaxOccurrences = c.MaxOccurrences
	}

	rt, err := ctx.Engine.CreateTemplate(recur.TemplateDefinition{
		Title:       c.Title,
		Description: c.Description,
		Tags:        c.Tags,
		Rule:        rule,
	})
	if err != nil {
		return err
	}
	ctx.Engine.Flush()

	fmt.Printf("Added recurring task %s (%s, %s)\n", rt.Title, shortID(rt.ID), FormatRule(rt.Rule))
	return nil
}

type RecurListCmd struct {
	All bool `help:"Include paused templates."`
}

func (c *RecurListCmd) Run(ctx *Context) error {
	templates := ctx.Engine.Templates()
	if len(templates) == 0 {
		fmt.Println("No recurring tasks")
		return nil
	}

	for _, rt := range templates {
		if !c.All && !rt.Active {
			continue
		}

		status := "active"
		if !rt.Active {
			status = "paused"
		}

		streak := ""
		if rt.Stats.CurrentStreak > 0 {
			streak = streakStyle.Render(fmt.Sprintf("  🔥 %d", rt.Stats.CurrentStreak))
		}

		fmt.Printf("  [%s] %s (%s) - %s%s\n",
			status, rt.Title, shortID(rt.ID), FormatRule(rt.Rule), streak)
	}
	return nil
}

type RecurPauseCmd struct {
	Ref string `arg:"" help:"Template ID, ID prefix, or title."`
}

func (c *RecurPauseCmd) Run(ctx *Context) error {
	rt, err := ctx.FindTemplate(c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Engine.Pause(rt.ID); err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Paused %s\n", rt.Title)
	return nil
}

type RecurResumeCmd struct {
	Ref string `arg:"" help:"Template ID, ID prefix, or title."`
}

func (c *RecurResumeCmd) Run(ctx *Context) error {
	rt, err := ctx.FindTemplate(c.Ref)
	if err != nil {
		return err
	}
	if err := ctx.Engine.Resume(rt.ID); err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Resumed %s\n", rt.Title)
	return nil
}

type RecurDeleteCmd struct {
	Ref   string `arg:"" help:"Template ID, ID prefix, or title."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *RecurDeleteCmd) Run(ctx *Context) error {
	rt, err := ctx.FindTemplate(c.Ref)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete %q and all of its occurrences and history? [y/N] ", rt.Title)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := ctx.Engine.DeleteTemplate(rt.ID); err != nil {
		return err
	}
	ctx.Engine.Flush()
	fmt.Printf("Deleted %s\n", rt.Title)
	return nil
}

type RecurStatsCmd struct {
	Ref string `arg:"" help:"Template ID, ID prefix, or title."`
}

func (c *RecurStatsCmd) Run(ctx *Context) error {
	rt, err := ctx.FindTemplate(c.Ref)
	if err != nil {
		return err
	}
	view, err := ctx.Engine.StatsFor(rt.ID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(rt.Title))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(FormatRule(rt.Rule)))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n",
		labelStyle.Render("completed"), view.TotalCompleted,
		labelStyle.Render("missed"), view.TotalMissed,
		labelStyle.Render("skipped"), view.TotalSkipped)
	fmt.Fprintf(&b, "%s %d (best %d)   %s %d%%\n",
		labelStyle.Render("streak"), view.CurrentStreak, view.BestStreak,
		labelStyle.Render("rate"), view.CompletionRate)

	if view.LastCompleted != "" {
		if t, err := time.Parse(time.RFC3339, view.LastCompleted); err == nil {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("last done"), t.Format(constants.DateFormat))
		}
	}

	if len(view.History) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("recent"))
		b.WriteString("  ")
		b.WriteString(historyDots(view.History))
		b.WriteString("\n")
	}

	fmt.Println(cardStyle.Render(strings.TrimRight(b.String(), "\n")))
	return nil
}

// historyDots renders the trailing history entries as one glyph each, oldest
// first.
func historyDots(entries []models.HistoryEntry) string {
	var b strings.Builder
	for _, h := range entries {
		switch h.Status {
		case models.HistoryCompleted:
			b.WriteString(doneStyle.Render("●"))
		case models.HistoryMissed:
			b.WriteString(missedStyle.Render("●"))
		case models.HistorySkipped:
			b.WriteString(skippedStyle.Render("○"))
		case models.HistoryDeleted:
			b.WriteString(skippedStyle.Render("·"))
		}
	}
	return b.String()
}
