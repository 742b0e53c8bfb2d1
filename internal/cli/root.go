package cli

import (
	"fmt"
	"strings"

	"github.com/jmserra/tempo/internal/habit"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/pomo"
	"github.com/jmserra/tempo/internal/recur"
	"github.com/jmserra/tempo/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Engine *recur.Engine
	Habits *habit.Service
	Pomos  *pomo.Service
}

// FindTask resolves a task by ID or unique ID prefix.
func (c *Context) FindTask(ref string) (models.Task, error) {
	var match models.Task
	found := 0
	for _, t := range c.Engine.Tasks() {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			match = t
			found++
		}
	}
	switch found {
	case 0:
		return models.Task{}, fmt.Errorf("no task matching %q", ref)
	case 1:
		return match, nil
	default:
		return models.Task{}, fmt.Errorf("%q matches %d tasks, use a longer prefix", ref, found)
	}
}

// FindTemplate resolves a recurring template by ID prefix or exact title.
func (c *Context) FindTemplate(ref string) (models.RecurringTask, error) {
	templates := c.Engine.Templates()
	for _, rt := range templates {
		if rt.ID == ref || rt.Title == ref {
			return rt, nil
		}
	}

	var match models.RecurringTask
	found := 0
	for _, rt := range templates {
		if strings.HasPrefix(rt.ID, ref) {
			match = rt
			found++
		}
	}
	switch found {
	case 0:
		return models.RecurringTask{}, fmt.Errorf("no recurring task matching %q", ref)
	case 1:
		return match, nil
	default:
		return models.RecurringTask{}, fmt.Errorf("%q matches %d recurring tasks, use a longer prefix", ref, found)
	}
}

// FormatRule renders a recurrence rule as a human-readable phrase.
func FormatRule(rule models.RecurrenceRule) string {
	var b strings.Builder

	if rule.TimesPerPeriod == 1 && rule.PeriodUnit == models.PeriodDay {
		b.WriteString("daily")
	} else if rule.TimesPerPeriod == 1 {
		fmt.Fprintf(&b, "once per %s", rule.PeriodUnit)
	} else {
		fmt.Fprintf(&b, "%dx per %s", rule.TimesPerPeriod, rule.PeriodUnit)
	}

	switch rule.EndType {
	case models.EndOnDate:
		fmt.Fprintf(&b, " until %s", rule.EndDate)
	case models.EndAfterCount:
		fmt.Fprintf(&b, " for %d occurrences", rule.MaxOccurrences)
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
