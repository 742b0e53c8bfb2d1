package period

import (
	"fmt"
	"time"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
)

// Period identifies one concrete bucket of time (a day, a week, a month)
// that occurrences and history entries are grouped under. The anchor is the
// first day of the bucket; the canonical string key exists only at the
// persistence boundary.
type Period struct {
	Unit   models.PeriodUnit
	Anchor time.Time
}

// Of returns the period of the given unit containing t. Weeks start on
// Sunday.
func Of(unit models.PeriodUnit, t time.Time) Period {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())

	switch unit {
	case models.PeriodWeek:
		day = day.AddDate(0, 0, -int(day.Weekday()))
	case models.PeriodMonth:
		day = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	}

	return Period{Unit: unit, Anchor: day}
}

// Key returns the canonical string identifying this period instance.
func (p Period) Key() string {
	switch p.Unit {
	case models.PeriodWeek:
		return "week_" + p.Anchor.Format(constants.DateFormat)
	case models.PeriodMonth:
		return fmt.Sprintf("month_%d_%d", p.Anchor.Year(), int(p.Anchor.Month()))
	default:
		return p.Anchor.Format(constants.DateFormat)
	}
}

// Prev returns the period immediately before this one.
func (p Period) Prev() Period {
	switch p.Unit {
	case models.PeriodWeek:
		return Period{Unit: p.Unit, Anchor: p.Anchor.AddDate(0, 0, -7)}
	case models.PeriodMonth:
		return Period{Unit: p.Unit, Anchor: p.Anchor.AddDate(0, -1, 0)}
	default:
		return Period{Unit: p.Unit, Anchor: p.Anchor.AddDate(0, 0, -1)}
	}
}

// End returns the last day of the period.
func (p Period) End() time.Time {
	switch p.Unit {
	case models.PeriodWeek:
		return p.Anchor.AddDate(0, 0, 6)
	case models.PeriodMonth:
		return p.Anchor.AddDate(0, 1, -1)
	default:
		return p.Anchor
	}
}
