package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
)

// Error is a rejected-input error raised at a create/update boundary.
// Nothing is mutated when one is returned.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func errf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ValidateTitle checks a task or template title.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errf("title", "must not be empty")
	}
	return nil
}

// ValidateTags enforces the tag count limit.
func ValidateTags(tags []string) error {
	if len(tags) > constants.MaxTags {
		return errf("tags", "at most %d tags allowed, got %d", constants.MaxTags, len(tags))
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return errf("tags", "tag must not be empty")
		}
	}
	return nil
}

// ValidateRule checks a recurrence rule before a template is created.
func ValidateRule(rule models.RecurrenceRule) error {
	if rule.IntervalAmount < 1 {
		return errf("interval", "amount must be at least 1, got %d", rule.IntervalAmount)
	}

	switch rule.IntervalUnit {
	case models.IntervalDay, models.IntervalWeek, models.IntervalMonth, models.IntervalYear:
	default:
		return errf("interval", "unknown unit %q", rule.IntervalUnit)
	}

	if rule.TimesPerPeriod < 1 {
		return errf("times-per-period", "must be at least 1, got %d", rule.TimesPerPeriod)
	}

	switch rule.PeriodUnit {
	case models.PeriodDay, models.PeriodWeek, models.PeriodMonth:
	default:
		return errf("period", "unknown unit %q", rule.PeriodUnit)
	}

	if rule.StartDate != "" {
		if _, err := time.Parse(constants.DateFormat, rule.StartDate); err != nil {
			return errf("start-date", "expected YYYY-MM-DD, got %q", rule.StartDate)
		}
	}

	switch rule.EndType {
	case models.EndNever:
	case models.EndOnDate:
		if rule.EndDate == "" {
			return errf("end-date", "required when the rule ends on a date")
		}
		if _, err := time.Parse(constants.DateFormat, rule.EndDate); err != nil {
			return errf("end-date", "expected YYYY-MM-DD, got %q", rule.EndDate)
		}
	case models.EndAfterCount:
		if rule.MaxOccurrences < 1 {
			return errf("occurrences", "must be at least 1, got %d", rule.MaxOccurrences)
		}
	default:
		return errf("end", "unknown end type %q", rule.EndType)
	}

	return nil
}
