package recur

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmserra/tempo/internal/constants"
	"github.com/jmserra/tempo/internal/models"
	"github.com/jmserra/tempo/internal/period"
	"github.com/jmserra/tempo/internal/validation"
)

// TemplateDefinition is the user input for a new recurring template.
type TemplateDefinition struct {
	Title       string
	Description string
	Tags        []string
	Media       []string
	Rule        models.RecurrenceRule
}

// CreateTemplate validates the definition, registers a new template with
// zero stats, and immediately runs a generation pass so the first occurrence
// appears without waiting for the next tick.
func (e *Engine) CreateTemplate(def TemplateDefinition) (models.RecurringTask, error) {
	now := e.clock()

	rule := def.Rule
	if rule.IntervalAmount == 0 {
		rule.IntervalAmount = 1
	}
	if rule.IntervalUnit == "" {
		rule.IntervalUnit = models.IntervalDay
	}
	if rule.TimesPerPeriod == 0 {
		rule.TimesPerPeriod = constants.DefaultTimesPerPeriod
	}
	if rule.PeriodUnit == "" {
		rule.PeriodUnit = models.PeriodDay
	}
	if rule.StartDate == "" {
		rule.StartDate = now.Format(constants.DateFormat)
	}
	if rule.EndType == "" {
		rule.EndType = models.EndNever
	}

	if err := validation.ValidateTitle(def.Title); err != nil {
		return models.RecurringTask{}, err
	}
	if err := validation.ValidateTags(def.Tags); err != nil {
		return models.RecurringTask{}, err
	}
	if err := validation.ValidateRule(rule); err != nil {
		return models.RecurringTask{}, err
	}

	rt := models.RecurringTask{
		ID:          uuid.New().String(),
		Title:       def.Title,
		Description: def.Description,
		Tags:        def.Tags,
		Media:       def.Media,
		Rule:        rule,
		Active:      true,
		CreatedAt:   now.Format(time.RFC3339),
	}

	e.mu.Lock()
	e.templates = append(e.templates, rt)
	if e.history[rt.ID] == nil {
		e.history[rt.ID] = []models.HistoryEntry{}
	}
	e.dirtyTemplates = true
	e.dirtyHistory = true
	e.processLocked(now)
	e.scheduleSave()
	e.mu.Unlock()

	return rt, nil
}

// Process reconciles missed periods and then generates every occurrence
// currently due. It is idempotent: running it twice with no intervening
// mutation creates nothing new.
func (e *Engine) Process(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.processLocked(now)
	e.scheduleSave()
}

func (e *Engine) processLocked(now time.Time) {
	e.reconcileMissedLocked(now)

	today := now.Format(constants.DateFormat)
	for i := range e.templates {
		rt := &e.templates[i]
		if !shouldGenerateOccurrence(*rt, now) {
			continue
		}

		p := period.Of(rt.Rule.PeriodUnit, now)
		key := p.Key()
		active := e.activeOccurrences(rt.ID, key)
		pending := PendingSlots(*rt, e.history[rt.ID], key, active)
		handled := countHandled(e.history[rt.ID], key)

		for n := 0; n < pending; n++ {
			occ := models.Task{
				ID:               uuid.New().String(),
				Title:            rt.Title,
				Description:      rt.Description,
				Tags:             append([]string(nil), rt.Tags...),
				Media:            append([]string(nil), rt.Media...),
				State:            models.TaskTodo,
				DueDate:          today,
				CreatedAt:        e.clock().Format(time.RFC3339),
				RecurringTaskID:  rt.ID,
				PeriodKey:        key,
				OccurrenceNumber: handled + active + n + 1,
				TotalForPeriod:   rt.Rule.TimesPerPeriod,
			}
			e.tasks = append([]models.Task{occ}, e.tasks...)
			e.dirtyTasks = true
		}
	}
}

// PendingSlots reports how many occurrences must be created right now for
// the given period: the slots the rule demands, minus slots already handled
// in history, minus occurrences still active. Never negative.
func PendingSlots(rt models.RecurringTask, entries []models.HistoryEntry, periodKey string, activeOccurrences int) int {
	pending := rt.Rule.TimesPerPeriod - countHandled(entries, periodKey) - activeOccurrences
	if pending < 0 {
		return 0
	}
	return pending
}

// countHandled counts the period's slots resolved by completion, skip, or
// occurrence deletion. Missed entries do not count: they describe a past
// period, not a consumed slot of the current one.
func countHandled(entries []models.HistoryEntry, periodKey string) int {
	n := 0
	for _, h := range entries {
		if h.PeriodKey != periodKey {
			continue
		}
		switch h.Status {
		case models.HistoryCompleted, models.HistorySkipped, models.HistoryDeleted:
			n++
		}
	}
	return n
}

func countStatus(entries []models.HistoryEntry, periodKey string, status models.HistoryStatus) int {
	n := 0
	for _, h := range entries {
		if h.PeriodKey == periodKey && h.Status == status {
			n++
		}
	}
	return n
}

// activeOccurrences counts this template's not-yet-done occurrences for the
// period. Caller must hold e.mu.
func (e *Engine) activeOccurrences(templateID, periodKey string) int {
	n := 0
	for _, t := range e.tasks {
		if t.RecurringTaskID == templateID && t.PeriodKey == periodKey && t.State != models.TaskDone {
			n++
		}
	}
	return n
}

// shouldGenerateOccurrence applies the start date, end condition, and active
// flag gates. Date comparisons are on YYYY-MM-DD strings, which order
// lexicographically.
func shouldGenerateOccurrence(rt models.RecurringTask, now time.Time) bool {
	today := now.Format(constants.DateFormat)

	if today < rt.Rule.StartDate {
		return false
	}
	if rt.Rule.EndType == models.EndOnDate && rt.Rule.EndDate != "" && today > rt.Rule.EndDate {
		return false
	}
	if rt.Rule.EndType == models.EndAfterCount && rt.Stats.Handled() >= rt.Rule.MaxOccurrences {
		return false
	}
	return rt.Active
}

// reconcileMissedLocked closes out the previous period for every active
// template: each slot neither completed, skipped, nor deleted gets one
// Missed history entry, totalMissed grows accordingly, and the streak resets
// to zero. All period units are reconciled, not just daily ones.
func (e *Engine) reconcileMissedLocked(now time.Time) {
	for i := range e.templates {
		rt := &e.templates[i]
		if !rt.Active {
			continue
		}
		if rt.Rule.EndType == models.EndAfterCount && rt.Stats.Handled() >= rt.Rule.MaxOccurrences {
			continue
		}

		prev := period.Of(rt.Rule.PeriodUnit, now).Prev()
		prevEnd := prev.End().Format(constants.DateFormat)
		if prevEnd < rt.Rule.StartDate {
			continue
		}
		if rt.Rule.EndType == models.EndOnDate && rt.Rule.EndDate != "" &&
			prev.Anchor.Format(constants.DateFormat) > rt.Rule.EndDate {
			continue
		}

		key := prev.Key()
		entries := e.history[rt.ID]
		unhandled := rt.Rule.TimesPerPeriod - countHandled(entries, key)
		toRecord := unhandled - countStatus(entries, key, models.HistoryMissed)
		if toRecord <= 0 {
			continue
		}

		stamp := e.clock().Format(time.RFC3339)
		for n := 0; n < toRecord; n++ {
			e.history[rt.ID] = append(e.history[rt.ID], models.HistoryEntry{
				Date:      prevEnd,
				PeriodKey: key,
				Status:    models.HistoryMissed,
				Timestamp: stamp,
			})
		}
		rt.Stats.TotalMissed += toRecord
		rt.Stats.CurrentStreak = 0
		e.dirtyHistory = true
		e.dirtyTemplates = true
	}
}
