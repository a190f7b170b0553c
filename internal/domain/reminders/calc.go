package reminders

import (
	"fmt"
	"sort"

	"dairy-admin/internal/platform/dates"
)

// DefaultWindowDays: vencimientos a más de una semana no son recordatorio.
const DefaultWindowDays = 7

// Compute es función pura sobre los candidatos: emite un recordatorio por
// vencimiento dentro de [0, windowDays] días y ordena ascendente por días
// restantes. El orden es ESTABLE: a igualdad de días gana el orden de
// descubrimiento (el orden de iteración de cands).
func Compute(cands []Candidate, today dates.Date, windowDays int) []Reminder {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	out := make([]Reminder, 0)

	for _, c := range cands {
		if c.ExpectedCalving != nil {
			if days := dates.DaysUntil(today, *c.ExpectedCalving); days >= 0 && days <= windowDays {
				out = append(out, newReminder(TypeCalving, c, *c.ExpectedCalving, days))
			}
		}
		if c.DewormingDue != nil {
			if days := dates.DaysUntil(today, *c.DewormingDue); days >= 0 && days <= windowDays {
				out = append(out, newReminder(TypeDeworming, c, *c.DewormingDue, days))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Days < out[j].Days
	})

	return out
}

func newReminder(t Type, c Candidate, due dates.Date, days int) Reminder {
	return Reminder{
		Type:       t,
		AnimalID:   c.AnimalID,
		AnimalName: c.AnimalName,
		Due:        due,
		Days:       days,
		Severity:   severityFor(days),
		Message:    messageFor(t, c.AnimalName, days),
	}
}

func severityFor(days int) Severity {
	switch {
	case days == 0:
		return SeverityUrgent
	case days <= 2:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

func messageFor(t Type, name string, days int) string {
	what := "calving"
	if t == TypeDeworming {
		what = "deworming"
	}
	if days == 0 {
		return fmt.Sprintf("%s: %s due today", name, what)
	}
	if days == 1 {
		return fmt.Sprintf("%s: %s due tomorrow", name, what)
	}
	return fmt.Sprintf("%s: %s due in %d days", name, what, days)
}
