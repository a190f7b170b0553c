package reminders

import "dairy-admin/internal/platform/dates"

// Type del recordatorio.
// @Enum calving, deworming
type Type string

const (
	TypeCalving   Type = "calving"
	TypeDeworming Type = "deworming"
)

// Severity para el panel: urgent hoy, warning a 2 días, info hasta la ventana.
type Severity string

const (
	SeverityUrgent  Severity = "urgent"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Reminder struct {
	Type       Type
	AnimalID   string
	AnimalName string
	Due        dates.Date
	Days       int
	Severity   Severity
	Message    string
}

// Candidate es lo mínimo que el cálculo necesita saber de un animal:
// su fecha estimada de parto y el próximo vencimiento de desparasitación
// (el next_due del registro más reciente).
type Candidate struct {
	AnimalID   string
	AnimalName string

	ExpectedCalving *dates.Date
	DewormingDue    *dates.Date
}
