package animals

import (
	"time"

	"dairy-admin/internal/platform/dates"
)

// Animal representa una vaca o búfala registrada en el hato.
// Los logs de eventos (inseminación, parto, desparasitación, enfermedad)
// viven en el módulo lifecycle; acá quedan solo los campos derivados que
// el panel muestra sin recorrer historial.
type Animal struct {
	ID   string
	Name string

	Species Species
	Status  Status

	BirthDate *dates.Date
	EntryDate *dates.Date
	Source    string

	HealthNotes string

	PregnancyStatus      bool
	LastInseminationDate *dates.Date
	ExpectedCalvingDate  *dates.Date
	DryStartDate         *dates.Date

	CurrentDailyMilk float64
	TotalMilk        float64
	TotalCalvings    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Counts resume el hato para el panel de overview.
type Counts struct {
	Total    int
	Cows     int
	Buffalo  int
	Active   int
	Pregnant int
	Dry      int
	Sick     int
}
