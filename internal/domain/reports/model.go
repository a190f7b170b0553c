package reports

import (
	"dairy-admin/internal/platform/dates"
)

// Kind identifica cada reporte. Cada kind tiene su payload tipado y declara
// su propio set de columnas; el front solo renderiza la tabla que recibe.
type Kind string

const (
	KindFarmSummary     Kind = "farm-summary"
	KindAllInsemination Kind = "all-insemination"
	KindAllCalving      Kind = "all-calving"
	KindHealthSummary   Kind = "health-summary"
	KindExpenseSummary  Kind = "expense-summary"
	KindPregnantCows    Kind = "pregnant-cows"
	KindMilkProduction  Kind = "milk-production"
	KindCattleList      Kind = "cattle-list"
)

func ValidKind(k Kind) bool {
	switch k {
	case KindFarmSummary, KindAllInsemination, KindAllCalving, KindHealthSummary,
		KindExpenseSummary, KindPregnantCows, KindMilkProduction, KindCattleList:
		return true
	}
	return false
}

// Column describe una columna de la tabla: clave del campo + rótulo.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Report es lo que cada kind produce; el handler lo envuelve junto con
// kind y columnas en la respuesta.
type Report interface {
	ReportKind() Kind
	ColumnSet() []Column
}

// FarmSummaryReport: totales del hato y tasas derivadas.
// Denominador cero produce tasa 0, no error.
type FarmSummaryReport struct {
	Cows               int     `json:"cows"`
	Buffalo            int     `json:"buffalo"`
	TotalAnimals       int     `json:"total_animals"`
	TotalInseminations int     `json:"total_inseminations"`
	TotalCalvings      int     `json:"total_calvings"`
	TotalDewormings    int     `json:"total_dewormings"`
	Pregnant           int     `json:"pregnant"`
	Sick               int     `json:"sick"`
	PregnancyRate      float64 `json:"pregnancy_rate"` // porcentaje
	AvgInseminations   float64 `json:"avg_inseminations_per_animal"`
	AvgCalvings        float64 `json:"avg_calvings_per_animal"`
}

func (FarmSummaryReport) ReportKind() Kind { return KindFarmSummary }
func (FarmSummaryReport) ColumnSet() []Column {
	return []Column{
		{Key: "cows", Label: "Cows"},
		{Key: "buffalo", Label: "Buffalo"},
		{Key: "total_animals", Label: "Total animals"},
		{Key: "total_inseminations", Label: "Inseminations"},
		{Key: "total_calvings", Label: "Calvings"},
		{Key: "total_dewormings", Label: "Dewormings"},
		{Key: "pregnant", Label: "Pregnant"},
		{Key: "sick", Label: "Sick"},
		{Key: "pregnancy_rate", Label: "Pregnancy rate %"},
		{Key: "avg_inseminations_per_animal", Label: "Avg inseminations"},
		{Key: "avg_calvings_per_animal", Label: "Avg calvings"},
	}
}

type InseminationRow struct {
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Date       dates.Date `json:"date"`
	SemenType  string     `json:"semen_type"`
	Technician string     `json:"technician"`
	Cost       float64    `json:"cost"`
	Notes      string     `json:"notes"`
}

type InseminationReport struct {
	Rows []InseminationRow `json:"rows"`
}

func (InseminationReport) ReportKind() Kind { return KindAllInsemination }
func (InseminationReport) ColumnSet() []Column {
	return []Column{
		{Key: "animal_name", Label: "Animal"},
		{Key: "date", Label: "Date"},
		{Key: "semen_type", Label: "Semen"},
		{Key: "technician", Label: "Technician"},
		{Key: "cost", Label: "Cost"},
		{Key: "notes", Label: "Notes"},
	}
}

type CalvingRow struct {
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Date       dates.Date `json:"date"`
	CalfGender string     `json:"calf_gender"`
	CalfName   string     `json:"calf_name"`
	CalfStatus string     `json:"calf_status"`
	CalfWeight float64    `json:"calf_weight"`
	Notes      string     `json:"notes"`
}

type CalvingReport struct {
	Rows []CalvingRow `json:"rows"`
}

func (CalvingReport) ReportKind() Kind { return KindAllCalving }
func (CalvingReport) ColumnSet() []Column {
	return []Column{
		{Key: "animal_name", Label: "Animal"},
		{Key: "date", Label: "Date"},
		{Key: "calf_gender", Label: "Calf gender"},
		{Key: "calf_name", Label: "Calf name"},
		{Key: "calf_status", Label: "Calf status"},
		{Key: "calf_weight", Label: "Weight (kg)"},
		{Key: "notes", Label: "Notes"},
	}
}

// HealthRow aplana desparasitaciones y enfermedades en una sola tabla.
type HealthRow struct {
	AnimalID   string      `json:"animal_id"`
	AnimalName string      `json:"animal_name"`
	Event      string      `json:"event"` // "deworming" | "sickness"
	Date       dates.Date  `json:"date"`
	Detail     string      `json:"detail"`    // medicamento o condición
	Treatment  string      `json:"treatment"` // dosis o tratamiento
	Cost       float64     `json:"cost"`
	NextDue    *dates.Date `json:"next_due,omitempty"`
	Notes      string      `json:"notes"`
}

type HealthReport struct {
	Rows []HealthRow `json:"rows"`
}

func (HealthReport) ReportKind() Kind { return KindHealthSummary }
func (HealthReport) ColumnSet() []Column {
	return []Column{
		{Key: "animal_name", Label: "Animal"},
		{Key: "event", Label: "Event"},
		{Key: "date", Label: "Date"},
		{Key: "detail", Label: "Detail"},
		{Key: "treatment", Label: "Treatment"},
		{Key: "cost", Label: "Cost"},
		{Key: "next_due", Label: "Next due"},
		{Key: "notes", Label: "Notes"},
	}
}

// ExpenseRow junta costos de los logs sanitarios con los gastos del ledger
// que referencian un animal.
type ExpenseRow struct {
	Source     string     `json:"source"` // "deworming" | "sickness" | "ledger"
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Date       dates.Date `json:"date"`
	Category   string     `json:"category"`
	Detail     string     `json:"detail"`
	Amount     float64    `json:"amount"`
}

type ExpenseReport struct {
	Rows  []ExpenseRow `json:"rows"`
	Total float64      `json:"total"`
}

func (ExpenseReport) ReportKind() Kind { return KindExpenseSummary }
func (ExpenseReport) ColumnSet() []Column {
	return []Column{
		{Key: "animal_name", Label: "Animal"},
		{Key: "source", Label: "Source"},
		{Key: "date", Label: "Date"},
		{Key: "category", Label: "Category"},
		{Key: "detail", Label: "Detail"},
		{Key: "amount", Label: "Amount"},
	}
}

// AnimalRow sirve para los listados por animal (preñadas, producción, hato).
type AnimalRow struct {
	AnimalID         string      `json:"animal_id"`
	AnimalName       string      `json:"animal_name"`
	Species          string      `json:"species"`
	Status           string      `json:"status"`
	ExpectedCalving  *dates.Date `json:"expected_calving,omitempty"`
	CurrentDailyMilk float64     `json:"current_daily_milk"`
	TotalMilk        float64     `json:"total_milk"`
	TotalCalvings    int         `json:"total_calvings"`
}

type AnimalListReport struct {
	Kind Kind        `json:"-"`
	Rows []AnimalRow `json:"rows"`
}

func (r AnimalListReport) ReportKind() Kind { return r.Kind }
func (r AnimalListReport) ColumnSet() []Column {
	cols := []Column{
		{Key: "animal_name", Label: "Animal"},
		{Key: "species", Label: "Species"},
		{Key: "status", Label: "Status"},
	}
	switch r.Kind {
	case KindPregnantCows:
		cols = append(cols, Column{Key: "expected_calving", Label: "Expected calving"})
	case KindMilkProduction:
		cols = append(cols,
			Column{Key: "current_daily_milk", Label: "Daily milk (L)"},
			Column{Key: "total_milk", Label: "Total milk (L)"},
		)
	default:
		cols = append(cols,
			Column{Key: "current_daily_milk", Label: "Daily milk (L)"},
			Column{Key: "total_calvings", Label: "Calvings"},
		)
	}
	return cols
}
