package milk

import (
	"time"

	"dairy-admin/internal/platform/dates"
)

// Record es la producción de un día: turnos mañana y tarde con litros,
// grasa y sólidos no grasos. Los totales y la facturación son derivados
// del lado del servidor, nunca vienen del formulario.
type Record struct {
	ID       string
	Date     dates.Date
	AnimalID string // opcional: registro del tanque general si está vacío

	MorningLiters float64
	MorningFat    float64
	MorningSNF    float64

	EveningLiters float64
	EveningFat    float64
	EveningSNF    float64

	Rate  float64 // precio por litro del día
	Notes string

	CreatedAt time.Time
}

// TotalLiters suma ambos turnos.
func (r Record) TotalLiters() float64 {
	return r.MorningLiters + r.EveningLiters
}

// AvgFat pondera la grasa por litros de cada turno.
func (r Record) AvgFat() float64 {
	return weightedAvg(r.MorningLiters, r.MorningFat, r.EveningLiters, r.EveningFat)
}

// AvgSNF pondera los sólidos no grasos por litros de cada turno.
func (r Record) AvgSNF() float64 {
	return weightedAvg(r.MorningLiters, r.MorningSNF, r.EveningLiters, r.EveningSNF)
}

// Revenue = litros totales * tarifa.
func (r Record) Revenue() float64 {
	return r.TotalLiters() * r.Rate
}

func weightedAvg(l1, v1, l2, v2 float64) float64 {
	total := l1 + l2
	if total == 0 {
		return 0
	}
	return (l1*v1 + l2*v2) / total
}

// Summary agrega un período del ledger.
type Summary struct {
	Records     int
	TotalLiters float64
	Revenue     float64
	AvgFat      float64
	AvgSNF      float64
}
