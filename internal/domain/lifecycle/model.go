package lifecycle

import (
	"time"

	"dairy-admin/internal/platform/dates"
)

// Registros de ciclo de vida. Todos append-only: una vez creados no hay
// update ni delete; las correcciones se hacen con un registro nuevo.

type InseminationRecord struct {
	ID       string
	AnimalID string

	Date       dates.Date
	SemenType  string // tipo/lote de semen
	Technician string
	Cost       float64
	Notes      string

	CreatedAt time.Time
}

// CalfStatus del ternero al momento del parto.
// @Enum alive, dead, sold
type CalfStatus string

const (
	CalfAlive CalfStatus = "alive"
	CalfDead  CalfStatus = "dead"
	CalfSold  CalfStatus = "sold"
)

func ValidCalfStatus(s CalfStatus) bool {
	return s == CalfAlive || s == CalfDead || s == CalfSold
}

type CalvingRecord struct {
	ID       string
	AnimalID string

	Date       dates.Date
	CalfGender string
	CalfName   string
	CalfStatus CalfStatus
	CalfWeight float64 // kg
	Notes      string

	CreatedAt time.Time
}

type DewormingRecord struct {
	ID       string
	AnimalID string

	Date     dates.Date
	Medicine string
	Dosage   string
	Cost     float64
	NextDue  *dates.Date
	Notes    string

	CreatedAt time.Time
}

type SicknessRecord struct {
	ID       string
	AnimalID string

	Date      dates.Date
	Condition string
	Treatment string
	Cost      float64
	Notes     string

	CreatedAt time.Time
}

// History junta los cuatro logs de un animal para la vista de detalle.
type History struct {
	Inseminations []InseminationRecord
	Calvings      []CalvingRecord
	Dewormings    []DewormingRecord
	Sicknesses    []SicknessRecord
}
