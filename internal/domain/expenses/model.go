package expenses

import (
	"time"

	"dairy-admin/internal/platform/dates"
)

// Category del gasto. Enum cerrado; el ledger no acepta categorías libres.
// @Enum feed, medicine, vet, electricity, labour, insurance, transport, maintenance, misc
type Category string

const (
	CategoryFeed        Category = "feed"
	CategoryMedicine    Category = "medicine"
	CategoryVet         Category = "vet"
	CategoryElectricity Category = "electricity"
	CategoryLabour      Category = "labour"
	CategoryInsurance   Category = "insurance"
	CategoryTransport   Category = "transport"
	CategoryMaintenance Category = "maintenance"
	CategoryMisc        Category = "misc"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryFeed, CategoryMedicine, CategoryVet, CategoryElectricity,
		CategoryLabour, CategoryInsurance, CategoryTransport, CategoryMaintenance, CategoryMisc:
		return true
	}
	return false
}

// Expense es una línea del ledger de costos. AnimalID es opcional: los gastos
// generales (luz, transporte) no referencian animal.
type Expense struct {
	ID          string
	Date        dates.Date
	Category    Category
	Amount      float64
	Description string
	AnimalID    string
	CreatedAt   time.Time
}
