package customers

import "time"

// Customer es dato de referencia: los formularios de pagos y reservas
// lo usan para poblar selects; no hay ciclo de vida más allá de activo/inactivo.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Area      string
	IsActive  bool
	CreatedAt time.Time
}
