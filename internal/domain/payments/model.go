package payments

import "time"

// Status del pago reportado por el cliente.
// pending -> approved | rejected, ambos terminales.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Payment es un pago reportado (captura de transferencia/UPI) pendiente de
// que el admin lo apruebe contra la factura del mes.
type Payment struct {
	ID         string
	CustomerID string

	Amount        float64
	BillMonth     string // "YYYY-MM"
	TransactionID string
	Screenshot    string // referencia opaca al archivo subido; el storage es externo

	Status          Status
	RejectionReason string

	CreatedAt time.Time
	DecidedAt *time.Time
}

// BillStatus de la factura mensual del cliente.
// @Enum unpaid, paid
type BillStatus string

const (
	BillUnpaid BillStatus = "unpaid"
	BillPaid   BillStatus = "paid"
)

type Bill struct {
	ID         string
	CustomerID string
	BillMonth  string
	Amount     float64
	Status     BillStatus
	PaidAt     *time.Time
}

// Settings es la configuración de cobro que ve el cliente (única fila).
type Settings struct {
	UPIID        string
	PayeeName    string
	Instructions string
	UpdatedAt    time.Time
}
