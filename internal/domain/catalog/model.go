package catalog

import "time"

// Product vendible: leche, ghee, paneer, etc. El borrado es lógico
// (IsActive=false) para no romper reservas históricas.
type Product struct {
	ID              string
	Name            string
	Category        string
	Unit            string // "litre", "kg", "piece"
	Price           float64
	Stock           float64
	IsSpecial       bool
	AdvanceBookable bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentStatus de una reserva especial.
// @Enum pending, deposit_paid, paid
type PaymentStatus string

const (
	PaymentPending     PaymentStatus = "pending"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentPaid        PaymentStatus = "paid"
)

// DeliveryStatus de una reserva especial.
// @Enum pending, confirmed, delivered, cancelled
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryConfirmed DeliveryStatus = "confirmed"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// SpecialReservation: pedido anticipado de un producto bookable
// (p. ej. ghee por encargo) con seña opcional.
type SpecialReservation struct {
	ID             string
	CustomerID     string
	ProductID      string
	Quantity       float64
	Deposit        float64
	Total          float64
	PaymentMethod  string
	PaymentStatus  PaymentStatus
	DeliveryStatus DeliveryStatus
	Notes          string
	CreatedAt      time.Time
}

func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentDepositPaid, PaymentPaid:
		return true
	}
	return false
}

func ValidDeliveryStatus(s DeliveryStatus) bool {
	switch s {
	case DeliveryPending, DeliveryConfirmed, DeliveryDelivered, DeliveryCancelled:
		return true
	}
	return false
}
