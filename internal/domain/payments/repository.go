package payments

import "context"

type Repository interface {
	Create(ctx context.Context, p Payment) error
	Update(ctx context.Context, p Payment) error
	GetByID(ctx context.Context, id string) (Payment, error)
	ListByStatus(ctx context.Context, st Status) ([]Payment, error)
}

// BillRepository vive en este módulo porque la única operación que el core
// hace sobre facturas es marcarlas pagadas al aprobar un pago.
type BillRepository interface {
	GetByCustomerMonth(ctx context.Context, customerID, billMonth string) (Bill, error)
	Update(ctx context.Context, b Bill) error
}

// SettingsRepository persiste la única fila de configuración de cobro.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
	Put(ctx context.Context, s Settings) error
}
