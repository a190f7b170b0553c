package reviews

import "time"

// Status de moderación.
// pending -> approved | rejected; solo una aprobada puede destacarse o borrarse.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Review struct {
	ID           string
	CustomerName string
	Rating       int // 1..5
	Text         string
	Location     string

	Status     Status
	IsFeatured bool

	CreatedAt   time.Time
	ModeratedAt *time.Time
}

// IsApproved se expone como campo plano en la API (así lo consume el sitio).
func (r Review) IsApproved() bool {
	return r.Status == StatusApproved
}
