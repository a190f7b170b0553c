package auth

// Role del usuario autenticado según el servicio de identidad.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// IsAdmin: las rutas de administración exigen rol admin explícito.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
