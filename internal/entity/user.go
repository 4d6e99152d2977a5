package entity

import "time"

// Role is a closed set; there is no inheritance between roles, each one's
// action set is enumerated independently in the permission table.
type Role string

const (
	RoleAdministrador Role = "Administrador"
	RoleGerente       Role = "Gerente"
	RoleVendedor      Role = "Vendedor"
	RoleEstoquista    Role = "Estoquista"
)

// Action tags gate screens/operations. ActionAll is the wildcard.
type Action string

const (
	ActionAll       Action = "*"
	ActionSales     Action = "sales"
	ActionProducts  Action = "products"
	ActionCustomers Action = "customers"
	ActionDelivery  Action = "delivery"
	ActionReports   Action = "reports"
	ActionStock     Action = "stock"
)

type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"passwordHash,omitempty"` // bcrypt; stripped from exports
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
}

// Sanitized returns a copy safe to hand to callers outside the auth service.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
