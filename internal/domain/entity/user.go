package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleConsulta = "consulta" // solo lectura
)

// ValidRole indica si el rol pertenece a la enumeración cerrada.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleOperator, RoleConsulta:
		return true
	}
	return false
}

// User representa un empleado con acceso al sistema.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, operator, consulta
	Active       bool
	CreatedBy    string
	CreatedAt    time.Time
}

// Actor es la identidad de quien invoca una operación. Se arma desde el token JWT.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// CanWrite: admin y operator pueden registrar entradas, asignaciones y mermas.
func (a Actor) CanWrite() bool {
	return a.UserID != "" && (a.Role == RoleAdmin || a.Role == RoleOperator)
}

// IsAdmin indica si el actor administra empleados.
func (a Actor) IsAdmin() bool {
	return a.UserID != "" && a.Role == RoleAdmin
}

// DisplayName devuelve el nombre a guardar en createdByName.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return "Usuario"
}
