package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Libro de stock.
	ErrEntryNotFound      = errors.New("entrada de stock no encontrada")
	ErrMovementNotFound   = errors.New("movimiento no encontrado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrEntryHasDependents = errors.New("la entrada tiene asignaciones o mermas asociadas")
	ErrTransactionAborted = errors.New("no se pudo confirmar la transacción, intente nuevamente")

	// ErrTxConflict lo devuelve un TxRunner cuando el commit choca con otra transacción.
	// Es reintentable; fuera del ledger se convierte en ErrTransactionAborted.
	ErrTxConflict = errors.New("conflicto de concurrencia en la transacción")
)

// ValidationError indica qué campo de la entrada es inválido.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError lleva la cantidad disponible leída dentro de la transacción.
type InsufficientStockError struct {
	EntryID   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// DependentsError cuenta los movimientos que impiden borrar una entrada.
type DependentsError struct {
	EntryID     string
	Assignments int
	Scrap       int
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("la entrada tiene %d asignaciones y %d mermas asociadas", e.Assignments, e.Scrap)
}

func (e *DependentsError) Is(target error) bool { return target == ErrEntryHasDependents }
