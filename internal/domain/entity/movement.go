package entity

import "time"

// MovementKind distingue asignaciones de mermas.
type MovementKind string

const (
	MovementAssignment MovementKind = "assignment"
	MovementScrap      MovementKind = "scrap"
)

// Valid indica si el tipo de movimiento es conocido.
func (k MovementKind) Valid() bool {
	return k == MovementAssignment || k == MovementScrap
}

// Label devuelve el nombre que se usa en informes.
func (k MovementKind) Label() string {
	switch k {
	case MovementAssignment:
		return "Asignación"
	case MovementScrap:
		return "Merma"
	}
	return string(k)
}

// ScrapReasonOther es el motivo genérico de merma que exige detalle.
const ScrapReasonOther = "Otro"

// Movement es una asignación (stock entregado a un trabajador) o una merma (stock dado de baja).
// EntryLabel, EntryType y EntryDesc son una foto de la entrada al momento de registrar.
type Movement struct {
	ID            string
	Kind          MovementKind
	DateISO       string
	EntryID       string
	EntryLabel    string
	EntryType     string
	EntryDesc     string
	Quantity      int
	Reason        string
	Worker        string // solo asignaciones
	Detail        string // solo mermas con motivo "Otro"
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
}

// MovementFilter filtros de listados e informes. Las fechas son ISO inclusivas.
type MovementFilter struct {
	FromISO string
	ToISO   string
	Limit   int
}
