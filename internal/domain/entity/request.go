package entity

import "time"

// Estados de una solicitud.
const (
	RequestPending  = "Pendiente"
	RequestAnswered = "Respondida"

	PriorityLow    = "Baja"
	PriorityNormal = "Normal"
	PriorityHigh   = "Alta"
)

// Request es una solicitud interna que cualquier usuario levanta y un operador responde.
type Request struct {
	ID              string
	Type            string
	Text            string
	Priority        string
	Status          string
	Response        string
	CreatedBy       string
	CreatedByName   string
	CreatedAt       time.Time
	RespondedBy     string
	RespondedByName string
	RespondedAt     *time.Time
}

// Pending indica si la solicitud aún no tiene respuesta.
func (r *Request) Pending() bool {
	return r.Status == "" || r.Status == RequestPending
}
