package dto

import "time"

// CreateRequestRequest alta de una solicitud interna.
type CreateRequestRequest struct {
	Type     string `json:"type" validate:"required,max=80"`
	Text     string `json:"text" validate:"required,max=2000"`
	Priority string `json:"priority" validate:"omitempty,oneof=Baja Normal Alta"`
}

// AnswerRequestRequest respuesta a una solicitud pendiente.
type AnswerRequestRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

// RequestQuery filtros de GET /api/requests.
type RequestQuery struct {
	Status string `query:"status" json:"status" validate:"omitempty,oneof=Pendiente Respondida"`
	Text   string `query:"text" json:"text"`
	Limit  int    `query:"limit" json:"limit" validate:"min=0,max=1000"`
}

// RequestResponse salida de una solicitud.
type RequestResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Text            string     `json:"text"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	Response        string     `json:"response,omitempty"`
	CreatedByName   string     `json:"created_by_name"`
	CreatedAt       time.Time  `json:"created_at"`
	RespondedByName string     `json:"responded_by_name,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
}
