package dto

import "time"

// CreateEntryRequest alta de una entrada de stock.
type CreateEntryRequest struct {
	Date        string `json:"date" validate:"required,isodate"`
	Type        string `json:"type" validate:"required,max=80"`
	Description string `json:"description" validate:"required,max=200"`
	Reference   string `json:"reference" validate:"max=120"`
	Quantity    int    `json:"quantity" validate:"gt=0,lte=2147483647"`
}

// EntryQuery filtros de GET /api/entries.
type EntryQuery struct {
	Type          string `query:"type" json:"type"`
	Text          string `query:"text" json:"text"`
	OnlyAvailable bool   `query:"only_available" json:"only_available"`
	Limit         int    `query:"limit" json:"limit" validate:"min=0,max=1000"`
}

// EntryResponse salida de una entrada de stock.
type EntryResponse struct {
	ID                string    `json:"id"`
	Date              string    `json:"date"`
	Type              string    `json:"type"`
	Description       string    `json:"description"`
	Reference         string    `json:"reference"`
	Label             string    `json:"label"`
	QuantityReceived  int       `json:"quantity_received"`
	QuantityAvailable int       `json:"quantity_available"`
	CreatedByName     string    `json:"created_by_name"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateMovementRequest cuerpo de POST /api/assignments y /api/scrap. El tipo lo fija la ruta.
type CreateMovementRequest struct {
	Date     string `json:"date"`
	EntryID  string `json:"entry_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
	Worker   string `json:"worker,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// MovementQuery filtros de listados de movimientos.
type MovementQuery struct {
	From  string `query:"from" json:"from" validate:"omitempty,isodate"`
	To    string `query:"to" json:"to" validate:"omitempty,isodate"`
	Text  string `query:"text" json:"text"`
	Limit int    `query:"limit" json:"limit" validate:"min=0,max=1000"`
}

// MovementResponse salida de una asignación o merma.
type MovementResponse struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Date          string    `json:"date"`
	EntryID       string    `json:"entry_id"`
	EntryLabel    string    `json:"entry_label"`
	EntryType     string    `json:"entry_type"`
	EntryDesc     string    `json:"entry_desc"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	Worker        string    `json:"worker,omitempty"`
	Detail        string    `json:"detail,omitempty"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}
