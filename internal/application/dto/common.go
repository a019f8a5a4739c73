package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	// Available acompaña a INSUFFICIENT_STOCK.
	Available *int `json:"available,omitempty"`
	// Assignments y Scrap acompañan a ENTRY_HAS_DEPENDENTS.
	Assignments *int `json:"assignments,omitempty"`
	Scrap       *int `json:"scrap,omitempty"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList arma un ListResponse; nil se serializa como lista vacía.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
