package dto

import "github.com/mandu619/apa-depto-personal/internal/domain/entity"

// FromEntry convierte una entrada de stock a su salida HTTP.
func FromEntry(e *entity.StockEntry) EntryResponse {
	return EntryResponse{
		ID:                e.ID,
		Date:              e.DateISO,
		Type:              e.Type,
		Description:       e.Description,
		Reference:         e.Reference,
		Label:             e.Label(),
		QuantityReceived:  e.QuantityReceived,
		QuantityAvailable: e.QuantityAvailable,
		CreatedByName:     e.CreatedByName,
		CreatedAt:         e.CreatedAt,
	}
}

// FromMovement convierte una asignación o merma.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		Kind:          string(m.Kind),
		Date:          m.DateISO,
		EntryID:       m.EntryID,
		EntryLabel:    m.EntryLabel,
		EntryType:     m.EntryType,
		EntryDesc:     m.EntryDesc,
		Quantity:      m.Quantity,
		Reason:        m.Reason,
		Worker:        m.Worker,
		Detail:        m.Detail,
		CreatedByName: m.CreatedByName,
		CreatedAt:     m.CreatedAt,
	}
}

// FromRequest convierte una solicitud.
func FromRequest(r *entity.Request) RequestResponse {
	return RequestResponse{
		ID:              r.ID,
		Type:            r.Type,
		Text:            r.Text,
		Priority:        r.Priority,
		Status:          r.Status,
		Response:        r.Response,
		CreatedByName:   r.CreatedByName,
		CreatedAt:       r.CreatedAt,
		RespondedByName: r.RespondedByName,
		RespondedAt:     r.RespondedAt,
	}
}

// FromUser convierte un usuario; nunca incluye el hash.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
