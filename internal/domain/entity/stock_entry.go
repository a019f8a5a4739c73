package entity

import "time"

// StockEntry representa un lote de material recibido. QuantityAvailable solo lo modifica el ledger.
type StockEntry struct {
	ID                string
	DateISO           string // YYYY-MM-DD
	Type              string
	Description       string
	Reference         string
	QuantityReceived  int
	QuantityAvailable int
	CreatedBy         string
	CreatedByName     string
	CreatedAt         time.Time
}

// Label es el texto que muestran los selectores de entradas.
func (e *StockEntry) Label() string {
	return e.Type + " · " + e.Description
}

// Depleted indica que ya no queda stock disponible.
func (e *StockEntry) Depleted() bool {
	return e.QuantityAvailable == 0
}

// EntryFilter filtros del listado de entradas.
type EntryFilter struct {
	Type          string
	OnlyAvailable bool
	Limit         int
}
