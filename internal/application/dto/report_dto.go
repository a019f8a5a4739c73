package dto

import "time"

// Modos de informe.
const (
	ReportByWorker = "worker"
	ReportByType   = "type"
)

// ReportQuery parámetros de informe. From y To son inclusivos y opcionales.
type ReportQuery struct {
	Mode   string `query:"mode" json:"mode" validate:"omitempty,oneof=worker type"`
	Filter string `query:"filter" json:"filter"`
	From   string `query:"from" json:"from" validate:"omitempty,isodate"`
	To     string `query:"to" json:"to" validate:"omitempty,isodate"`
}

// ReportRow una fila del informe (mismas columnas que el CSV).
type ReportRow struct {
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	EntryType   string `json:"entry_type"`
	Worker      string `json:"worker"`
	EntryID     string `json:"entry_id"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

// ReportSummary totales del informe.
type ReportSummary struct {
	Rows           int `json:"rows"`
	TotalQuantity  int `json:"total_quantity"`
	ScrapQuantity  int `json:"scrap_quantity"`
	RemainingStock int `json:"remaining_stock"`
}

// ReportResponse informe completo.
type ReportResponse struct {
	Query       ReportQuery   `json:"query"`
	Rows        []ReportRow   `json:"rows"`
	Summary     ReportSummary `json:"summary"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// DashboardResponse indicadores de los últimos 30 días.
type DashboardResponse struct {
	Since             string             `json:"since"`
	Entries           int                `json:"entries"`
	Assignments       int                `json:"assignments"`
	Scrap             int                `json:"scrap"`
	PendingRequests   int                `json:"pending_requests"`
	LatestEntries     []EntryResponse    `json:"latest_entries"`
	LatestAssignments []MovementResponse `json:"latest_assignments"`
}
