// Package analytics contiene los informes de movimientos y el dashboard de inicio.
package analytics

import (
	"github.com/mandu619/apa-depto-personal/internal/application/dto"
)

// ReportRenderer genera el documento de un informe (PDF).
type ReportRenderer interface {
	Render(report *dto.ReportResponse) ([]byte, error)
}
