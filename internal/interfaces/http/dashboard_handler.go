package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/analytics"
)

// DashboardHandler expone los indicadores de inicio.
type DashboardHandler struct {
	uc  *analytics.DashboardUseCase
	log zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve conteos de los últimos 30 días y las últimas entradas y asignaciones.
// GET /api/dashboard
//
// @Summary      Dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
