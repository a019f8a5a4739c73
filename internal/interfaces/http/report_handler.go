package http

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/analytics"
	"github.com/mandu619/apa-depto-personal/internal/application/dto"
)

// ReportHandler expone el informe en JSON, CSV y PDF.
type ReportHandler struct {
	uc  *analytics.ReportUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

func (h *ReportHandler) query(c *fiber.Ctx) (dto.ReportQuery, error) {
	var q dto.ReportQuery
	err := c.QueryParser(&q)
	return q, err
}

// Run godoc
// @Summary      Informe de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        mode    query  string  false  "worker | type" default(worker)
// @Param        filter  query  string  false  "Trabajador o tipo de entrada"
// @Param        from    query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Run(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.Run(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// CSV godoc
// @Summary      Exportar informe a CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Param        mode    query  string  false  "worker | type"
// @Param        filter  query  string  false  "Trabajador o tipo de entrada"
// @Param        from    query  string  false  "Desde"
// @Param        to      query  string  false  "Hasta"
// @Success      200  {file}  file
// @Router       /api/reports/export.csv [get]
func (h *ReportHandler) CSV(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.Run(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	var buf bytes.Buffer
	if err := analytics.WriteCSV(&buf, out.Rows); err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment(analytics.CSVFilename)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}

// PDF godoc
// @Summary      Exportar informe a PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        mode    query  string  false  "worker | type"
// @Param        filter  query  string  false  "Trabajador o tipo de entrada"
// @Param        from    query  string  false  "Desde"
// @Param        to      query  string  false  "Hasta"
// @Success      200  {file}  file
// @Router       /api/reports/export.pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return badBody(c)
	}
	doc, err := h.uc.PDF(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Attachment("reporte_apa.pdf")
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc)
}
