package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
)

// EntryHandler maneja las entradas de stock.
type EntryHandler struct {
	uc  *usecase.EntryUseCase
	log zerolog.Logger
}

// NewEntryHandler construye el handler.
func NewEntryHandler(uc *usecase.EntryUseCase, log zerolog.Logger) *EntryHandler {
	return &EntryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar entrada de stock
// @Tags         entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Fecha, tipo, descripción, referencia y cantidad"
// @Success      201   {object}  dto.EntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFromCtx(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar entradas de stock
// @Tags         entries
// @Security     Bearer
// @Produce      json
// @Param        type            query  string  false  "Tipo exacto"
// @Param        text            query  string  false  "Texto (sin tildes ni mayúsculas)"
// @Param        only_available  query  bool    false  "Solo con stock disponible"
// @Param        limit           query  int     false  "Límite" default(400)
// @Success      200  {object}  dto.ListResponse[dto.EntryResponse]
// @Router       /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	var q dto.EntryQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Delete godoc
// @Summary      Eliminar entrada de stock
// @Description  Falla con ENTRY_HAS_DEPENDENTS si tiene asignaciones o mermas.
// @Tags         entries
// @Security     Bearer
// @Param        id   path  string  true  "ID de la entrada"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
