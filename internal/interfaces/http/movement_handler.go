package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

// MovementHandler maneja asignaciones o mermas; el tipo lo fija la ruta.
type MovementHandler struct {
	uc   *usecase.MovementUseCase
	kind entity.MovementKind
	log  zerolog.Logger
}

// NewMovementHandler construye el handler para un tipo de movimiento.
func NewMovementHandler(uc *usecase.MovementUseCase, kind entity.MovementKind, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, kind: kind, log: log}
}

// Create godoc
// @Summary      Registrar asignación o merma
// @Description  Descuenta la cantidad de la entrada dentro de una transacción. Acepta Idempotency-Key.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave del envío"
// @Param        body             body    dto.CreateMovementRequest  true   "Movimiento"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
// @Router       /api/scrap [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Record(c.UserContext(), actorFromCtx(c), h.kind, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asignaciones o mermas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to     query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        text   query  string  false  "Texto"
// @Param        limit  query  int     false  "Límite" default(400)
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/assignments [get]
// @Router       /api/scrap [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), h.kind, q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Delete godoc
// @Summary      Eliminar asignación o merma
// @Description  Devuelve la cantidad a la entrada si todavía existe.
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assignments/{id} [delete]
// @Router       /api/scrap/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFromCtx(c), h.kind, c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
