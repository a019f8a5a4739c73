package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
)

// RequestHandler maneja las solicitudes internas.
type RequestHandler struct {
	uc  *usecase.RequestUseCase
	log zerolog.Logger
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *usecase.RequestUseCase, log zerolog.Logger) *RequestHandler {
	return &RequestHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear solicitud
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "Tipo, texto y prioridad"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), actorFromCtx(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Answer godoc
// @Summary      Responder solicitud pendiente
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la solicitud"
// @Param        body  body  dto.AnswerRequestRequest  true  "Respuesta"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/answer [post]
func (h *RequestHandler) Answer(c *fiber.Ctx) error {
	var in dto.AnswerRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Answer(c.UserContext(), actorFromCtx(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pendiente | Respondida"
// @Param        text    query  string  false  "Texto"
// @Success      200  {object}  dto.ListResponse[dto.RequestResponse]
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var q dto.RequestQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}
