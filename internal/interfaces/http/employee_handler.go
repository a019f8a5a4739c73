package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/application/usecase"
)

// EmployeeHandler maneja empleados (admin) y la lista de trabajadores.
type EmployeeHandler struct {
	uc  *usecase.EmployeeUseCase
	log zerolog.Logger
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase, log zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
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
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), actorFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}

// Workers godoc
// @Summary      Nombres de trabajadores activos
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[string]
// @Router       /api/workers [get]
func (h *EmployeeHandler) Workers(c *fiber.Ctx) error {
	out, err := h.uc.Workers(c.UserContext(), actorFromCtx(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NewList(out))
}
