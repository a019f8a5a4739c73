package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
	"github.com/mandu619/apa-depto-personal/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y cuerpo.
func errorStatus(err error) (int, dto.ErrorResponse) {
	var (
		verr  *domain.ValidationError
		stock *domain.InsufficientStockError
		deps  *domain.DependentsError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: verr.Error(), Field: verr.Field}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, domain.ErrEntryNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "ENTRY_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrMovementNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "MOVEMENT_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.As(err, &stock):
		available := stock.Available
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error(), Available: &available}
	case errors.As(err, &deps):
		a, s := deps.Assignments, deps.Scrap
		return fiber.StatusConflict, dto.ErrorResponse{Code: "ENTRY_HAS_DEPENDENTS", Message: err.Error(), Assignments: &a, Scrap: &s}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, domain.ErrTransactionAborted):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "TRANSACTION_ABORTED", Message: domain.ErrTransactionAborted.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

// writeError responde con el status que corresponde al error. Los 5xx se registran.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, body := errorStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error atendiendo la petición")
	}
	return c.Status(status).JSON(body)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
