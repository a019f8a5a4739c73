package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/mandu619/apa-depto-personal/internal/application/dto"
)

// HeaderIdempotencyKey identifica un envío del formulario; el cliente la repite al reintentar.
const HeaderIdempotencyKey = "Idempotency-Key"

// IdempotencyStore es el contrato mínimo que necesita el middleware.
// Lo implementa *cache.IdempotencyStore.
type IdempotencyStore interface {
	Claim(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
}

// Idempotency evita registrar dos veces el mismo movimiento. Sin header, o con store nil,
// la petición pasa sin control.
//
//   - 409 DUPLICATE_REQUEST → la clave ya fue usada dentro del TTL.
//   - 503 IDEMPOTENCY_UNAVAILABLE → Redis no respondió.
//   - Si el handler responde >= 400 la clave se libera para permitir el reintento.
func Idempotency(store IdempotencyStore, scope string, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
		if store == nil || key == "" {
			return c.Next()
		}
		scoped := GetUserID(c) + ":" + key

		ok, err := store.Claim(c.UserContext(), scope, scoped)
		if err != nil {
			log.Error().Err(err).Str("scope", scope).Msg("idempotency claim")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_UNAVAILABLE",
				Message: "no se pudo verificar el envío, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_REQUEST",
				Message: "este envío ya fue registrado",
			})
		}

		err = c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			if relErr := store.Release(c.UserContext(), scope, scoped); relErr != nil {
				log.Warn().Err(relErr).Str("scope", scope).Msg("idempotency release")
			}
		}
		return err
	}
}
