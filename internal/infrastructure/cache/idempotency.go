package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "apa:idem:"

// IdempotencyStore reserva claves Idempotency-Key con SET NX y TTL. Un reintento del cliente
// con la misma clave dentro del TTL no vuelve a ejecutar la escritura.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore construye el store. ttl <= 0 usa 24 horas.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func idempotencyKey(scope, key string) string {
	return idempotencyPrefix + scope + ":" + key
}

// Claim reserva la clave. Devuelve false si ya estaba reservada.
func (s *IdempotencyStore) Claim(ctx context.Context, scope, key string) (bool, error) {
	if key == "" {
		return false, errors.New("idempotency key vacía")
	}
	ok, err := s.client.SetNX(ctx, idempotencyKey(scope, key), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency claim: %w", err)
	}
	return ok, nil
}

// Release libera la clave para que el cliente pueda reintentar tras un error.
func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, idempotencyKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
