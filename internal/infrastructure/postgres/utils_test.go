package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/mandu619/apa-depto-personal/internal/domain/entity"
)

func TestIsSerializationFailure(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("get stock entry: %w", &pgconn.PgError{Code: code})
	}
	assert.True(t, isSerializationFailure(wrap("40001")))
	assert.True(t, isSerializationFailure(wrap("40P01")))
	assert.False(t, isSerializationFailure(wrap("23505")))
	assert.False(t, isSerializationFailure(errors.New("40001 en el texto no cuenta")))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23514"}))
}

func TestMovementTable(t *testing.T) {
	table, cols, err := movementTable(entity.MovementAssignment)
	assert.NoError(t, err)
	assert.Equal(t, "assignments", table)
	assert.Contains(t, cols, "'' AS detail")

	table, cols, err = movementTable(entity.MovementScrap)
	assert.NoError(t, err)
	assert.Equal(t, "scrap", table)
	assert.Contains(t, cols, "'' AS worker")

	_, _, err = movementTable("transfer")
	assert.Error(t, err)
}

func TestSchemaIsEmbedded(t *testing.T) {
	for _, table := range []string{"stock_entries", "assignments", "scrap", "requests", "users"} {
		assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, schemaSQL, "quantity_available <= quantity_received")
}
