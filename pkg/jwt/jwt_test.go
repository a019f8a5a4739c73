package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate(secret, "apa", 60, Identity{UserID: "u1", Name: "Ana Pérez", Role: "operator"})
	require.NoError(t, err)

	id, err := Parse(secret, "apa", token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", Name: "Ana Pérez", Role: "operator"}, id)
}

func TestParse_Rejects(t *testing.T) {
	token, err := Generate(secret, "apa", 60, Identity{UserID: "u1", Role: "admin"})
	require.NoError(t, err)

	_, err = Parse("otro-secreto", "apa", token)
	assert.Error(t, err, "firma distinta")

	_, err = Parse(secret, "otro-emisor", token)
	assert.Error(t, err, "emisor distinto")

	expired, err := Generate(secret, "apa", -5, Identity{UserID: "u1", Role: "admin"})
	require.NoError(t, err)
	_, err = Parse(secret, "apa", expired)
	assert.Error(t, err, "token expirado")

	_, err = Parse(secret, "apa", "no-es-un-token")
	assert.Error(t, err)
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", "apa", 60, Identity{UserID: "u1"})
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = Parse("", "apa", "x")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
