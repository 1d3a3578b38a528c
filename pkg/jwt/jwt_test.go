package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse_RoundTripConAlcance(t *testing.T) {
	tok, err := Generate(secret, "warehousing", 5, Claims{
		UserID:      "u-1",
		Username:    "bodega",
		Role:        "warehouse",
		Permissions: []string{"VIEW_INVENTORY"},
		CategoryIDs: []string{"c-1"},
	})
	require.NoError(t, err)

	c, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UserID)
	assert.Equal(t, "u-1", c.Subject)
	assert.Equal(t, "warehousing", c.Issuer)
	assert.Equal(t, []string{"c-1"}, c.CategoryIDs)
	assert.True(t, c.HasPermission("VIEW_INVENTORY"))
	assert.False(t, c.HasPermission("ADJUST_INVENTORY"))
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, "x", 5, Claims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate(secret, "x", -1, Claims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "x", 5, Claims{UserID: "u"})
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, err = Parse("", "abc")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestHasPermission_AdminTieneTodos(t *testing.T) {
	c := &Claims{IsAdmin: true}
	assert.True(t, c.HasPermission("CUALQUIERA"))
}
