package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := Generate("s3cret", 42, "Ana", "stock-ledger", 5)
	require.NoError(t, err)

	claims, err := Parse("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "stock-ledger", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("s3cret", 42, "Ana", "stock-ledger", 5)
	require.NoError(t, err)

	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("s3cret", 42, "Ana", "stock-ledger", -1)
	require.NoError(t, err)

	_, err = Parse("s3cret", tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_SinUsuario(t *testing.T) {
	claims := Claims{RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))}}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = Parse("s3cret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", 1, "Ana", "x", 5)
	assert.Error(t, err)
}
