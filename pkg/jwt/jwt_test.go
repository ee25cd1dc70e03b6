package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

func TestGenerateParse_RoundTripIdentidad(t *testing.T) {
	in := jwt.Identity{UserID: "u-1", CompanyID: "c-1", CustomerID: "cust-1", Role: "cliente"}
	tok, err := jwt.Generate("secreto", "tienda-api", in, 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secreto", "tienda-api", jwt.Identity{UserID: "u-1", CompanyID: "c-1"}, 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", tok)
	assert.Error(t, err, "un token firmado con otra clave debe rechazarse")
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("secreto", "tienda-api", jwt.Identity{UserID: "u-1", CompanyID: "c-1"}, -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "tienda-api", jwt.Identity{UserID: "u-1"}, 5)
	assert.Error(t, err)
}
