package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/nit"
)

func TestCheckDigit(t *testing.T) {
	tests := []struct {
		base string
		want byte
	}{
		{"900123456", '8'},
		{"860002964", '4'},
		{"800.197.268", '4'},
	}
	for _, tt := range tests {
		got, err := nit.CheckDigit(tt.base)
		require.NoError(t, err, tt.base)
		assert.Equal(t, tt.want, got, "dígito de verificación de %s", tt.base)
	}

	_, err := nit.CheckDigit("12345")
	assert.ErrorIs(t, err, nit.ErrInvalid)
}

func TestNormalize(t *testing.T) {
	for _, raw := range []string{"900123456-8", "900.123.456-8", "9001234568", " 900123456 - 8 "} {
		got, err := nit.Normalize(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, "900123456-8", got)
	}
}

func TestNormalize_Invalido(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"dígito incorrecto", "900123456-1"},
		{"sin dígito de verificación", "900123456"},
		{"demasiados dígitos", "90012345681"},
		{"vacío", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nit.Normalize(tt.raw)
			assert.ErrorIs(t, err, nit.ErrInvalid)
		})
	}
}
