package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""), "vacío cae en info")
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("verbose"), "desconocido cae en info")
}

func TestNew_CamposServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Service: "tienda-api", Out: &buf})

	log.Component("order").Info().Str("order_id", "o-1").Msg("pedido despachado")
	log.Debug().Msg("no debe salir")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), "una sola línea JSON: debug queda filtrado")
	assert.Equal(t, "tienda-api", entry["service"])
	assert.Equal(t, "order", entry["component"])
	assert.Equal(t, "o-1", entry["order_id"])
	assert.Equal(t, "pedido despachado", entry["message"])
}
