package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/pkg/config"
)

// clearEnv deja vacías las variables que lee Load; Viper trata el valor vacío como no definido.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "STORAGE", "CHECKOUT_DECREMENT_STOCK", "LOW_STOCK_DEFAULT",
		"HTTP_PORT", "JWT_SECRET", "DB_MAX_CONNS", "DB_MIN_CONNS", "DATABASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.Store.Storage)
	assert.True(t, cfg.Store.CheckoutDecrementStock, "el checkout descuenta stock por defecto")
	assert.Equal(t, 5, cfg.Store.LowStockDefault)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 25, cfg.DB.MaxConns)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("CHECKOUT_DECREMENT_STOCK", "false")
	t.Setenv("LOW_STOCK_DEFAULT", "8")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Store.Storage, "STORAGE no distingue mayúsculas")
	assert.False(t, cfg.Store.CheckoutDecrementStock)
	assert.Equal(t, 8, cfg.Store.LowStockDefault)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_EnteroMalFormadoUsaDefecto(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOW_STOCK_DEFAULT", "abc")
	t.Setenv("HTTP_PORT", "80a")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Store.LowStockDefault, "un valor no numérico no se convierte en 0")
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_Invalida(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"storage desconocido", map[string]string{"STORAGE": "sqlite"}},
		{"low stock negativo", map[string]string{"LOW_STOCK_DEFAULT": "-1"}},
		{"production sin secret", map[string]string{"APP_ENV": "production"}},
		{"pool mínimo mayor al máximo", map[string]string{"DB_MIN_CONNS": "30", "DB_MAX_CONNS": "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "tienda", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://tienda:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString(),
		"la contraseña debe ir codificada en la URL")

	c.DatabaseURL = "postgresql://otro@host/db"
	assert.Equal(t, "postgresql://otro@host/db", c.ConnectionString(), "DATABASE_URL tiene prioridad")
}
