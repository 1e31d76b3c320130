package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFueraDeDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "debug", Out: &buf})

	l.Named("stock").Info().Str("transaction_code", "IN-1").Msg("movimiento registrado")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "stock", entry["component"])
	assert.Equal(t, "IN-1", entry["transaction_code"])
	assert.Equal(t, "movimiento registrado", entry["message"])
}

func TestNamed_ConservaNivelYComponente(t *testing.T) {
	var buf bytes.Buffer
	tx := New(Config{Env: "production", Level: "warn", Out: &buf}).Named("tx")

	tx.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	zl := tx.Zerolog()
	zl.Warn().Msg("reintento")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "tx", entry["component"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Out: &buf})

	l.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("sí")
	assert.NotZero(t, buf.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}
