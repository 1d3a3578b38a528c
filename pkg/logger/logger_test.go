package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("ruido"))
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "staging", Level: "info", Service: "wh"}, &buf)

	c := l.Component("transfers")
	c.Info().Msg("hola")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "transfers", entry["component"])
	assert.Equal(t, "wh", entry["service"])
	assert.Equal(t, "hola", entry["message"])
}

func TestNivel_FiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Env: "staging", Level: "warn"}, &buf)
	l.Info().Msg("no aparece")
	assert.Zero(t, buf.Len())
}
