package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel_NivelesConocidosYDefecto(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"WARN":    zerolog.WarnLevel,
		" error ": zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equalf(t, want, ParseLevel(in), "nivel %q", in)
	}
}

func TestNew_EmiteCampoServiceYFiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "cocina-stock", Out: &buf})

	l.Debug().Msg("descartado por nivel")
	l.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "descartado por nivel")
	assert.Contains(t, out, `"service":"cocina-stock"`)
	assert.Contains(t, out, "visible")
}
