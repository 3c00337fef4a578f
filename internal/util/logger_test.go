package util

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

// Not parallel: mutates the global logger and level
func TestNewLogLogger_RoutesToZerolog(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	InitializeLoggerWithWriter(DebugLevel, &buf)
	buf.Reset()

	l := NewLogLogger("FuseServer", InfoLevel)
	l.Println("2024/01/01 12:00:00 server.go:12: mounted")

	out := buf.String()
	assert.Contains(t, out, "mounted")
	assert.Contains(t, out, "FuseServer")
	assert.NotContains(t, out, "server.go:12")
}

func TestToZerolog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lvl  LogLevel
		want zerolog.Level
	}{
		{TraceLevel, zerolog.TraceLevel},
		{DebugLevel, zerolog.DebugLevel},
		{InfoLevel, zerolog.InfoLevel},
		{WarnLevel, zerolog.WarnLevel},
		{ErrorLevel, zerolog.ErrorLevel},
		{42, zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toZerolog(tt.lvl))
	}
}
