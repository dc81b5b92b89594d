package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"tdash/internal/config"
)

func TestInit_JSON(t *testing.T) {
	is := is.New(t)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	is.NoErr(InitWithWriter(config.LogConfig{Level: "info", Format: config.LogFormatJSON}, &buf))

	L().Debug().Msg("hidden")
	L().Info().Str("project_id", "p1").Msg("project added")

	var entry map[string]any
	is.NoErr(json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry)) // exactly one line written
	is.Equal(entry["message"], "project added")
	is.Equal(entry["project_id"], "p1")
	is.True(entry["timestamp"] != nil)
}

func TestInit_Errors(t *testing.T) {
	is := is.New(t)
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	is.True(InitWithWriter(config.LogConfig{Level: "loud"}, &buf) != nil)
	is.True(InitWithWriter(config.LogConfig{Level: "info", Format: "xml"}, &buf) != nil)
}
