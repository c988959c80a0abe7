package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestConfigure_JSONOutputWithService(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Configure(Config{Level: InfoLevel, Output: &buf, Service: "learnhub"})
	Info().Str("course", "go").Msg("course created")
	Debug().Msg("dropped")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "learnhub", entry["service"])
	assert.Equal(t, "go", entry["course"])
	assert.Equal(t, "course created", entry["message"])
}

func TestWithField(t *testing.T) {
	var buf bytes.Buffer
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Configure(Config{Level: DebugLevel, Output: &buf})
	l := WithField("request_id", "abc")
	l.Debug().Msg("hello")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
