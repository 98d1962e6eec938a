package logging

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
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(LOG_LEVEL_ERROR))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNewLoggerToTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerTo(&buf, "ensemble", zerolog.InfoLevel)
	log.Debug().Msg("hidden")
	log.Info().Int("members", 3).Msg("built")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ensemble", line["component"])
	assert.Equal(t, float64(3), line["members"])
	assert.Equal(t, "built", line["message"])
}

func TestNewLoggerReadsEnvironment(t *testing.T) {
	t.Setenv(levelEnv, "WARN")
	assert.Equal(t, zerolog.WarnLevel, NewLogger("test").GetLevel())
}
