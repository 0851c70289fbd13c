package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", &buf)
	defer Setup("info", nil)

	logger := NewPackageLogger("repository")
	logger.Info().Int64("id", 3).Msg("saving customer")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "repository", entry[PACKAGE])
	assert.Equal(t, "saving customer", entry["message"])
	assert.Equal(t, 3.0, entry["id"])
	assert.NotEmpty(t, entry["time"])
}

func TestSetupUnknownLevel(t *testing.T) {
	Setup("chatty", &bytes.Buffer{})
	defer Setup("info", nil)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
