// ABOUTME: Tests for logger construction
// ABOUTME: Checks level filtering and session stamping
package logging

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("key", "clients").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=clients")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", &buf)
	require.NoError(t, err)

	log, id := WithSession(log)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	log.Info().Msg("started")
	assert.Contains(t, buf.String(), "session="+id)
}
