package tui

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTYOutput_Messages(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Success("scan complete")
	out.Warning("cache is stale")
	out.Info("50 sites")
	out.Error(stderrors.New("download failed"))

	s := buf.String()
	assert.Contains(t, s, "scan complete")
	assert.Contains(t, s, "cache is stale")
	assert.Contains(t, s, "50 sites")
	assert.Contains(t, s, "download failed")
}

func TestTTYOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	require.NoError(t, out.JSON(map[string]int{"matches": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["matches"])
}

func TestJSONOutput_SuppressesHumanMessages(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("scan complete")
	out.Warning("cache is stale")
	out.Info("50 sites")

	assert.Empty(t, buf.String(), "human messages must not pollute JSON output")
}

func TestJSONOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Error(stderrors.New("download failed"))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "download failed", decoded["error"])
}

func TestJSONOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	require.NoError(t, out.JSON([]string{"a", "b"}))

	var decoded []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"a", "b"}, decoded)
}
