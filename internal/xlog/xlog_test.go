package xlog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "warn", "console")
	require.NoError(t, err)
	require.False(t, l.Core().Enabled(zap.InfoLevel))
	require.True(t, l.Core().Enabled(zap.WarnLevel))

	l.Info("hidden")
	l.Named("runner").Warn("shown", zap.Int("size", 16))
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "WARN")
	require.Contains(t, buf.String(), "runner")
	require.Contains(t, buf.String(), `"size": 16`)
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := New(buf, "info", "json")
	require.NoError(t, err)

	l.Named("dataset").Info("ready", zap.Int("size", 16))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "INFO", line["L"])
	require.Equal(t, "dataset", line["N"])
	require.Equal(t, "ready", line["M"])
	require.EqualValues(t, 16, line["size"])
}

func TestNewErrors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", "console")
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.ErrorContains(t, err, `unknown log format "xml"`)
}
