package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestZerologAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newZerologAdapter(&buf, "debug")
	require.NoError(t, err)

	logger.Info("posted",
		String("group", "42"),
		Int("status", 201),
		Bool("query", false),
		Duration("took", time.Second),
		Redacted("password", "hunter2"),
		Err(errors.New("boom")),
	)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "posted", line["message"])
	require.Equal(t, "info", line["level"])
	require.Equal(t, "42", line["group"])
	require.EqualValues(t, 201, line["status"])
	require.Equal(t, false, line["query"])
	require.Equal(t, "*****", line["password"])
	require.Equal(t, "boom", line["error"])
}

func TestZerologAdapter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newZerologAdapter(&buf, "warn")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("hidden")
	require.Zero(t, buf.Len())

	logger.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestZerologAdapter_BadLevel(t *testing.T) {
	_, err := newZerologAdapter(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}

func TestRedacted_Empty(t *testing.T) {
	require.Equal(t, "", Redacted("secret", "").Value)
}
