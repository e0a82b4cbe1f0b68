package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json handler filters below level", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "warn", "json")
		log.Info("hidden")
		log.Warn("data quality: unknown training unit", "unit_id", "typo")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "WARN", line["level"])
		assert.Equal(t, "typo", line["unit_id"])
	})

	t.Run("text handler", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(&buf, "DEBUG", "text")
		log.Debug("checked", "stage", "CORE")
		assert.Contains(t, buf.String(), "stage=CORE")
	})

	t.Run("unknown level is info", func(t *testing.T) {
		assert.Equal(t, "INFO", parseLevel("loud").String())
	})
}
