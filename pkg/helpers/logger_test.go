package helpers

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, logrus.DebugLevel, NewLogger("accounts", "development").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("accounts", "production").GetLevel())

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, NewLogger("accounts", "production").GetLevel())
}

func TestNewLogger_StampsAppFields(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	logger := NewLogger("accounts", "production")
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	logger.WithField("user_id", "u1").Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "accounts", entry["app"])
	assert.Equal(t, "production", entry["env"])
	assert.Equal(t, "u1", entry["user_id"])
}
