package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/config"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("card_id", 3).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"card_id":3`)
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewFile_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewFile(config.LogConfig{Level: "info", Format: "text"}, dir)
	require.NoError(t, err)

	logger.Info("hello")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(filepath.Join(dir, "vodila.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello")
}
