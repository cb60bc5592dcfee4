package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.InfoLevel)
	})
}

func TestSetup_Output(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	closer, err := Setup(Options{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer closer.Close()

	logrus.Info("hidden")
	logrus.WithField("image_id", "scene").Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "image_id=scene")
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())
}

func TestSetup_DefaultLevel(t *testing.T) {
	resetLogger(t)
	var buf bytes.Buffer

	closer, err := Setup(Options{Output: &buf})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}

func TestSetup_InvalidLevel(t *testing.T) {
	resetLogger(t)

	_, err := Setup(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "logs", "tiler.log")

	closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logrus.Debug("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
