package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesComponentField(t *testing.T) {
	t.Setenv(levelEnv, "")
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := Setup(Options{Dir: dir, Level: "debug"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })
	require.Equal(t, dir, filepath.Dir(path))

	New("refresh").WithField("cycle", 3).Debug("refresh started")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "component=refresh")
	assert.Contains(t, content, "cycle=3")
	assert.Contains(t, content, "refresh started")
}

func TestSetupEmptyDirDiscards(t *testing.T) {
	path, err := Setup(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })
	assert.Empty(t, path)
	assert.NotPanics(t, func() { New("ui").Info("nowhere") })
}

func TestNewReusesEntries(t *testing.T) {
	_, err := Setup(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close() })
	assert.Same(t, New("a"), New("a"))
	assert.NotSame(t, New("a"), New("b"))
}

func TestParseLevel(t *testing.T) {
	t.Setenv(levelEnv, "")
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.InfoLevel, parseLevel("chatty"))

	t.Setenv(levelEnv, "error")
	assert.Equal(t, logrus.ErrorLevel, parseLevel("debug"))
}
