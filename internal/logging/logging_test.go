package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)

	log.Info("hidden", "a", 1)
	log.Warn("shown", "b", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "b=2")
}

func TestOpenFileCreatesDirectoriesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kalp-admin.log")

	log, closer, err := OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)
	log.Debug("first")
	require.NoError(t, closer.Close())

	log, closer, err = OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)
	log.Debug("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDiscardDropsRecords(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing", "k", "v")
	})
}
