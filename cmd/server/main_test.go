package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/coachboard/internal/config"
	"github.com/rpggio/coachboard/internal/remote"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	require.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	require.Equal(t, slog.LevelError, parseLogLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestLogFileWriter_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	w, file, err := newLogFileWriter(path)
	require.NoError(t, err)
	defer file.Close()

	chunk := bytes.Repeat([]byte("x"), 1024*1024)
	for i := 0; i < 7; i++ {
		_, err := w.Write(chunk)
		require.NoError(t, err)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.LessOrEqual(t, info.Size(), int64(maxLogSizeBytes))
}

func TestEnsureDBDir(t *testing.T) {
	require.NoError(t, ensureDBDir(":memory:"))
	dir := filepath.Join(t.TempDir(), "nested", "data")
	require.NoError(t, ensureDBDir(filepath.Join(dir, "coachboard.db")))
	_, err := os.Stat(dir)
	require.NoError(t, err)
}

func TestNewSource(t *testing.T) {
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer db.Close()

	feed, mutator, err := newSource(config.SourceConfig{Kind: config.SourceSQLite}, db, nil)
	require.NoError(t, err)
	require.IsType(t, &sqlite.Source{}, feed)
	require.IsType(t, &sqlite.Source{}, mutator)

	feed, _, err = newSource(config.SourceConfig{Kind: config.SourceRemote, BaseURL: "http://localhost:1"}, db, nil)
	require.NoError(t, err)
	require.IsType(t, &remote.Client{}, feed)

	_, _, err = newSource(config.SourceConfig{Kind: config.SourceRemote}, db, nil)
	require.Error(t, err)
}
