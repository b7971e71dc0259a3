package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, lvl Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(lvl)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelWarn)
		Close()
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := captureOutput(t, LevelWarn)

	Info("skipped row %d", 3)
	Warn("store %s changed", "users.csv")
	Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "skipped row")
	assert.Contains(t, out, "[WARN] store users.csv changed")
	assert.Contains(t, out, "[EROR] boom")
	assert.NotContains(t, out, "\033[", "non-terminal output must not be coloured")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"info", LevelInfo},
		{" WARN ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelError},
		{"", LevelError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in, LevelError), "ParseLevel(%q)", tt.in)
	}
}

func TestInitWritesDailyFile(t *testing.T) {
	captureOutput(t, LevelInfo)
	dir := t.TempDir()

	require.NoError(t, Init(dir))
	Info("hello %s", "file")
	Close()

	name := filepath.Join(dir, "logs", time.Now().Format("2006-01-02")+".log")
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] hello file")
}

func TestInitKeepsLogsSuffix(t *testing.T) {
	captureOutput(t, LevelInfo)
	dir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, Init(dir))
	Close()

	_, err := os.Stat(filepath.Join(dir, "logs"))
	assert.True(t, os.IsNotExist(err))
}
