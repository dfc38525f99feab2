package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FILENAME), "")
	require.NoError(t, err)

	wd, _ := os.Getwd()
	assert.Equal(t, wd, cfg.Dir)
	assert.True(t, cfg.Backup)
	assert.Equal(t, 5*time.Second, cfg.Settle)
	assert.Equal(t, filepath.Join(wd, ".gdedit-journal"), cfg.Journal)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILENAME)
	require.NoError(t, os.WriteFile(path, []byte("dir = /games/save\nbackup = false\nsettle = 250ms\nlog_level = debug\n"), 0o644))

	cfg, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "/games/save", cfg.Dir)
	assert.False(t, cfg.Backup)
	assert.Equal(t, 250*time.Millisecond, cfg.Settle)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join("/games/save", ".gdedit-journal"), cfg.Journal)

	// command line beats the file
	cfg, err = Load(path, "/elsewhere")
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere", cfg.Dir)
}

func TestBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILENAME)
	require.NoError(t, os.WriteFile(path, []byte("settle = soon\n"), 0o644))
	_, err := Load(path, "")
	assert.ErrorContains(t, err, "settle")
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FILENAME)
	want := Config{Dir: "/a", Backup: false, Journal: "/j", Settle: time.Minute, LogLevel: "warn"}
	require.NoError(t, want.Save(path))

	got, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	log.Debugw("hello", "k", 1)

	_, err = NewLogger("chatty")
	assert.Error(t, err)
}
