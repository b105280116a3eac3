package util

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestBuildVersion(t *testing.T) {
	info := BuildVersion("v1.0.0", "abc123", "2026-01-02", "ci", "clean")
	assert.Equal(t, "v1.0.0", info.GitVersion)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "2026-01-02", info.BuildDate)
	assert.Equal(t, "ci", info.BuiltBy)
	assert.Equal(t, "clean", info.GitTreeState)
	assert.Equal(t, AppName, info.Name)
}
