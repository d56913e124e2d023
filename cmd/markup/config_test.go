package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".markup.yml")

	stdout, _, err := runCLI(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extension: .gsx")

	_, _, err = runCLI(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = runCLI(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markup.yml")
	require.NoError(t, os.WriteFile(path, []byte("generate:\n  suffix: .gen.go\n"), 0o644))
	t.Setenv("MARKUP_WATCH_DEBOUNCE", "2s")

	stdout, _, err := runCLI(t, "config", "show", "--config", path, "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stdout, "suffix: .gen.go")
	assert.Contains(t, stdout, "debounce: 2s")
	assert.Contains(t, stdout, "level: debug")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "markup version "), stdout)
}
