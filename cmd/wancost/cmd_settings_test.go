package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/wancost/pkg/settings"
)

func TestSettingsCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	run := func(args ...string) (string, error) {
		return execute(t, "", append([]string{"--settings", path, "settings"}, args...)...)
	}

	out, err := run("path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = run("get", "controller")
	require.NoError(t, err)
	assert.Equal(t, "(not set)\n", out)

	out, err = run("set", "controller", "https://api.example.net")
	require.NoError(t, err)
	assert.Equal(t, "controller set to: https://api.example.net\n", out)

	_, err = run("set", "timeout", "30s")
	require.NoError(t, err)

	out, err = run("get", "timeout")
	require.NoError(t, err)
	assert.Equal(t, "30s\n", out)

	out, err = run("show")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings file: "+path)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines, "controller            https://api.example.net")
	assert.Contains(t, lines, "insecure_skip_verify  (not set)")

	s, err := settings.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.net", s.Controller)

	out, err = run("clear")
	require.NoError(t, err)
	assert.Equal(t, "All settings cleared.\n", out)

	s, err = settings.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, &settings.Settings{}, s)
}

func TestSettingsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	_, err := execute(t, "", "--settings", path, "settings", "set", "color", "on")
	assert.ErrorContains(t, err, "unknown setting: color")

	_, err = execute(t, "", "--settings", path, "settings", "set", "timeout", "soon")
	assert.ErrorContains(t, err, "timeout")

	_, err = execute(t, "", "--settings", path, "settings", "get", "nope")
	assert.ErrorContains(t, err, "unknown setting")

	_, err = execute(t, "", "--settings", path, "settings", "set", "controller")
	assert.Error(t, err)
}
