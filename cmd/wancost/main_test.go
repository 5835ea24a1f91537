package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/wancost/internal/testutil"
	"github.com/newtron-network/wancost/pkg/audit"
	"github.com/newtron-network/wancost/pkg/auth"
	"github.com/newtron-network/wancost/pkg/cli"
	"github.com/newtron-network/wancost/pkg/util"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cli.SetColor(false)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// clearTokenEnv hides any credentials from the test environment.
func clearTokenEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{auth.EnvXAuthToken, auth.EnvAuthToken} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

type workspace struct {
	fake     *testutil.FakeController
	settings string
	auditLog string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	clearTokenEnv(t)
	dir := t.TempDir()
	return &workspace{
		fake:     testutil.NewFakeController(t),
		settings: filepath.Join(dir, "settings.yaml"),
		auditLog: filepath.Join(dir, "audit.log"),
	}
}

func (w *workspace) args(extra ...string) []string {
	return append([]string{
		"--controller", w.fake.URL(),
		"--settings", w.settings,
		"--audit-log", w.auditLog,
	}, extra...)
}

func TestRootRunWithToken(t *testing.T) {
	w := newWorkspace(t)

	out, err := execute(t, "y\n", w.args("-t", w.fake.Token, "-m", "lte", "-c", "200")...)
	require.NoError(t, err)

	assert.Contains(t, out, "Authenticating using Auth-Token from CLI ARGS")
	assert.Contains(t, out, "======== TENANT NAME Example Corp ========")
	assert.Len(t, w.fake.Updates(), 2)
	assert.Equal(t, 1, w.fake.Logouts())

	events, err := audit.QueryFile(w.auditLog, audit.Filter{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, testutil.WANBranchLTE, events[0].InterfaceID)
	assert.Equal(t, "500", events[0].OldCost)
	assert.Equal(t, "200", events[0].NewCost)
	assert.Equal(t, w.fake.Email, events[0].User)
}

func TestRootRunTokenFile(t *testing.T) {
	w := newWorkspace(t)
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte(w.fake.Token+"\n"), 0600))

	out, err := execute(t, "n\n", w.args("-f", tokenFile, "-m", "LTE", "-c", "5")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Auth-Token from file "+tokenFile)
	assert.Contains(t, out, "CHANGES ABORTED!")
	assert.Empty(t, w.fake.Updates())
}

func TestRootRunEnvFile(t *testing.T) {
	w := newWorkspace(t)
	envFile := filepath.Join(t.TempDir(), "creds.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AUTH_TOKEN="+w.fake.Token+"\n"), 0600))

	out, err := execute(t, "y\n", w.args("--env-file", envFile, "--no-audit", "-m", "backup", "-c", "9")...)
	require.NoError(t, err)
	assert.Contains(t, out, "environment variable AUTH_TOKEN")
	require.Len(t, w.fake.Updates(), 1)
	assert.Equal(t, float64(9), w.fake.Updates()[0].Body["cost"])

	_, statErr := os.Stat(w.auditLog)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRootRunControllerFromSettings(t *testing.T) {
	w := newWorkspace(t)
	_, err := execute(t, "", "--settings", w.settings, "settings", "set", "controller", w.fake.URL())
	require.NoError(t, err)

	_, err = execute(t, "y\n", "--settings", w.settings, "--no-audit", "-t", w.fake.Token, "-m", "verizon", "-c", "1")
	require.NoError(t, err)
	require.Len(t, w.fake.Updates(), 1)
	assert.Equal(t, testutil.WANBranchCLTE, w.fake.Updates()[0].InterfaceID)
}

func TestRootRunBadToken(t *testing.T) {
	w := newWorkspace(t)

	out, err := execute(t, "y\n", w.args("-t", "stale", "-m", "lte", "-c", "200")...)
	require.Error(t, err)
	assert.True(t, errors.Is(err, util.ErrAuthFailed))
	assert.Equal(t, util.ExitFatal, util.ExitCode(err))
	assert.NotContains(t, out, "stale")
	assert.Equal(t, 1, w.fake.Logouts())
}

func TestRootRunPartialFailure(t *testing.T) {
	w := newWorkspace(t)
	w.fake.FailUpdateOf[testutil.WANBranchCLTE] = true

	_, err := execute(t, "y\n", w.args("-t", w.fake.Token, "-m", "lte", "-c", "200")...)
	require.Error(t, err)
	assert.Equal(t, util.ExitPartialUpdate, util.ExitCode(err))
	assert.EqualError(t, err, "1 of 2 WAN interface updates failed")
}

func TestRootFlagValidation(t *testing.T) {
	w := newWorkspace(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing matchtext", w.args("-t", "x", "-c", "1"), `required flag(s) "matchtext" not set`},
		{"missing cost", w.args("-t", "x", "-m", "lte"), `required flag(s) "cost" not set`},
		{"empty cost", w.args("-t", "x", "-m", "lte", "-c", ""), "--cost must not be empty"},
		{"bad controller", []string{"--controller", "ftp://host", "--no-audit", "-t", "x", "-m", "a", "-c", "1"}, "must start with http"},
		{"stray argument", w.args("-m", "a", "-c", "1", "extra"), "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, util.ExitFatal, util.ExitCode(err))
		})
	}
	assert.Empty(t, w.fake.Requests())
}

func TestRootEmptyTokenFile(t *testing.T) {
	w := newWorkspace(t)
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("\n"), 0600))

	_, err := execute(t, "", w.args("-f", tokenFile, "-m", "lte", "-c", "1")...)
	assert.True(t, errors.Is(err, auth.ErrEmptyToken))
	assert.Empty(t, w.fake.Requests())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "wancost dev build (set version via -ldflags for release info)\n", out)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("", "a", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}
