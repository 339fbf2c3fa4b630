package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azhovan/dotconf"
)

type fixture struct {
	envFile   string
	configDir string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	envFile := filepath.Join(root, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CONFCTL_TEST_NAME=demo\nCONFCTL_TEST_TOKEN='abc'\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "app.yaml"),
		[]byte("name: demo\nport: \"8080\"\ndebug: \"on\"\nratio: 0.5\ntags: [a, b]\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "database.toml"),
		[]byte("host = \"localhost\"\npassword = \"hunter2\"\n"), 0o644))

	return fixture{envFile: envFile, configDir: configDir}
}

func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--env-file", f.envFile, "--config-dir", f.configDir, "--log-level", "error"}, args...)
	err := run(full, &stdout, &stderr)
	return stdout.String(), err
}

func TestRun_Get(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "string", args: []string{"get", "app.name"}, want: "demo\n"},
		{name: "int", args: []string{"get", "app.port", "--type", "int"}, want: "8080\n"},
		{name: "float", args: []string{"get", "app.ratio", "--type", "float"}, want: "0.5\n"},
		{name: "bool", args: []string{"get", "app.debug", "--type", "bool"}, want: "true\n"},
		{name: "list as json", args: []string{"get", "app.tags"}, want: "[\"a\",\"b\"]\n"},
		{name: "default", args: []string{"get", "app.missing", "--default", "fallback"}, want: "fallback\n"},
		{name: "empty default", args: []string{"get", "app.missing", "--default", ""}, want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRun_GetMissingWithoutDefault(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "get", "nope")
	assert.ErrorIs(t, err, errKeyNotFound)
}

func TestRun_Dump(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "dump", "--sources", "--secret", "database.password")
	require.NoError(t, err)

	assert.Contains(t, out, `database.host: "localhost" (source: file:database.toml)`)
	assert.Contains(t, out, "database.password: "+dotconf.Redacted)
	assert.NotContains(t, out, "hunter2")
}

func TestRun_DumpJSON(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "dump", "--json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "app")
	assert.Contains(t, decoded, "database")
}

func TestRun_Snapshot(t *testing.T) {
	f := newFixture(t)
	target := filepath.Join(t.TempDir(), "snap-{{timestamp}}.json")

	out, err := f.run(t, "snapshot", target, "--exclude", "app.tags", "--secret", "database.password")
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.NotContains(t, path, "{{timestamp}}")

	snap, err := dotconf.ReadSnapshot(path)
	require.NoError(t, err)
	assert.NotContains(t, snap.Config, "app.tags")
	assert.Equal(t, "demo", snap.Config["app.name"])
	assert.Equal(t, dotconf.Redacted, snap.Config["database.password"])
}

func TestRun_Env(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "env", "CONFCTL_TEST_TOKEN")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)

	out, err = f.run(t, "env", "CONFCTL_TEST_UNSET", "--default", "none")
	require.NoError(t, err)
	assert.Equal(t, "none\n", out)
}

func TestRun_Export(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "export")
	require.NoError(t, err)
	assert.Equal(t, "CONFCTL_TEST_NAME=\"demo\"\nCONFCTL_TEST_TOKEN=\"abc\"\n", out)
}

func TestRun_ConfigDirFromEnvironment(t *testing.T) {
	f := newFixture(t)
	t.Setenv("DOTCONF_CONFIG_DIR", f.configDir)
	t.Setenv("DOTCONF_ENV_FILE", f.envFile)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--log-level", "error", "get", "database.host"}, &stdout, &stderr))
	assert.Equal(t, "localhost\n", stdout.String())
}

func TestRun_BadArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Error(t, run([]string{"get"}, &stdout, &stderr))
	assert.Error(t, run([]string{"frobnicate"}, &stdout, &stderr))
	assert.Error(t, run([]string{"--log-format", "xml", "dump"}, &stdout, &stderr))
}

func TestDefaultConfigDir(t *testing.T) {
	assert.Equal(t, "dotconf", filepath.Base(defaultConfigDir()))
}
