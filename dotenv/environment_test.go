package dotenv

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFrom_ResolutionOrder(t *testing.T) {
	table := NewMapEnv(map[string]string{"SHARED": "from-table", "TABLE_ONLY": "t"})
	osEnv := NewMapEnv(map[string]string{"SHARED": "from-os", "OS_ONLY": "o"})

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "table wins over os", key: "SHARED", expected: "from-table"},
		{name: "table only", key: "TABLE_ONLY", expected: "t"},
		{name: "falls back to os", key: "OS_ONLY", expected: "o"},
		{name: "falls back to default", key: "MISSING", expected: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvFrom(table, osEnv, tt.key, "default"))
		})
	}
}

func TestEnvFrom_NilEnvironments(t *testing.T) {
	assert.Equal(t, "default", EnvFrom(nil, nil, "ANY", "default"))
}

func TestEnvFrom_EmptyValueCountsAsPresent(t *testing.T) {
	table := NewMapEnv(map[string]string{"BLANK": ""})
	assert.Equal(t, "", EnvFrom(table, nil, "BLANK", "default"))
}

func TestEnv_ReadsProcessTableThenOS(t *testing.T) {
	t.Cleanup(Process.Reset)
	t.Setenv("DOTENV_TEST_OS_VAR", "os-value")

	assert.Equal(t, "os-value", Env("DOTENV_TEST_OS_VAR", "default"))

	p := New(DefaultOptions())
	require.NoError(t, p.Parse(strings.NewReader("DOTENV_TEST_OS_VAR=file-value")))

	assert.Equal(t, "file-value", Env("DOTENV_TEST_OS_VAR", "default"))
	assert.Equal(t, "default", Env("DOTENV_TEST_NEVER_SET", "default"))
}

func TestOSEnv(t *testing.T) {
	t.Setenv("DOTENV_TEST_OSENV", "before")
	env := OSEnv()

	v, ok := env.Lookup("DOTENV_TEST_OSENV")
	assert.True(t, ok)
	assert.Equal(t, "before", v)

	require.NoError(t, env.Set("DOTENV_TEST_OSENV", "after"))
	assert.Equal(t, "after", os.Getenv("DOTENV_TEST_OSENV"))
}

func TestMapEnv(t *testing.T) {
	initial := map[string]string{"A": "1"}
	env := NewMapEnv(initial)
	initial["A"] = "mutated"

	v, ok := env.Lookup("A")
	assert.True(t, ok)
	assert.Equal(t, "1", v, "NewMapEnv copies its input")

	require.NoError(t, env.Set("B", "2"))
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, env.All())

	env.Unset("A")
	_, ok = env.Lookup("A")
	assert.False(t, ok)

	env.Reset()
	assert.Empty(t, env.All())
}
