package dotenv

import (
	"os"
	"sync"
)

// Environment is a writable key/value environment the parser can mirror into.
type Environment interface {
	// Lookup returns the value and whether the key is present.
	Lookup(key string) (string, bool)

	// Set stores value under key.
	Set(key, value string) error
}

// Process is the process-wide table parsers mirror into by default and Env
// consults first. It reflects whichever Load ran last; parsers mirroring from
// several goroutines race on it (last write wins).
var Process = NewMapEnv(nil)

type osEnv struct{}

// OSEnv returns the real operating-system environment.
func OSEnv() Environment {
	return osEnv{}
}

func (osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnv) Set(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnv is an in-memory Environment. The zero value is not usable; call NewMapEnv.
type MapEnv struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMapEnv creates a MapEnv holding a copy of values.
func NewMapEnv(values map[string]string) *MapEnv {
	m := &MapEnv{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Lookup returns the value and whether the key is present.
func (m *MapEnv) Lookup(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. It never fails.
func (m *MapEnv) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Unset removes key.
func (m *MapEnv) Unset(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

// All returns a copy of the stored values.
func (m *MapEnv) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Reset removes every key.
func (m *MapEnv) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
}

// Env resolves key from the Process table, then the OS environment, then def.
func Env(key, def string) string {
	return EnvFrom(Process, OSEnv(), key, def)
}

// EnvFrom resolves key from table, then osEnv, then def. Nil environments are skipped.
func EnvFrom(table, osEnv Environment, key, def string) string {
	for _, env := range []Environment{table, osEnv} {
		if env == nil {
			continue
		}
		if v, ok := env.Lookup(key); ok {
			return v
		}
	}
	return def
}
