// Package container is a small lazy singleton registry used to wire the
// configuration repository into command-line tools.
package container

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotBound is returned by Make when neither a binding nor an alias exists.
	ErrNotBound = errors.New("container: name not bound")

	// ErrAliasCycle is returned by Make when aliases point back at each other.
	ErrAliasCycle = errors.New("container: alias cycle")
)

type binding struct {
	factory  func() (any, error)
	once     sync.Once
	instance any
	err      error
}

// Container holds singleton bindings and aliases. It is safe for concurrent use.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	aliases  map[string]string
}

// New returns an empty container.
func New() *Container {
	return &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
}

// Singleton binds name to factory. The factory runs at most once, on the first
// Make. Rebinding a name replaces the previous binding and its cached instance.
func (c *Container) Singleton(name string, factory func() (any, error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[name] = &binding{factory: factory}
}

// Alias makes alias resolve to whatever target resolves to.
func (c *Container) Alias(alias, target string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = target
}

// Has reports whether name, directly or through aliases, resolves to a binding.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, err := c.resolveLocked(name)
	return err == nil
}

// Make returns the instance bound to name, building it on first use. A
// factory error is cached along with the instance.
func (c *Container) Make(name string) (any, error) {
	c.mu.RLock()
	b, err := c.resolveLocked(name)
	c.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	b.once.Do(func() {
		b.instance, b.err = b.factory()
	})
	if b.err != nil {
		return nil, fmt.Errorf("build %q: %w", name, b.err)
	}
	return b.instance, nil
}

func (c *Container) resolveLocked(name string) (*binding, error) {
	seen := make(map[string]bool)
	for {
		if b, ok := c.bindings[name]; ok {
			return b, nil
		}
		target, ok := c.aliases[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotBound, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrAliasCycle, name)
		}
		seen[name] = true
		name = target
	}
}
