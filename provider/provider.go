package provider

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Azhovan/dotconf"
	"github.com/Azhovan/dotconf/dotenv"
)

const (
	// Name is the binding under which the repository is registered.
	Name = "dotconf.repository"

	// AliasName is the short alias registered for Name.
	AliasName = "config"

	// EnvFile and ConfigDir are the path names the provider asks Paths for.
	EnvFile   = ".env"
	ConfigDir = "@config"
)

// Paths resolves well-known path names to filesystem paths.
type Paths interface {
	Path(name string) string
}

// Container accepts lazy singleton bindings and aliases.
type Container interface {
	Singleton(name string, factory func() (any, error))
	Alias(alias, target string)
}

// Resolver builds bound instances by name.
type Resolver interface {
	Make(name string) (any, error)
}

// StaticPaths maps path names directly to paths. Unknown names resolve to "".
type StaticPaths map[string]string

// Path returns the path registered for name.
func (s StaticPaths) Path(name string) string {
	return s[name]
}

// DirPaths places the .env file in Root and resolves the config directory
// relative to Root unless ConfigDir is absolute.
type DirPaths struct {
	Root      string
	ConfigDir string
}

// Path resolves EnvFile and ConfigDir; any other name yields "".
func (d DirPaths) Path(name string) string {
	switch name {
	case EnvFile:
		return filepath.Join(d.Root, ".env")
	case ConfigDir:
		dir := d.ConfigDir
		if dir == "" {
			dir = "config"
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(d.Root, dir)
	}
	return ""
}

// ConfigProvider registers the configuration repository.
type ConfigProvider struct {
	Paths       Paths
	EnvOptions  dotenv.Options
	RepoOptions []dotconf.Option
	Logger      *zap.Logger

	// Env is set once the repository has been built and exposes the parsed
	// .env values.
	Env *dotenv.Parser
}

// Register binds the repository as a lazy singleton under Name and aliases
// AliasName to it.
func (p *ConfigProvider) Register(c Container) {
	c.Singleton(Name, p.build)
	c.Alias(AliasName, Name)
}

func (p *ConfigProvider) build() (any, error) {
	if p.Paths == nil {
		return nil, fmt.Errorf("config provider: no paths configured")
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append([]dotconf.Option{dotconf.WithLogger(logger)}, p.RepoOptions...)
	repo := dotconf.New(nil, opts...)

	envOpts := p.EnvOptions
	if envOpts.Logger == nil {
		envOpts.Logger = logger
	}
	p.Env = dotenv.New(envOpts)
	if envPath := p.Paths.Path(EnvFile); envPath != "" {
		if p.Env.Load(envPath) {
			logger.Debug("loaded env file", zap.String("path", envPath), zap.Int("keys", len(p.Env.All())))
		}
	}

	if dir := p.Paths.Path(ConfigDir); dir != "" {
		repo.LoadDirectory(dir)
	}
	return repo, nil
}

// Resolve makes name and asserts the result is a repository.
func Resolve(c Resolver, name string) (*dotconf.Repository, error) {
	v, err := c.Make(name)
	if err != nil {
		return nil, err
	}
	repo, ok := v.(*dotconf.Repository)
	if !ok {
		return nil, fmt.Errorf("resolve %q: got %T, want *dotconf.Repository", name, v)
	}
	return repo, nil
}
