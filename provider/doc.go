// Package provider registers a dotconf.Repository with a service container.
//
// The registered factory is lazy: nothing is read from disk until the
// repository is first resolved. On that first resolution the provider loads
// the optional .env file into the environment, then reads every supported
// fragment in the configuration directory.
//
// Example:
//
//	c := container.New()
//	p := &provider.ConfigProvider{
//		Paths: provider.DirPaths{Root: ".", ConfigDir: "config"},
//	}
//	p.Register(c)
//
//	repo, err := provider.Resolve(c, "config")
package provider
