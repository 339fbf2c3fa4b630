// Package dotconf provides a dot-notation configuration repository with
// best-effort typed accessors, directory loading of per-topic config files,
// provenance tracking, dumps and snapshots.
//
// Quick Start:
//
//	repo := dotconf.New(nil, dotconf.WithLogger(logger))
//	repo.LoadDirectory("config") // config/app.yaml → "app", config/cache.toml → "cache"
//
//	name := repo.String("app.name", "demo")
//	debug := repo.Bool("app.debug", false)
//	repo.Set("cache.redis.port", 6380)
//
// Loading never fails: missing directories are ignored, undecodable or
// non-container files are skipped and reported through Err and the logger.
//
// The .env side lives in package dotenv; package provider wires both into a
// dependency container.
package dotconf
