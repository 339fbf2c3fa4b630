// Command confctl inspects a project's dotted configuration: the .env file
// plus every fragment in the configuration directory.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/Azhovan/dotconf"
	"github.com/Azhovan/dotconf/dotenv"
	"github.com/Azhovan/dotconf/internal/container"
	"github.com/Azhovan/dotconf/internal/logging"
	"github.com/Azhovan/dotconf/provider"
)

var errKeyNotFound = errors.New("key not found")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "confctl: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "dotconf")
}

func run(args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("confctl", "Inspect dotted configuration loaded from .env and config fragments")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	envFile := app.Flag("env-file", "Path to the .env file").Envar("DOTCONF_ENV_FILE").Default(".env").String()
	configDir := app.Flag("config-dir", "Directory of YAML, TOML and JSON fragments").Envar("DOTCONF_CONFIG_DIR").Default(defaultConfigDir()).String()
	logLevel := app.Flag("log-level", "Log level").Default("warn").Enum("debug", "info", "warn", "error")
	logFormat := app.Flag("log-format", "Log output format").Default("console").Enum("json", "console")

	getCmd := app.Command("get", "Print the value at a dotted key")
	getKey := getCmd.Arg("key", "Dotted key, e.g. database.host").Required().String()
	var getDefaultSet bool
	getDefault := getCmd.Flag("default", "Value printed when the key is missing").IsSetByUser(&getDefaultSet).String()
	getType := getCmd.Flag("type", "Cast the value before printing").Default("string").Enum("string", "int", "float", "bool")

	dumpCmd := app.Command("dump", "Print the whole configuration")
	dumpJSON := dumpCmd.Flag("json", "Print JSON instead of key: value lines").Bool()
	dumpSources := dumpCmd.Flag("sources", "Annotate values with where they came from").Bool()
	dumpSecrets := dumpCmd.Flag("secret", "Dotted path to redact (repeatable)").Strings()

	snapCmd := app.Command("snapshot", "Write a JSON snapshot of the configuration")
	snapPath := snapCmd.Arg("path-template", "Destination path; {{timestamp}} is expanded").Required().String()
	snapExclude := snapCmd.Flag("exclude", "Dotted path to leave out (repeatable)").Strings()
	snapSecrets := snapCmd.Flag("secret", "Dotted path to redact (repeatable)").Strings()

	envCmd := app.Command("env", "Print an environment value after loading the .env file")
	envKey := envCmd.Arg("key", "Variable name").Required().String()
	envDefault := envCmd.Flag("default", "Value printed when the variable is unset").String()

	exportCmd := app.Command("export", "Print the parsed .env file in canonical form")

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(*logLevel, *logFormat)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	c := container.New()
	envOpts := dotenv.DefaultOptions()
	envOpts.Logger = logger
	p := &provider.ConfigProvider{
		Paths: provider.StaticPaths{
			provider.EnvFile:   *envFile,
			provider.ConfigDir: *configDir,
		},
		EnvOptions: envOpts,
		Logger:     logger,
	}
	p.Register(c)

	repo, err := provider.Resolve(c, provider.AliasName)
	if err != nil {
		return err
	}
	if loadErr := repo.Err(); loadErr != nil {
		logger.Warn("configuration loaded with warnings", zap.Error(loadErr))
	}

	switch command {
	case getCmd.FullCommand():
		return runGet(stdout, repo, *getKey, *getType, *getDefault, getDefaultSet)

	case dumpCmd.FullCommand():
		opts := []dotconf.DumpOption{dotconf.WithSecrets(*dumpSecrets...)}
		if *dumpJSON {
			opts = append(opts, dotconf.AsJSON())
		}
		if *dumpSources {
			opts = append(opts, dotconf.WithSources())
		}
		return dotconf.Dump(stdout, repo, opts...)

	case snapCmd.FullCommand():
		snap, err := dotconf.CreateSnapshot(repo,
			dotconf.WithExcludeFields(*snapExclude...),
			dotconf.WithSnapshotSecrets(*snapSecrets...))
		if err != nil {
			return err
		}
		path, err := dotconf.WriteSnapshot(snap, *snapPath)
		if err != nil {
			return err
		}
		logger.Info("snapshot written", zap.String("path", path))
		_, err = fmt.Fprintln(stdout, path)
		return err

	case envCmd.FullCommand():
		_, err := fmt.Fprintln(stdout, dotenv.Env(*envKey, *envDefault))
		return err

	case exportCmd.FullCommand():
		out, err := p.Env.Marshal()
		if err != nil {
			return err
		}
		if out == "" {
			return nil
		}
		_, err = fmt.Fprintln(stdout, out)
		return err
	}

	return fmt.Errorf("unknown command %q", command)
}

func runGet(w io.Writer, repo *dotconf.Repository, key, typ, def string, hasDefault bool) error {
	if !repo.Has(key) {
		if !hasDefault {
			return fmt.Errorf("%w: %s", errKeyNotFound, key)
		}
		_, err := fmt.Fprintln(w, def)
		return err
	}

	var out string
	switch typ {
	case "int":
		out = strconv.Itoa(repo.Int(key, 0))
	case "float":
		out = strconv.FormatFloat(repo.Float(key, 0), 'f', -1, 64)
	case "bool":
		out = strconv.FormatBool(repo.Bool(key, false))
	default:
		v := repo.Get(key, nil)
		if dotconf.KindOf(v).IsContainer() {
			data, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("json marshal error: %w", err)
			}
			out = string(data)
		} else {
			out = repo.String(key, "")
		}
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
