package dotenv

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// maxLineSize bounds a single .env line.
const maxLineSize = 1024 * 1024

var (
	doubleQuoted = regexp.MustCompile(`^"(.*)"\s*(#.*)?$`)
	singleQuoted = regexp.MustCompile(`^'(.*)'\s*(#.*)?$`)

	// escapes are applied one after another, in this order, so an escaped
	// backslash followed by n still becomes a backslash and a newline.
	escapes = [][2]string{
		{`\n`, "\n"},
		{`\r`, "\r"},
		{`\t`, "\t"},
		{`\"`, `"`},
		{`\\`, `\`},
	}
)

func unescape(s string) string {
	for _, e := range escapes {
		s = strings.ReplaceAll(s, e[0], e[1])
	}
	return s
}

// Options configures where parsed values are mirrored.
type Options struct {
	// SetEnv mirrors every parsed value into Table.
	SetEnv bool

	// Putenv mirrors every parsed value into OS.
	Putenv bool

	// Table is the mirror target for SetEnv. Default: Process.
	Table Environment

	// OS is the mirror target for Putenv. Default: OSEnv().
	OS Environment

	// Logger receives skipped-line and mirroring warnings. Default: no-op.
	Logger *zap.Logger
}

// DefaultOptions mirrors into the Process table only.
func DefaultOptions() Options {
	return Options{SetEnv: true}
}

// Parser accumulates values from one or more .env files. Later lines and
// later files overwrite earlier values with the same name.
type Parser struct {
	values map[string]string
	opts   Options
	logger *zap.Logger
}

// New creates a parser. Nil environments in opts fall back to the defaults.
func New(opts Options) *Parser {
	if opts.Table == nil {
		opts.Table = Process
	}
	if opts.OS == nil {
		opts.OS = OSEnv()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		values: make(map[string]string),
		opts:   opts,
		logger: logger,
	}
}

// Load parses the file at path. It returns false, leaving the parser
// untouched, when the path is missing, is not a regular file or cannot be read.
func (p *Parser) Load(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Debug("env file unreadable", zap.String("path", path), zap.Error(err))
		return false
	}

	if err := p.parse(bytes.NewReader(data), path); err != nil {
		p.logger.Warn("env file partially parsed", zap.String("path", path), zap.Error(err))
	}
	return true
}

// Parse reads .env lines from r. It only fails when reading fails; lines
// parsed before the failure are kept.
func (p *Parser) Parse(r io.Reader) error {
	return p.parse(r, "reader")
}

func (p *Parser) parse(r io.Reader, origin string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		p.parseLine(scanner.Text(), origin, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s after line %d: %w", origin, lineNo, err)
	}
	return nil
}

func (p *Parser) parseLine(line, origin string, lineNo int) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	name, raw, ok := strings.Cut(line, "=")
	if !ok {
		p.logger.Debug("skipping line without '='", zap.String("origin", origin), zap.Int("line", lineNo))
		return
	}

	name = strings.TrimSpace(name)
	value := parseValue(strings.TrimSpace(raw))

	p.values[name] = value

	if p.opts.SetEnv {
		p.mirror(p.opts.Table, name, value)
	}
	if p.opts.Putenv {
		p.mirror(p.opts.OS, name, value)
	}
}

func (p *Parser) mirror(env Environment, name, value string) {
	if err := env.Set(name, value); err != nil {
		p.logger.Warn("mirroring env value failed", zap.String("name", name), zap.Error(err))
	}
}

// parseValue applies the quoting, comment and special-token rules to a
// trimmed raw value.
func parseValue(value string) string {
	if m := doubleQuoted.FindStringSubmatch(value); m != nil {
		return unescape(m[1])
	}

	if m := singleQuoted.FindStringSubmatch(value); m != nil {
		return m[1]
	}

	if before, _, found := strings.Cut(value, " #"); found {
		value = before
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "true", "(true)":
		return "true"
	case "false", "(false)":
		return "false"
	case "null", "(null)", "empty", "(empty)":
		return ""
	default:
		return value
	}
}

// Get returns the parsed value for key, or def.
func (p *Parser) Get(key, def string) string {
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

// Lookup returns the parsed value for key and whether it was parsed.
func (p *Parser) Lookup(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key was parsed.
func (p *Parser) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// All returns a copy of the parsed values.
func (p *Parser) All() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}
