package dotconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Azhovan/dotconf/internal/dotpath"
)

// MaxSnapshotSize is the maximum allowed snapshot size (100MB).
const MaxSnapshotSize = 100 * 1024 * 1024

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = "1.0"

// Snapshot errors.
var (
	// ErrSnapshotTooLarge is returned when a snapshot exceeds MaxSnapshotSize.
	ErrSnapshotTooLarge = errors.New("dotconf: snapshot exceeds 100MB size limit")

	// ErrNilSnapshot is returned when WriteSnapshot is given a nil snapshot.
	ErrNilSnapshot = errors.New("dotconf: snapshot is nil")

	// ErrUnsupportedVersion is returned when reading a snapshot with unknown version.
	ErrUnsupportedVersion = errors.New("dotconf: unsupported snapshot version")
)

// supportedVersions lists snapshot format versions that ReadSnapshot accepts.
var supportedVersions = map[string]bool{
	"1.0": true,
}

// ConfigSnapshot represents a point-in-time configuration capture.
type ConfigSnapshot struct {
	// Version is the snapshot format version (currently "1.0")
	Version string `json:"version"`

	// Timestamp is when the snapshot was created
	Timestamp time.Time `json:"timestamp"`

	// Config contains flattened configuration values with secrets redacted.
	// Keys are dot-notation paths (e.g., "database.host").
	Config map[string]any `json:"config"`

	// Provenance tracks the last writer of each top-level key.
	Provenance []KeyProvenance `json:"provenance"`
}

// SnapshotOption configures snapshot creation behavior.
type SnapshotOption func(*snapshotConfig)

// snapshotConfig holds internal configuration for snapshot creation.
type snapshotConfig struct {
	excludeFields []string // Paths to exclude
	secrets       []string // Paths to redact
}

// WithExcludeFields excludes specified paths (and everything beneath them)
// from the snapshot. Paths use dot notation (e.g., "database.password").
func WithExcludeFields(paths ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.excludeFields = append(cfg.excludeFields, paths...)
	}
}

// WithSnapshotSecrets redacts specified paths in the snapshot.
func WithSnapshotSecrets(paths ...string) SnapshotOption {
	return func(cfg *snapshotConfig) {
		cfg.secrets = append(cfg.secrets, paths...)
	}
}

// CreateSnapshot captures the current repository state.
// Returns a snapshot with flattened config, provenance, and metadata.
// The snapshot's Timestamp is captured at creation time.
func CreateSnapshot(r *Repository, opts ...SnapshotOption) (*ConfigSnapshot, error) {
	if r == nil {
		return nil, ErrNilRepository
	}

	snapCfg := &snapshotConfig{}
	for _, opt := range opts {
		opt(snapCfg)
	}

	timestamp := time.Now().UTC()

	flat := dotpath.Flatten(r.All())
	for key := range flat {
		if isSecret(key, snapCfg.secrets) {
			flat[key] = Redacted
		}
	}
	flat = applyExclusions(flat, snapCfg.excludeFields)

	return &ConfigSnapshot{
		Version:    SnapshotVersion,
		Timestamp:  timestamp,
		Config:     flat,
		Provenance: r.Provenance().Keys,
	}, nil
}

// applyExclusions filters out excluded paths from the config map.
// Matching is case-insensitive.
func applyExclusions(config map[string]any, exclude []string) map[string]any {
	if len(exclude) == 0 {
		return config
	}

	result := make(map[string]any)
	for key, value := range config {
		if !isSecret(key, exclude) {
			result[key] = value
		}
	}
	return result
}

// ExpandPath expands template variables using current time.
// For consistency with snapshot metadata, prefer WriteSnapshot which
// uses the snapshot's internal timestamp for expansion.
func ExpandPath(template string) string {
	return ExpandPathWithTime(template, time.Now())
}

// ExpandPathWithTime expands template variables using the provided timestamp.
// Replaces all {{timestamp}} occurrences with the time formatted as 20060102-150405.
func ExpandPathWithTime(template string, t time.Time) string {
	timestamp := t.UTC().Format("20060102-150405")
	return strings.ReplaceAll(template, "{{timestamp}}", timestamp)
}

// WriteSnapshot stores snapshot as indented JSON at pathTemplate, with
// {{timestamp}} expanded from snapshot.Timestamp so the file name matches the
// metadata. It returns the expanded path. Parent directories are created
// 0700 and the file is replaced atomically with mode 0600.
func WriteSnapshot(snapshot *ConfigSnapshot, pathTemplate string) (string, error) {
	if snapshot == nil {
		return "", ErrNilSnapshot
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	if len(data) > MaxSnapshotSize {
		return "", ErrSnapshotTooLarge
	}

	path := ExpandPathWithTime(pathTemplate, snapshot.Timestamp)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := replaceFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// replaceFile writes data to a private temp file beside path and renames it
// over path. The temp file is removed if any step fails.
func replaceFile(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot into place: %w", err)
	}
	return nil
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*ConfigSnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxSnapshotSize {
		return nil, ErrSnapshotTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var snapshot ConfigSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if !supportedVersions[snapshot.Version] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, snapshot.Version)
	}
	return &snapshot, nil
}
