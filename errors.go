package dotconf

import (
	"errors"
	"fmt"
	"strings"
)

// Warning codes for files skipped by LoadDirectory.
const (
	WarnDecode       = "decode"
	WarnNotContainer = "not_container"
	WarnUnreadable   = "unreadable"
)

// ErrNilRepository is returned when a nil repository is dumped or snapshotted.
var ErrNilRepository = errors.New("dotconf: repository is nil")

// LoadError aggregates the warnings collected while loading configuration.
// It never stops a load; Repository.Err exposes it after the fact.
type LoadError struct {
	Warnings []Warning
}

// Error formats warnings as a multi-line message.
func (e *LoadError) Error() string {
	if len(e.Warnings) == 0 {
		return "config load degraded: no warnings"
	}

	var b strings.Builder
	if len(e.Warnings) == 1 {
		b.WriteString("config load degraded: 1 warning\n")
	} else {
		fmt.Fprintf(&b, "config load degraded: %d warnings\n", len(e.Warnings))
	}

	for _, w := range e.Warnings {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", w.Path, w.Code, w.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// Warning describes a single file that could not contribute configuration.
type Warning struct {
	Path    string // File or directory path
	Code    string // Warning code (e.g., "decode", "not_container")
	Message string // Human-readable description
}
