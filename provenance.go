package dotconf

import "github.com/Azhovan/dotconf/internal/dotpath"

// Source names recorded in provenance.
const (
	SourceInitial    = "initial"
	SourceSet        = "set"
	SourceMerge      = "merge"
	SourceFilePrefix = "file:"
)

// Provenance contains the last writer of each top-level key.
type Provenance struct {
	Keys []KeyProvenance
}

// KeyProvenance describes where a top-level key's value came from.
type KeyProvenance struct {
	Key        string `json:"key"`    // Top-level key (e.g., "database")
	SourceName string `json:"source"` // Writer (e.g., "file:database.yaml", "set")
}

// Provenance returns a point-in-time copy sorted by key.
func (r *Repository) Provenance() *Provenance {
	keys := dotpath.SortedKeys(r.sources)
	prov := &Provenance{Keys: make([]KeyProvenance, 0, len(keys))}
	for _, key := range keys {
		prov.Keys = append(prov.Keys, KeyProvenance{Key: key, SourceName: r.sources[key]})
	}
	return prov
}

// Source returns the writer of the top-level key addressed by path.
func (p *Provenance) Source(path string) (string, bool) {
	if p == nil {
		return "", false
	}
	top := dotpath.Top(path)
	for _, kp := range p.Keys {
		if kp.Key == top {
			return kp.SourceName, true
		}
	}
	return "", false
}
