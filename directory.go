package ecolocator

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DropOffPoint is a physical location accepting donated plastic bottles and bricks.
type DropOffPoint struct {
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address" yaml:"address"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
	Phone   string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// Validate returns an error if the point contains invalid fields.
func (p *DropOffPoint) Validate() error {
	if strings.TrimSpace(p.Address) == "" {
		return Errorf(EINVALID, "drop-off point %q address required", p.Name)
	}
	return nil
}

// DirectoryEntry groups the drop-off points known for one place.
// City is the normalized match key; Zone is the label shown to users.
type DirectoryEntry struct {
	City   string         `json:"city" yaml:"city"`
	Zone   string         `json:"zone" yaml:"zone"`
	Points []DropOffPoint `json:"points" yaml:"points"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *DirectoryEntry) Validate() error {
	if e.City == "" {
		return Errorf(EINVALID, "directory entry city required")
	}
	if key, err := Normalize(e.City); err != nil || key != e.City {
		return Errorf(EINVALID, "directory entry city %q must be trimmed and lower-case", e.City)
	}
	if len(e.Points) == 0 {
		return Errorf(EINVALID, "directory entry %q has no drop-off points", e.City)
	}
	for i := range e.Points {
		if err := e.Points[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Directory is the local gazetteer of known places.
type Directory interface {
	// Lookup returns the first entry, in declaration order, whose city key
	// contains the normalized query or is contained by it.
	Lookup(query string) (*DirectoryEntry, bool)

	// Len returns the number of loaded entries.
	Len() int
}

// Ensure StaticDirectory implements Directory at compile time.
var _ Directory = (*StaticDirectory)(nil)

// StaticDirectory is an immutable, in-memory Directory, safe for concurrent use.
type StaticDirectory struct {
	entries []DirectoryEntry
	keys    []string // folded city keys, parallel to entries
}

// NewStaticDirectory validates and copies entries into a new StaticDirectory.
// Declaration order is preserved and decides which entry wins a lookup.
func NewStaticDirectory(entries []DirectoryEntry) (*StaticDirectory, error) {
	d := &StaticDirectory{
		entries: make([]DirectoryEntry, 0, len(entries)),
		keys:    make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		e.Points = slices.Clone(e.Points)
		d.entries = append(d.entries, e)
		d.keys = append(d.keys, foldDiacritics(e.City))
	}
	return d, nil
}

// Lookup implements Directory using a bidirectional substring test.
// Diacritics are ignored on both sides, so "vicente lópez" finds "vicente lopez".
func (d *StaticDirectory) Lookup(query string) (*DirectoryEntry, bool) {
	q := foldDiacritics(query)
	if q == "" {
		return nil, false
	}
	for i, key := range d.keys {
		if strings.Contains(q, key) || strings.Contains(key, q) {
			e := d.entries[i]
			e.Points = slices.Clone(e.Points)
			return &e, true
		}
	}
	return nil, false
}

// Len implements Directory.
func (d *StaticDirectory) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the directory contents in declaration order.
func (d *StaticDirectory) Entries() []DirectoryEntry {
	out := make([]DirectoryEntry, len(d.entries))
	for i, e := range d.entries {
		e.Points = slices.Clone(e.Points)
		out[i] = e
	}
	return out
}

// foldDiacritics strips combining marks. transform.Chain is stateful, so
// each call builds its own.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
