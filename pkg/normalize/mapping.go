package normalize

import (
	"fmt"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
)

// MappingEntry maps an unqualified base table name to its replacement,
// a [catalog.][schema.]name reference.
type MappingEntry struct {
	Key   string
	Value string
}

// Mapping is an ordered table name mapping. Lookups compare the key and the
// table's base name after folding both with the dialect's identifier rules.
//
// A Mapping is safe for concurrent use. Replacement values are parsed once
// per dialect and cached.
type Mapping struct {
	mu      sync.Mutex
	entries []MappingEntry
	parsed  map[string]parsedRef
}

type parsedRef struct {
	ref *core.TableName
	err error
}

// NewMapping creates a mapping from entries. A later entry with the same
// key replaces an earlier one in place.
func NewMapping(entries ...MappingEntry) *Mapping {
	m := &Mapping{}
	for _, e := range entries {
		m.Set(e.Key, e.Value)
	}
	return m
}

// Set adds or replaces an entry, keeping the position of an existing key.
func (m *Mapping) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key = strings.TrimSpace(key)
	for i := range m.entries {
		if m.entries[i].Key == key {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, MappingEntry{Key: key, Value: value})
}

// Entries returns the entries in insertion order.
func (m *Mapping) Entries() []MappingEntry {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MappingEntry(nil), m.entries...)
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Lookup returns the entry whose key matches name under d's identifier
// rules. Keys are unquoted text.
func (m *Mapping) Lookup(name core.Ident, d *dialect.Dialect) (MappingEntry, bool) {
	if m == nil {
		return MappingEntry{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	want := d.FoldIdent(name)
	for _, e := range m.entries {
		if d.FoldIdent(core.Ident{Name: e.Key}) == want {
			return e, true
		}
	}
	return MappingEntry{}, false
}

// resolve parses an entry's value, caching the result per dialect.
func (m *Mapping) resolve(e MappingEntry, d *dialect.Dialect) (*core.TableName, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cacheKey := d.Name + "\x00" + e.Value
	if p, ok := m.parsed[cacheKey]; ok {
		return p.ref, p.err
	}
	ref, err := parser.ParseTableRef(e.Value, d)
	if err != nil {
		err = &MappingParseError{Key: e.Key, Value: e.Value, Err: err}
	}
	if m.parsed == nil {
		m.parsed = make(map[string]parsedRef)
	}
	m.parsed[cacheKey] = parsedRef{ref: ref, err: err}
	return ref, err
}

// MappingParseError reports a mapping value that is not a valid table
// reference.
type MappingParseError struct {
	Key   string
	Value string
	Err   error
}

func (e *MappingParseError) Error() string {
	return fmt.Sprintf("invalid mapping for %q: cannot parse %q as a table reference: %v", e.Key, e.Value, e.Err)
}

func (e *MappingParseError) Unwrap() error {
	return e.Err
}

// Remap replaces the catalog, schema and name of every table reference whose
// base name has a mapping entry. Aliases are kept, and column qualifiers
// are left alone.
func Remap(n core.Node, m *Mapping, d *dialect.Dialect) (core.Node, error) {
	if m.Len() == 0 {
		return n, nil
	}

	var firstErr error
	out := rewrite.Transform(n, func(node, _ core.Node) core.Node {
		tn, ok := node.(*core.TableName)
		if !ok || firstErr != nil {
			return node
		}
		entry, ok := m.Lookup(tn.Name, d)
		if !ok {
			return node
		}
		ref, err := m.resolve(entry, d)
		if err != nil {
			firstErr = err
			return node
		}
		cp := *tn
		cp.Catalog, cp.Schema, cp.Name = ref.Catalog, ref.Schema, ref.Name
		return &cp
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}
