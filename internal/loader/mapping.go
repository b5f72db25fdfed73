package loader

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/sqlequiv/pkg/normalize"
)

// ErrQualifiedKey is returned for mapping keys that contain a dot.
var ErrQualifiedKey = errors.New("mapping keys must be unqualified table names")

// LoadMappingFile reads a YAML mapping file. See ParseMapping for the
// accepted layouts.
func LoadMappingFile(path string) (*normalize.Mapping, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}
	m, err := ParseMapping(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}
	return m, nil
}

// ParseMapping decodes a mapping document. Entries keep their document
// order. Accepted layouts, optionally nested under a top-level "mapping"
// key:
//
//	sales: lake.default.sales
//
//	- from: sales
//	  to: lake.default.sales
func ParseMapping(data []byte) (*normalize.Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := normalize.NewMapping()
	if len(doc.Content) == 0 {
		return m, nil
	}
	root := doc.Content[0]
	if nested := lookupKey(root, "mapping"); nested != nil {
		root = nested
	}

	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			key, value := root.Content[i], root.Content[i+1]
			if err := addEntry(m, key.Value, value); err != nil {
				return nil, fmt.Errorf("line %d: %w", key.Line, err)
			}
		}

	case yaml.SequenceNode:
		for _, item := range root.Content {
			var pair map[string]any
			if err := item.Decode(&pair); err != nil {
				return nil, fmt.Errorf("line %d: expected a {from, to} entry: %w", item.Line, err)
			}
			from, err := cast.ToStringE(pair["from"])
			if err != nil || from == "" {
				return nil, fmt.Errorf("line %d: entry is missing \"from\"", item.Line)
			}
			to, err := cast.ToStringE(pair["to"])
			if err != nil || to == "" {
				return nil, fmt.Errorf("line %d: entry for %q is missing \"to\"", item.Line, from)
			}
			if err := setEntry(m, from, to); err != nil {
				return nil, fmt.Errorf("line %d: %w", item.Line, err)
			}
		}

	case yaml.ScalarNode:
		if root.Tag != "!!null" {
			return nil, fmt.Errorf("line %d: expected a map or a list of {from, to} entries", root.Line)
		}

	default:
		return nil, fmt.Errorf("line %d: expected a map or a list of {from, to} entries", root.Line)
	}
	return m, nil
}

// FromMap builds a mapping from an unordered map, such as an inline
// mapping in the config file. Entries are sorted by key.
func FromMap(values map[string]any) (*normalize.Mapping, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := normalize.NewMapping()
	for _, k := range keys {
		v, err := cast.ToStringE(values[k])
		if err != nil {
			return nil, fmt.Errorf("mapping for %q: %w", k, err)
		}
		if err := setEntry(m, k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ParsePairs parses key=value strings, as given by repeated --map flags,
// into m. Later pairs replace earlier ones with the same key.
func ParsePairs(m *normalize.Mapping, pairs []string) error {
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			return fmt.Errorf("invalid mapping %q: expected key=value", p)
		}
		if err := setEntry(m, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

// Merge returns a mapping with the entries of base followed by those of
// override; keys present in both take the override value in base's position.
func Merge(base, override *normalize.Mapping) *normalize.Mapping {
	out := normalize.NewMapping(base.Entries()...)
	for _, e := range override.Entries() {
		out.Set(e.Key, e.Value)
	}
	return out
}

func addEntry(m *normalize.Mapping, key string, value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	v, err := cast.ToStringE(raw)
	if err != nil || value.Kind != yaml.ScalarNode {
		return fmt.Errorf("mapping for %q must be a table name", key)
	}
	return setEntry(m, key, v)
}

func setEntry(m *normalize.Mapping, key, value string) error {
	if key == "" {
		return errors.New("mapping key is empty")
	}
	if strings.Contains(key, ".") {
		return fmt.Errorf("%w: %q", ErrQualifiedKey, key)
	}
	if value == "" {
		return fmt.Errorf("mapping for %q is empty", key)
	}
	m.Set(key, value)
	return nil
}

func lookupKey(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}
