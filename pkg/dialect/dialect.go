// Package dialect provides SQL dialect configuration: identifier folding and
// quoting, reserved words, the date function classes used by the
// canonicalizer, and type-name aliases.
//
// Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
)

// Function names recognised in every dialect regardless of its own classes.
const (
	GenericDateParse   = "STR_TO_TIME"
	GenericDateConvert = "TO_DATE"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers core.IdentifierConfig

	// FetchFirst prints row limits as FETCH FIRST n ROWS ONLY.
	FetchFirst bool
	// SlashTerminator accepts a lone / as a statement separator.
	SlashTerminator bool

	reservedWords map[string]struct{} // upper-case
	dateParse     map[string]struct{} // upper-case
	dateConvert   map[string]struct{} // upper-case
	typeAliases   map[string]string   // upper-case -> canonical
}

// Config returns the pure data configuration for this dialect.
func (d *Dialect) Config() *core.DialectConfig {
	aliases := make(map[string]string, len(d.typeAliases))
	for k, v := range d.typeAliases {
		aliases[k] = v
	}
	return &core.DialectConfig{
		Name:        d.Name,
		Identifiers: d.Identifiers,
		DateParse:   sortedKeys(d.dateParse),
		DateConvert: sortedKeys(d.dateConvert),
		Reserved:    sortedKeys(d.reservedWords),
		TypeAliases: aliases,

		FetchFirst:      d.FetchFirst,
		SlashTerminator: d.SlashTerminator,
	}
}

// NormalizeName normalizes an unquoted identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case core.NormUppercase:
		return cases.Upper(language.Und).String(name)
	case core.NormLowercase, core.NormCaseInsensitive:
		return cases.Lower(language.Und).String(name)
	default: // NormCaseSensitive
		return name
	}
}

// FoldIdent returns the comparison key of an identifier: quoted identifiers
// keep their case unless the dialect is case-insensitive.
func (d *Dialect) FoldIdent(id core.Ident) string {
	if id.Quoted && d.Identifiers.Normalization != core.NormCaseInsensitive {
		return id.Name
	}
	return d.NormalizeName(id.Name)
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// NeedsQuoting reports whether a folded name must be quoted to read back as
// itself: it is not a plain bare word, is reserved, or would be re-folded to
// a different spelling.
func (d *Dialect) NeedsQuoting(name string) bool {
	if !isBareWord(name) || d.IsReservedWord(name) {
		return true
	}
	if d.Identifiers.Normalization == core.NormCaseInsensitive {
		return false
	}
	return d.NormalizeName(name) != name
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	// Escape any existing quote end characters in the name (e.g., " -> "")
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if NeedsQuoting reports so.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.NeedsQuoting(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

// IsDateParse reports whether fn parses a string into a timestamp.
func (d *Dialect) IsDateParse(fn string) bool {
	fn = strings.ToUpper(fn)
	if fn == GenericDateParse {
		return true
	}
	_, ok := d.dateParse[fn]
	return ok
}

// IsDateConvert reports whether fn converts a value into a DATE.
func (d *Dialect) IsDateConvert(fn string) bool {
	fn = strings.ToUpper(fn)
	if fn == GenericDateConvert {
		return true
	}
	_, ok := d.dateConvert[fn]
	return ok
}

// CanonicalType returns the canonical spelling of a type name.
func (d *Dialect) CanonicalType(name string) string {
	name = strings.ToUpper(name)
	if alias, ok := d.typeAliases[name]; ok {
		return alias
	}
	return name
}

// String returns the dialect name.
func (d *Dialect) String() string {
	return d.Name
}

func isBareWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '$' || r == '#'):
		default:
			return false
		}
	}
	return true
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name and ANSI
// identifier defaults.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name: name,
			Identifiers: core.IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: core.NormLowercase,
			},
			reservedWords: make(map[string]struct{}),
			dateParse:     make(map[string]struct{}),
			dateConvert:   make(map[string]struct{}),
			typeAliases:   make(map[string]string),
		},
	}
}

// New creates a dialect builder from a DialectConfig.
func New(cfg *core.DialectConfig) *Builder {
	b := NewDialect(cfg.Name)
	if cfg.Identifiers.Quote != "" {
		b.dialect.Identifiers = cfg.Identifiers
	} else {
		b.dialect.Identifiers.Normalization = cfg.Identifiers.Normalization
	}
	b.dialect.FetchFirst = cfg.FetchFirst
	b.dialect.SlashTerminator = cfg.SlashTerminator
	b.WithReservedWords(cfg.Reserved...).
		DateParse(cfg.DateParse...).
		DateConvert(cfg.DateConvert...)
	for from, to := range cfg.TypeAliases {
		b.TypeAlias(from, to)
	}
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm core.NormalizationStrategy) *Builder {
	b.dialect.Identifiers = core.IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// DateParse adds functions to the date-parse class.
func (b *Builder) DateParse(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.dateParse[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// DateConvert adds functions to the date-convert class.
func (b *Builder) DateConvert(funcs ...string) *Builder {
	for _, f := range funcs {
		b.dialect.dateConvert[strings.ToUpper(f)] = struct{}{}
	}
	return b
}

// TypeAlias maps a dialect type name to its canonical spelling.
func (b *Builder) TypeAlias(from, to string) *Builder {
	b.dialect.typeAliases[strings.ToUpper(from)] = strings.ToUpper(to)
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
