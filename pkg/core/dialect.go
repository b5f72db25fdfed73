package core

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (default SQL behavior).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Oracle).
	NormUppercase
	// NormCaseSensitive preserves identifier case exactly.
	NormCaseSensitive
	// NormCaseInsensitive folds every identifier, quoted or not, to lowercase (Trino).
	NormCaseInsensitive
)

// String returns the strategy name.
func (s NormalizationStrategy) String() string {
	switch s {
	case NormLowercase:
		return "lowercase"
	case NormUppercase:
		return "uppercase"
	case NormCaseSensitive:
		return "case-sensitive"
	case NormCaseInsensitive:
		return "case-insensitive"
	default:
		return "unknown"
	}
}

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string                // Quote character: ", `, [
	QuoteEnd      string                // End quote character (usually same as Quote, ] for [)
	Escape        string                // Escape sequence: "", ``, ]]
	Normalization NormalizationStrategy // How to normalize unquoted identifiers
}

// DialectConfig holds the static configuration for a SQL dialect.
// The runtime behavior lives in pkg/dialect.Dialect, which is built from it.
type DialectConfig struct {
	// Name is the dialect identifier (e.g., "oracle", "trino")
	Name string

	// Identifiers defines quoting and normalization rules
	Identifiers IdentifierConfig

	// Function classes recognised by the canonicalizer (upper-case names)
	DateParse   []string // TO_TIMESTAMP, DATE_PARSE, ...
	DateConvert []string // TO_DATE, DATE, ...

	// Reserved words that must be quoted when used as identifiers
	Reserved []string

	// FetchFirst prints row limits as FETCH FIRST n ROWS ONLY instead of LIMIT n
	FetchFirst bool

	// SlashTerminator accepts a line holding only / as a statement separator (SQL*Plus)
	SlashTerminator bool

	// TypeAliases maps dialect type names to the canonical spelling (VARCHAR2 -> VARCHAR)
	TypeAliases map[string]string
}
