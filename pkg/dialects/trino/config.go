// Package trino provides the Trino SQL dialect definition.
package trino

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/ansi"
)

// Config is the Trino dialect configuration.
// Trino identifiers are case-insensitive, quoted or not.
var Config = &core.DialectConfig{
	Name: "trino",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormCaseInsensitive,
	},
	DateParse:   []string{"DATE_PARSE", "PARSE_DATETIME"},
	DateConvert: []string{"DATE", "TO_DATE"},
	Reserved: append(append([]string{}, ansi.Reserved...),
		"CUBE", "DEALLOCATE", "DESCRIBE", "EXECUTE", "EXTRACT", "GROUPING",
		"LISTAGG", "LOCALTIME", "LOCALTIMESTAMP", "NORMALIZE", "PREPARE",
		"RECURSIVE", "ROLLUP", "SKIP", "TRIM", "UESCAPE", "UNNEST",
	),
	TypeAliases: map[string]string{
		"INT":     "INTEGER",
		"NUMERIC": "DECIMAL",
		"DEC":     "DECIMAL",
	},
}
