// Package ansi provides the base ANSI SQL dialect.
//
// Unquoted identifiers fold to lower case and no date function classes are
// declared beyond the generic names every dialect recognises.
package ansi

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// Reserved lists the SQL:2016 reserved words most likely to collide with
// identifiers. Other dialects extend it.
var Reserved = []string{
	"ALL", "AND", "ANY", "AS", "ASC", "BETWEEN", "BY", "CASE", "CAST", "CHECK",
	"COLUMN", "CONSTRAINT", "CREATE", "CROSS", "CURRENT_DATE", "CURRENT_TIME",
	"CURRENT_TIMESTAMP", "CURRENT_USER", "DEFAULT", "DELETE", "DESC", "DISTINCT",
	"DROP", "ELSE", "END", "ESCAPE", "EXCEPT", "EXISTS", "FALSE", "FETCH", "FOR",
	"FOREIGN", "FROM", "FULL", "GRANT", "GROUP", "HAVING", "IN", "INNER", "INSERT",
	"INTERSECT", "INTERVAL", "INTO", "IS", "JOIN", "LEFT", "LIKE", "NATURAL", "NOT",
	"NULL", "OF", "ON", "OR", "ORDER", "OUTER", "PRIMARY", "REFERENCES", "RIGHT",
	"SELECT", "SET", "TABLE", "THEN", "TO", "TRUE", "UNION", "UNIQUE", "UPDATE",
	"USER", "USING", "VALUES", "WHEN", "WHERE", "WITH",
}

// Config is the ANSI dialect configuration.
var Config = &core.DialectConfig{
	Name: "ansi",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormLowercase,
	},
	Reserved: Reserved,
	TypeAliases: map[string]string{
		"INT":     "INTEGER",
		"NUMERIC": "DECIMAL",
		"DEC":     "DECIMAL",
	},
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.New(Config).Build()
