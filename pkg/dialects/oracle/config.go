// Package oracle provides the Oracle SQL dialect definition.
package oracle

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialects/ansi"
)

// Config is the Oracle dialect configuration.
// Oracle folds unquoted identifiers to upper case.
var Config = &core.DialectConfig{
	Name: "oracle",
	Identifiers: core.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: core.NormUppercase,
	},
	FetchFirst:      true,
	SlashTerminator: true,
	DateParse:       []string{"TO_TIMESTAMP"},
	DateConvert:     []string{"TO_DATE"},
	Reserved: append(append([]string{}, ansi.Reserved...),
		"ACCESS", "AUDIT", "CLUSTER", "COMMENT", "COMPRESS", "CONNECT", "EXCLUSIVE",
		"FILE", "IDENTIFIED", "IMMEDIATE", "INCREMENT", "INDEX", "INITIAL", "LEVEL",
		"LOCK", "LONG", "MAXEXTENTS", "MINUS", "MODE", "MODIFY", "NOAUDIT", "NOCOMPRESS",
		"NOWAIT", "NUMBER", "OFFLINE", "ONLINE", "PCTFREE", "PRIOR", "RAW", "RENAME",
		"RESOURCE", "ROW", "ROWID", "ROWNUM", "ROWS", "SESSION", "SHARE", "SIZE",
		"START", "SUCCESSFUL", "SYNONYM", "SYSDATE", "TRIGGER", "UID", "VALIDATE",
		"VARCHAR2", "VIEW", "WHENEVER",
	),
	TypeAliases: map[string]string{
		"INT":     "INTEGER",
		"NUMERIC": "DECIMAL",
		"DEC":     "DECIMAL",
	},
}
