package format

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

func (p *Printer) formatCreateStmt(stmt *core.CreateStmt) {
	p.formatLeadingComments(&stmt.NodeInfo)

	p.kw(token.CREATE)
	if stmt.OrReplace {
		p.space()
		p.kw(token.OR)
		p.space()
		p.keyword("REPLACE")
	}
	if stmt.Global {
		p.space()
		p.keyword("GLOBAL")
	}
	if stmt.Temporary {
		p.space()
		p.keyword("TEMPORARY")
	}
	p.space()
	p.keyword(string(stmt.Object))
	if stmt.IfNotExists {
		p.space()
		p.keyword("IF")
		p.space()
		p.kw(token.NOT, token.EXISTS)
	}
	p.space()
	p.formatTableName(stmt.Name)

	if len(stmt.Columns) > 0 {
		p.space()
		p.write("(")
		p.writeln()
		p.indent()
		p.formatList(len(stmt.Columns), func(i int) { p.formatColumnDef(stmt.Columns[i]) }, ",", true)
		p.dedent()
		p.writeln()
		p.write(")")
	}

	p.formatProperties(stmt.Properties)

	if stmt.Query != nil {
		p.space()
		p.kw(token.AS)
		p.writeln()
		p.formatSelectStmt(stmt.Query)
	}

	p.formatTrailingComments(&stmt.NodeInfo)
}

func (p *Printer) formatColumnDef(col *core.ColumnDef) {
	p.formatLeadingComments(&col.NodeInfo)
	p.ident(col.Name)
	if col.Type.Name != "" {
		p.space()
		p.formatDataType(col.Type)
	}
	if col.Default != nil {
		p.space()
		p.keyword("DEFAULT")
		p.space()
		p.formatExpr(col.Default)
	}
	if col.NotNull {
		p.space()
		p.kw(token.NOT, token.NULL)
	}
	if col.PrimaryKey {
		p.space()
		p.keyword("PRIMARY KEY")
	}
	p.formatTrailingComments(&col.NodeInfo)
}

// formatProperties prints properties in order, merging consecutive
// key/value entries into one WITH ( ... ) list.
func (p *Printer) formatProperties(props []core.Property) {
	for i := 0; i < len(props); i++ {
		prop := props[i]
		p.writeln()

		switch prop.Style {
		case core.PropertyKeyValue:
			j := i
			for j < len(props) && props[j].Style == core.PropertyKeyValue {
				j++
			}
			group := props[i:j]
			p.kw(token.WITH)
			p.space()
			p.write("(")
			p.formatList(len(group), func(k int) {
				p.write(group[k].Key)
				p.space()
				p.kw(token.EQ)
				p.space()
				p.write(group[k].Value)
			}, ",", false)
			p.write(")")
			i = j - 1

		case core.PropertyComment:
			p.keyword("COMMENT")
			p.space()
			p.write(quoteString(prop.Value))

		default:
			p.keyword(prop.Key)
			if prop.Value == "" {
				continue
			}
			p.space()
			if prop.Key == "STORAGE" {
				p.write("(" + prop.Value + ")")
			} else {
				p.write(prop.Value)
			}
		}
	}
}

func (p *Printer) formatDropStmt(stmt *core.DropStmt) {
	p.formatLeadingComments(&stmt.NodeInfo)

	p.kw(token.DROP)
	p.space()
	p.keyword(string(stmt.Object))
	if stmt.IfExists {
		p.space()
		p.keyword("IF")
		p.space()
		p.kw(token.EXISTS)
	}
	p.space()
	p.formatTableName(stmt.Name)
	if stmt.Cascade {
		p.space()
		p.keyword("CASCADE")
	}
	if stmt.Purge {
		p.space()
		p.keyword("PURGE")
	}

	p.formatTrailingComments(&stmt.NodeInfo)
}

// formatDataType prints a type with its parameters placed before any
// WITH [LOCAL] TIME ZONE suffix.
func (p *Printer) formatDataType(dt core.DataType) {
	p.write(DataType(dt))
}

// DataType renders a data type: DECIMAL(10, 2), TIMESTAMP(3) WITH TIME ZONE.
func DataType(dt core.DataType) string {
	base, suffix := dt.Name, ""
	if i := strings.Index(dt.Name, " WITH "); i >= 0 {
		base, suffix = dt.Name[:i], dt.Name[i:]
	}
	if len(dt.Params) > 0 {
		base += "(" + strings.Join(dt.Params, ", ") + ")"
	}
	return base + suffix
}
