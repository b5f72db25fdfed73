package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// Definition grammar:
//
//	create     → CREATE [OR REPLACE] [GLOBAL] [TEMPORARY] (TABLE | VIEW) [IF NOT EXISTS] table_name
//	             [( column_def {, column_def} )] {property} [AS query] {property}
//	column_def → name data_type {DEFAULT expr | [NOT] NULL | PRIMARY KEY}
//	property   → WITH ( key = value {, key = value} )     -- Trino
//	           | COMMENT string
//	           | ON COMMIT {PRESERVE | DELETE} ROWS        -- Oracle
//	           | TABLESPACE name | PCTFREE n | STORAGE ( ... ) | [NO]LOGGING | [NO]COMPRESS ...
//	drop       → DROP (TABLE | VIEW) [IF EXISTS] table_name [CASCADE [CONSTRAINTS]] [PURGE]

func (p *Parser) parseCreate() *core.CreateStmt {
	start := p.expect(token.CREATE).Pos
	stmt := &core.CreateStmt{}

	if p.match(token.OR) {
		p.expectWord("REPLACE")
		stmt.OrReplace = true
	}
	if p.matchWord("GLOBAL") {
		stmt.Global = true
		stmt.Temporary = true
		p.expectWord("TEMPORARY")
	} else if p.matchWord("TEMPORARY") || p.matchWord("TEMP") {
		stmt.Temporary = true
	}

	switch {
	case p.match(token.TABLE):
		stmt.Object = core.ObjectTable
	case p.match(token.VIEW):
		stmt.Object = core.ObjectView
	default:
		p.unexpected("TABLE or VIEW")
	}

	if p.matchWord("IF") {
		p.expect(token.NOT)
		p.expect(token.EXISTS)
		stmt.IfNotExists = true
	}

	stmt.Name = p.parseTableName()

	if p.check(token.LPAREN) {
		if stmt.Object == core.ObjectView {
			// view column names
			for _, id := range p.parseParenIdentList() {
				stmt.Columns = append(stmt.Columns, &core.ColumnDef{Name: id})
			}
		} else {
			stmt.Columns = p.parseColumnDefs()
		}
	}

	stmt.Properties = p.parseProperties(stmt.Properties)
	if p.match(token.AS) {
		stmt.Query = p.parseQuery()
		stmt.Properties = p.parseProperties(stmt.Properties)
	}

	if stmt.Object == core.ObjectView && stmt.Query == nil {
		p.unexpected("AS")
	}
	if stmt.Object == core.ObjectTable && stmt.Query == nil && len(stmt.Columns) == 0 {
		p.unexpected("column definitions or AS")
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseColumnDefs parses ( column_def {, column_def} ).
func (p *Parser) parseColumnDefs() []*core.ColumnDef {
	p.expect(token.LPAREN)
	var cols []*core.ColumnDef
	for {
		if p.token.Is("CONSTRAINT") || p.token.Is("PRIMARY") || p.token.Is("UNIQUE") || p.token.Is("FOREIGN") {
			p.errorf(ErrUnsupported, "table constraint")
		}
		cols = append(cols, p.parseColumnDef())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return cols
}

func (p *Parser) parseColumnDef() *core.ColumnDef {
	start := p.token.Pos
	col := &core.ColumnDef{Name: p.parseIdent()}
	col.Type = p.parseDataType()

	for {
		switch {
		case p.matchWord("DEFAULT"):
			col.Default = p.parseExpression()
		case p.check(token.NOT) && p.checkPeek(token.NULL):
			p.nextToken()
			p.nextToken()
			col.NotNull = true
		case p.match(token.NULL):
		case p.matchWord("PRIMARY"):
			p.expectWord("KEY")
			col.PrimaryKey = true
		default:
			col.Span = p.spanFrom(start)
			return col
		}
	}
}

// simpleProperties take a single value token, or none when listed as flags.
var simpleProperties = map[string]bool{
	"TABLESPACE": true, "PCTFREE": true, "PCTUSED": true, "INITRANS": true, "MAXTRANS": true,
}

var flagProperties = map[string]bool{
	"LOGGING": true, "NOLOGGING": true, "COMPRESS": true, "NOCOMPRESS": true,
	"CACHE": true, "NOCACHE": true, "PARALLEL": true, "NOPARALLEL": true,
	"MONITORING": true, "NOMONITORING": true, "ROWDEPENDENCIES": true, "NOROWDEPENDENCIES": true,
}

// parseProperties appends any storage or placement properties.
func (p *Parser) parseProperties(props []core.Property) []core.Property {
	for {
		switch {
		case p.check(token.WITH) && p.checkPeek(token.LPAREN):
			p.nextToken()
			props = append(props, p.parseKeyValueProperties()...)

		case p.token.Is("COMMENT") && p.checkPeek(token.STRING):
			p.nextToken()
			props = append(props, core.Property{Style: core.PropertyComment, Key: "COMMENT", Value: p.token.Literal})
			p.nextToken()

		case p.check(token.ON) && p.peek.Is("COMMIT"):
			p.nextToken()
			p.nextToken()
			var action string
			switch {
			case p.matchWord("PRESERVE"):
				action = "PRESERVE"
			case p.match(token.DELETE):
				action = "DELETE"
			default:
				p.unexpected("PRESERVE or DELETE")
			}
			p.expect(token.ROWS)
			props = append(props, core.Property{Style: core.PropertyClause, Key: "ON COMMIT", Value: action + " ROWS"})

		case p.token.Is("STORAGE") && p.checkPeek(token.LPAREN):
			p.nextToken()
			props = append(props, core.Property{Style: core.PropertyClause, Key: "STORAGE", Value: p.parseBalancedParens()})

		case p.check(token.IDENT) && !p.token.Quoted && simpleProperties[strings.ToUpper(p.token.Literal)]:
			key := strings.ToUpper(p.token.Literal)
			p.nextToken()
			if !p.isIdentLike() && !p.check(token.NUMBER) {
				p.unexpected(key + " value")
			}
			props = append(props, core.Property{Style: core.PropertyClause, Key: key, Value: p.token.Literal})
			p.nextToken()

		case p.check(token.IDENT) && !p.token.Quoted && flagProperties[strings.ToUpper(p.token.Literal)]:
			key := strings.ToUpper(p.token.Literal)
			p.nextToken()
			value := ""
			if key == "PARALLEL" && p.check(token.NUMBER) {
				value = p.token.Literal
				p.nextToken()
			}
			props = append(props, core.Property{Style: core.PropertyClause, Key: key, Value: value})

		default:
			return props
		}
	}
}

// parseKeyValueProperties parses ( key = value {, key = value} ), keeping
// each value as source text.
func (p *Parser) parseKeyValueProperties() []core.Property {
	p.expect(token.LPAREN)
	var props []core.Property
	for {
		key := p.parseIdent()
		p.expect(token.EQ)
		valueStart := p.token.Pos.Offset
		p.parseExpression()
		props = append(props, core.Property{
			Style: core.PropertyKeyValue,
			Key:   key.Name,
			Value: p.sourceFrom(valueStart),
		})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return props
}

// parseBalancedParens consumes a parenthesized group and returns its inner
// source text.
func (p *Parser) parseBalancedParens() string {
	p.expect(token.LPAREN)
	innerStart := p.token.Pos.Offset
	depth := 1
	for depth > 0 {
		switch p.token.Type {
		case token.EOF:
			p.unexpected(")")
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
			if depth == 0 {
				inner := p.lexer.input[innerStart:p.token.Pos.Offset]
				p.nextToken()
				return strings.TrimSpace(inner)
			}
		}
		p.nextToken()
	}
	return ""
}

func (p *Parser) parseDrop() *core.DropStmt {
	start := p.expect(token.DROP).Pos
	stmt := &core.DropStmt{}

	switch {
	case p.match(token.TABLE):
		stmt.Object = core.ObjectTable
	case p.match(token.VIEW):
		stmt.Object = core.ObjectView
	default:
		p.unexpected("TABLE or VIEW")
	}

	if p.matchWord("IF") {
		p.expect(token.EXISTS)
		stmt.IfExists = true
	}

	stmt.Name = p.parseTableName()

	if p.matchWord("CASCADE") {
		stmt.Cascade = true
		p.matchWord("CONSTRAINTS")
	}
	if p.matchWord("PURGE") {
		stmt.Purge = true
	}

	stmt.Span = p.spanFrom(start)
	return stmt
}
