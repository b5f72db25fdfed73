package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

const indentSize = 2

// Printer handles SQL formatting. In compact mode every line break becomes a
// single space, so the same layout code yields one-line canonical text.
type Printer struct {
	dialect      *dialect.Dialect
	output       *bytes.Buffer
	depth        int
	atLineStart  bool
	pendingSpace bool
	pretty       bool
}

func newPrinter(d *dialect.Dialect, pretty bool) *Printer {
	return &Printer{
		dialect:     d,
		output:      &bytes.Buffer{},
		atLineStart: true,
		pretty:      pretty,
	}
}

// String returns the formatted output.
func (p *Printer) String() string {
	if p.pretty {
		return strings.TrimRight(p.output.String(), "\n") + "\n"
	}
	return strings.TrimSpace(p.output.String())
}

func (p *Printer) write(s string) {
	if s == "" {
		return
	}
	if p.atLineStart {
		p.writeIndent()
	} else if p.pendingSpace && p.wantsSpaceBefore(s[0]) {
		p.output.WriteByte(' ')
	}
	p.pendingSpace = false
	p.output.WriteString(s)
}

// wantsSpaceBefore reports whether a pending space is kept before a string
// starting with next.
func (p *Printer) wantsSpaceBefore(next byte) bool {
	if next == ')' || next == ',' {
		return false
	}
	b := p.output.Bytes()
	if len(b) == 0 {
		return false
	}
	last := b[len(b)-1]
	return last != '(' && last != ' ' && last != '\n'
}

// writeln ends the line in pretty mode and separates with a space otherwise.
func (p *Printer) writeln() {
	if !p.pretty {
		p.pendingSpace = true
		return
	}
	if p.atLineStart && p.output.Len() > 0 {
		return
	}
	p.output.WriteByte('\n')
	p.atLineStart = true
	p.pendingSpace = false
}

func (p *Printer) writeIndent() {
	for i := 0; i < p.depth*indentSize; i++ {
		p.output.WriteByte(' ')
	}
	p.atLineStart = false
}

func (p *Printer) keyword(s string) {
	p.write(strings.ToUpper(s))
}

func (p *Printer) indent() {
	p.depth++
}

func (p *Printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

func (p *Printer) space() {
	p.pendingSpace = true
}

// kw prints keywords from their token types, space separated.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// ident prints an identifier, quoting it with the dialect's quote
// characters when it was quoted.
func (p *Printer) ident(id core.Ident) {
	if id.Quoted {
		p.write(p.dialect.QuoteIdentifier(id.Name))
		return
	}
	p.write(id.Name)
}

// qualified prints dot-separated identifier parts.
func (p *Printer) qualified(parts []core.Ident) {
	for i, part := range parts {
		if i > 0 {
			p.write(".")
		}
		p.ident(part)
	}
}

// commentText renders any comment as a single-line block comment.
func commentText(c *token.Comment) string {
	body := strings.Join(strings.Fields(c.Body()), " ")
	body = strings.ReplaceAll(body, "*/", "* /")
	return "/* " + body + " */"
}

func (p *Printer) formatLeadingComments(info *core.NodeInfo) {
	for _, c := range info.LeadingComments {
		p.write(commentText(c))
		p.writeln()
	}
}

func (p *Printer) formatTrailingComments(info *core.NodeInfo) {
	for _, c := range info.TrailingComments {
		p.space()
		p.write(commentText(c))
	}
}

// formatList prints a list of items with separators.
// count is the number of items, format is called for each index,
// sep is the separator string, multiline adds newlines after separators.
func (p *Printer) formatList(count int, format func(i int), sep string, multiline bool) {
	for i := 0; i < count; i++ {
		format(i)
		if i < count-1 {
			p.write(sep)
			if multiline {
				p.writeln()
			} else {
				p.space()
			}
		}
	}
}

func (p *Printer) formatIdentList(ids []core.Ident) {
	p.write("(")
	p.formatList(len(ids), func(i int) { p.ident(ids[i]) }, ",", false)
	p.write(")")
}
