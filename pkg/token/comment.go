package token

import "strings"

// CommentKind distinguishes line vs block comments.
type CommentKind int

// Comment kinds.
const (
	LineComment  CommentKind = iota // -- comment
	BlockComment                    // /* comment */
)

// Comment is a SQL comment collected by the lexer.
type Comment struct {
	Kind CommentKind
	Text string // includes delimiters (-- or /* */)
	Span Span
}

// Body returns the comment text without its delimiters, trimmed.
func (c *Comment) Body() string {
	s := c.Text
	if c.Kind == LineComment {
		s = strings.TrimPrefix(s, "--")
	} else {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "/*"), "*/")
	}
	return strings.TrimSpace(s)
}
