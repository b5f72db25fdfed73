package parser

import (
	"fmt"

	"github.com/leapstack-labs/sqlequiv/pkg/token"
)

// ParseError represents a lexing or parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnexpectedToken     = "unexpected token %s, expected %s"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnterminatedIdent   = "unterminated quoted identifier"
	ErrUnexpectedCharacter = "unexpected character %q"
	ErrTooManyNameParts    = "name %q has too many parts (at most catalog.schema.name)"
	ErrUnsupported         = "%s is not supported"
)

// bailout is panicked by the parser on the first error and recovered at the
// package entry points.
type bailout struct {
	err *ParseError
}
