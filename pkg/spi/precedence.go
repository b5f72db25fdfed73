// Package spi holds the operator precedence table shared by the parser and
// the printer, so that what the parser groups implicitly the printer never
// needs to parenthesize and vice versa.
package spi

import "github.com/leapstack-labs/sqlequiv/pkg/token"

// Precedence constants for operator precedence parsing.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, IN, BETWEEN, IS
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +
	PrecedencePostfix    = 8 // (+)
)

var binary = map[token.TokenType]int{
	token.OR:      PrecedenceOr,
	token.AND:     PrecedenceAnd,
	token.EQ:      PrecedenceComparison,
	token.NE:      PrecedenceComparison,
	token.LT:      PrecedenceComparison,
	token.GT:      PrecedenceComparison,
	token.LE:      PrecedenceComparison,
	token.GE:      PrecedenceComparison,
	token.PLUS:    PrecedenceAddition,
	token.MINUS:   PrecedenceAddition,
	token.DPIPE:   PrecedenceAddition,
	token.STAR:    PrecedenceMultiply,
	token.SLASH:   PrecedenceMultiply,
	token.PERCENT: PrecedenceMultiply,
}

// Binary returns the precedence of t as an infix binary operator, or
// PrecedenceNone if t is not one.
func Binary(t token.TokenType) int {
	return binary[t]
}

// IsComparison reports whether t is a comparison operator.
func IsComparison(t token.TokenType) bool {
	return binary[t] == PrecedenceComparison
}
