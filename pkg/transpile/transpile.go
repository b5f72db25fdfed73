// Package transpile converts statements between SQL dialects.
//
// A Translator rewrites a tree parsed in one dialect into an equivalent
// tree for another; the result is then printed in the target dialect.
// Translators are registered per (from, to) pair. Translating within one
// dialect uses the identity translator.
//
//	out, err := transpile.TranspileText(src, oracle.Oracle, trino.Trino)
package transpile

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/format"
	"github.com/leapstack-labs/sqlequiv/pkg/parser"
)

// Translator rewrites statements from one dialect to another.
type Translator interface {
	// From returns the source dialect name.
	From() string
	// To returns the target dialect name.
	To() string
	// Translate returns the statement rewritten for the target dialect.
	// The input is not modified.
	Translate(stmt core.Stmt) (core.Stmt, error)
}

// Error reports a construct that cannot be expressed in the target dialect.
type Error struct {
	From    string
	To      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot transpile from %s to %s: %s", e.From, e.To, e.Message)
}

var (
	registryMu  sync.RWMutex
	translators = make(map[string]Translator)
)

func pairKey(from, to string) string {
	return strings.ToLower(from) + "->" + strings.ToLower(to)
}

// Register makes a translator available to Lookup and Transpile.
func Register(t Translator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	translators[pairKey(t.From(), t.To())] = t
}

// Lookup returns the translator for a dialect pair. The same dialect on
// both sides yields the identity translator.
func Lookup(from, to string) (Translator, bool) {
	if strings.EqualFold(from, to) {
		return identity{name: from}, true
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := translators[pairKey(from, to)]
	return t, ok
}

// Pairs lists the registered dialect pairs as "from->to", sorted.
func Pairs() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	pairs := make([]string, 0, len(translators))
	for k := range translators {
		pairs = append(pairs, k)
	}
	sort.Strings(pairs)
	return pairs
}

// Translate rewrites stmt from one dialect to another without printing it.
func Translate(stmt core.Stmt, from, to *dialect.Dialect) (core.Stmt, error) {
	if from == nil || to == nil {
		return nil, dialect.ErrDialectRequired
	}
	t, ok := Lookup(from.Name, to.Name)
	if !ok {
		return nil, &Error{From: from.Name, To: to.Name, Message: "no translator registered"}
	}
	return t.Translate(stmt)
}

// Transpile rewrites stmt for dialect to and prints it there.
func Transpile(stmt core.Stmt, from, to *dialect.Dialect, opts ...format.Option) (string, error) {
	out, err := Translate(stmt, from, to)
	if err != nil {
		return "", err
	}
	return format.Format(out, to, opts...), nil
}

// TranspileText parses a script in dialect from and returns it transpiled
// to dialect to, one statement per ";"-separated block.
func TranspileText(text string, from, to *dialect.Dialect, opts ...format.Option) (string, error) {
	stmts, err := parser.Parse(text, from)
	if err != nil {
		return "", err
	}
	out := make([]core.Stmt, len(stmts))
	for i, stmt := range stmts {
		out[i], err = Translate(stmt, from, to)
		if err != nil {
			return "", fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return format.Script(out, to, opts...), nil
}

// identity leaves statements unchanged.
type identity struct {
	name string
}

func (i identity) From() string { return i.name }
func (i identity) To() string   { return i.name }

func (identity) Translate(stmt core.Stmt) (core.Stmt, error) {
	return stmt, nil
}
