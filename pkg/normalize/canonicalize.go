package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
)

// DefaultMaxIterations bounds the number of rewrite passes.
const DefaultMaxIterations = 8

// ErrRewriteNonTermination is returned when the rules still fire after the
// maximum number of passes.
var ErrRewriteNonTermination = errors.New("rewrite did not reach a fixpoint")

// RewriteNonTerminationError names the rules that were still firing when
// the pass limit was reached.
type RewriteNonTerminationError struct {
	Iterations int
	Rules      []string
}

func (e *RewriteNonTerminationError) Error() string {
	return fmt.Sprintf("%v after %d passes (still firing: %s)",
		ErrRewriteNonTermination, e.Iterations, strings.Join(e.Rules, ", "))
}

func (e *RewriteNonTerminationError) Unwrap() error {
	return ErrRewriteNonTermination
}

// Canonicalizer applies an ordered rule set to a fixpoint.
type Canonicalizer struct {
	dialect         *dialect.Dialect
	rules           []Rule
	customRules     bool
	unwrapDateParse bool
	maxIterations   int
	logger          *slog.Logger
}

// CanonicalizerOption configures a Canonicalizer.
type CanonicalizerOption func(*Canonicalizer)

// WithBareDateParseUnwrap enables the unwrap-date-parse rule.
func WithBareDateParseUnwrap(enabled bool) CanonicalizerOption {
	return func(c *Canonicalizer) { c.unwrapDateParse = enabled }
}

// WithMaxIterations sets the pass limit. Values below 1 keep the default.
func WithMaxIterations(n int) CanonicalizerOption {
	return func(c *Canonicalizer) {
		if n > 0 {
			c.maxIterations = n
		}
	}
}

// WithRules replaces the built-in rules.
func WithRules(rules ...Rule) CanonicalizerOption {
	return func(c *Canonicalizer) {
		c.rules = rules
		c.customRules = true
	}
}

// WithLogger sets the logger used to trace rule applications.
func WithLogger(logger *slog.Logger) CanonicalizerOption {
	return func(c *Canonicalizer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCanonicalizer creates a canonicalizer for trees in dialect d.
func NewCanonicalizer(d *dialect.Dialect, opts ...CanonicalizerOption) *Canonicalizer {
	c := &Canonicalizer{
		dialect:       d,
		maxIterations: DefaultMaxIterations,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.customRules {
		c.rules = DefaultRules(d, c.unwrapDateParse)
	}
	return c
}

// Rules returns the active rules in priority order.
func (c *Canonicalizer) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Canonicalize rewrites n until no rule matches.
//
// Each pass visits the tree top-down and applies, at every node, the first
// matching rule; a replacement is examined again at the same position before
// its children are visited. Passes repeat until one fires nothing.
func (c *Canonicalizer) Canonicalize(n core.Node) (core.Node, error) {
	var fired []string
	for pass := 1; pass <= c.maxIterations; pass++ {
		fired = fired[:0]
		n = rewrite.TransformPath(n, func(node core.Node, path []core.Node) core.Node {
			parent := nearestNonParen(path)
			for step := 0; step < c.maxIterations; step++ {
				rule, ok := c.match(node, parent)
				if !ok {
					break
				}
				c.logger.Debug("rule applied",
					slog.String("rule", rule.Name),
					slog.String("node", node.Kind().String()),
					slog.Int("pass", pass))
				node = rule.Apply(node)
				fired = appendUnique(fired, rule.Name)
			}
			return node
		})
		if len(fired) == 0 {
			return n, nil
		}
	}
	return nil, &RewriteNonTerminationError{Iterations: c.maxIterations, Rules: fired}
}

func (c *Canonicalizer) match(n, parent core.Node) (Rule, bool) {
	for _, r := range c.rules {
		if r.Match(n, parent) {
			return r, true
		}
	}
	return Rule{}, false
}

// nearestNonParen returns the closest ancestor that is not a ParenExpr.
func nearestNonParen(path []core.Node) core.Node {
	for i := len(path) - 1; i >= 0; i-- {
		if _, ok := path[i].(*core.ParenExpr); !ok {
			return path[i]
		}
	}
	return nil
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
