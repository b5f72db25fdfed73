package normalize

import (
	"fmt"

	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
)

// Pipeline runs every normalization stage for one dialect.
type Pipeline struct {
	dialect       *dialect.Dialect
	canonicalizer *Canonicalizer
	generic       []GenericOption
}

// NewPipeline creates a pipeline for trees in dialect d. A nil canonicalizer
// uses NewCanonicalizer(d) with default settings.
func NewPipeline(d *dialect.Dialect, c *Canonicalizer, generic ...GenericOption) *Pipeline {
	if c == nil {
		c = NewCanonicalizer(d)
	}
	return &Pipeline{dialect: d, canonicalizer: c, generic: generic}
}

// Dialect returns the pipeline's dialect.
func (p *Pipeline) Dialect() *dialect.Dialect {
	return p.dialect
}

// Run strips comments, applies the mapping (which may be nil), canonicalizes
// and finally normalizes stmt.
func (p *Pipeline) Run(stmt core.Stmt, m *Mapping) (core.Stmt, error) {
	n := StripComments(stmt)

	n, err := Remap(n, m, p.dialect)
	if err != nil {
		return nil, err
	}

	n, err = p.canonicalizer.Canonicalize(n)
	if err != nil {
		return nil, err
	}

	n = Generic(n, p.dialect, p.generic...)

	out, ok := n.(core.Stmt)
	if !ok {
		return nil, fmt.Errorf("normalization produced %s, not a statement", n.Kind())
	}
	return out, nil
}
