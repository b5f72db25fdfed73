// Package normalize turns parsed statements into a canonical form so that
// statements which differ only in known, intentional ways serialize to the
// same text.
//
// The stages run in a fixed order, tied together by Pipeline:
//
//	StripComments → Remap → Canonicalizer.Canonicalize → Generic
//
// Every stage is a copy-on-write rewrite built on pkg/rewrite: input trees
// are never mutated.
package normalize

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
	"github.com/leapstack-labs/sqlequiv/pkg/rewrite"
)

// StripComments returns a tree in which no node carries comments.
func StripComments(n core.Node) core.Node {
	return rewrite.Transform(n, func(node, _ core.Node) core.Node {
		if !node.Info().HasComments() {
			return node
		}
		cp := node.WithChildren(node.Children())
		cp.Info().ClearComments()
		return cp
	})
}
