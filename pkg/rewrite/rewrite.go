// Package rewrite provides generic traversal and persistent rewriting of
// core syntax trees.
//
// Traversal relies only on Node.Children, so it needs no per-kind code.
// Rewriting is copy-on-write: a node is copied (through WithChildren) only
// when at least one of its children changed, and unchanged subtrees are
// shared between the input and output trees. Input trees are never mutated.
package rewrite

import (
	"github.com/leapstack-labs/sqlequiv/pkg/core"
)

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(n core.Node) (w Visitor)
}

// Walk traverses a tree in depth-first order.
func Walk(v Visitor, n core.Node) {
	if n == nil {
		return
	}
	w := v.Visit(n)
	if w == nil {
		return
	}
	for _, child := range n.Children() {
		if child != nil {
			Walk(w, child)
		}
	}
	w.Visit(nil)
}

type inspector func(core.Node) bool

func (f inspector) Visit(n core.Node) Visitor {
	if f(n) {
		return f
	}
	return nil
}

// Inspect traverses a tree in depth-first order, calling f for each node.
// If f returns true, Inspect visits the node's children, followed by a
// call of f(nil).
func Inspect(n core.Node, f func(core.Node) bool) {
	Walk(inspector(f), n)
}

// FindAll returns every node of the given kinds in pre-order. With no kinds
// it returns every node.
func FindAll(n core.Node, kinds ...core.Kind) []core.Node {
	var out []core.Node
	Inspect(n, func(node core.Node) bool {
		if node == nil {
			return false
		}
		if len(kinds) == 0 {
			out = append(out, node)
			return true
		}
		for _, k := range kinds {
			if node.Kind() == k {
				out = append(out, node)
				break
			}
		}
		return true
	})
	return out
}

// Count returns the number of nodes in a tree.
func Count(n core.Node) int {
	count := 0
	Inspect(n, func(node core.Node) bool {
		if node != nil {
			count++
		}
		return true
	})
	return count
}

// TransformFunc returns the replacement for n, or n itself to keep it.
// parent is nil at the root.
type TransformFunc func(n, parent core.Node) core.Node

// PathFunc is like TransformFunc but receives every ancestor of n, root
// first.
type PathFunc func(n core.Node, path []core.Node) core.Node

// Transform rewrites a tree in pre-order: fn is applied to a node before
// its children, and the children of the replacement are then transformed.
func Transform(n core.Node, fn TransformFunc) core.Node {
	return TransformPath(n, func(node core.Node, path []core.Node) core.Node {
		var parent core.Node
		if len(path) > 0 {
			parent = path[len(path)-1]
		}
		return fn(node, parent)
	})
}

// TransformPath is Transform with the full ancestor path.
func TransformPath(n core.Node, fn PathFunc) core.Node {
	path := make([]core.Node, 0, 16)
	return transform(n, fn, path)
}

func transform(n core.Node, fn PathFunc, path []core.Node) core.Node {
	if n == nil {
		return nil
	}
	n = fn(n, path)
	if n == nil {
		return nil
	}
	path = append(path, n)
	return replaceChildren(n, func(child core.Node) core.Node {
		return transform(child, fn, path)
	})
}

// A Rewriter rewrites nodes bottom-up.
type Rewriter interface {
	// Rewrite is applied to nodes in depth-first order, after their
	// children, and the node is replaced by the returned value.
	Rewrite(n core.Node) core.Node

	// Walk is called before a node's children are rewritten. The returned
	// Rewriter is used for all the children; if it is nil, the children
	// are left unchanged.
	Walk(n core.Node) Rewriter
}

// Rewrite recursively applies a Rewriter in depth-first order.
func Rewrite(r Rewriter, n core.Node) core.Node {
	if n == nil {
		return nil
	}
	if rc := r.Walk(n); rc != nil {
		n = replaceChildren(n, func(child core.Node) core.Node {
			return Rewrite(rc, child)
		})
	}
	return r.Rewrite(n)
}

// replaceChildren applies f to every present child and copies n only if a
// child changed.
func replaceChildren(n core.Node, f func(core.Node) core.Node) core.Node {
	children := n.Children()
	var out []core.Node
	for i, child := range children {
		if child == nil {
			continue
		}
		replaced := f(child)
		if replaced == child {
			continue
		}
		if out == nil {
			out = make([]core.Node, len(children))
			copy(out, children)
		}
		out[i] = replaced
	}
	if out == nil {
		return n
	}
	return n.WithChildren(out)
}
