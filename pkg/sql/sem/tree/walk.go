// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// WalkOrder selects when Walk visits a node relative to its children.
type WalkOrder uint8

const (
	// WalkPrefix visits a node before its children.
	WalkPrefix WalkOrder = 1 << iota
	// WalkPostfix visits a node after its children.
	WalkPostfix
)

// Walk calls fn on e and its descendants in the given order. A node is
// visited twice if both orders are requested. fn returns true to stop the
// walk; Walk then returns true.
func Walk(e *Expr, order WalkOrder, fn func(e *Expr) (stop bool)) bool {
	if order&WalkPrefix != 0 && fn(e) {
		return true
	}
	for _, arg := range e.Args {
		if Walk(arg, order, fn) {
			return true
		}
	}
	return order&WalkPostfix != 0 && fn(e)
}

// Visitor defines methods that are called for nodes during an expression
// walk.
type Visitor interface {
	// VisitPre is called for each node before recursing into that subtree.
	// Upon return, if recurse is false, the visit will not recurse into the
	// subtree (and VisitPost will not be called for this node).
	//
	// The returned node replaces the visited node; it should be the same
	// node if no change is needed.
	VisitPre(e *Expr) (recurse bool, newExpr *Expr)

	// VisitPost is called for each node after recursing into the subtree.
	// The returned node replaces the visited node.
	VisitPost(e *Expr) (newNode *Expr)
}

// WalkExpr traverses the tree, calling VisitPre and VisitPost on each node.
// A node whose children change is copied, so the input tree is never
// modified. Copies are unfixed; subtrees that did not change keep their
// resolved types.
func WalkExpr(v Visitor, e *Expr) (newExpr *Expr, changed bool) {
	recurse, newExpr := v.VisitPre(e)
	if recurse {
		newExpr = newExpr.walkArgs(v)
		newExpr = v.VisitPost(newExpr)
	}
	return newExpr, e != newExpr
}

func (e *Expr) walkArgs(v Visitor) *Expr {
	n := e
	for i, arg := range e.Args {
		newArg, changed := WalkExpr(v, arg)
		if changed {
			if n == e {
				n = e.copyNode()
			}
			n.Args[i] = newArg
		}
	}
	return n
}

// TransformFunc returns the replacement for e, or e itself to keep it.
type TransformFunc func(e *Expr) (*Expr, error)

type transformVisitor struct {
	fn  TransformFunc
	err error
}

var _ Visitor = &transformVisitor{}

func (v *transformVisitor) VisitPre(e *Expr) (recurse bool, newExpr *Expr) {
	return v.err == nil, e
}

func (v *transformVisitor) VisitPost(e *Expr) *Expr {
	if v.err != nil {
		return e
	}
	n, err := v.fn(e)
	if err != nil {
		v.err = err
		return e
	}
	return n
}

// Transform applies fn bottom-up: children are transformed first, then fn
// sees their parent with the transformed children in place. The original
// tree is left untouched and the (possibly new) root is returned.
func Transform(e *Expr, fn TransformFunc) (*Expr, error) {
	v := transformVisitor{fn: fn}
	n, _ := WalkExpr(&v, e)
	if v.err != nil {
		return nil, v.err
	}
	return n, nil
}

// AnalyzeFunc inspects a node before its subtree is compiled. It may update
// the value that is handed to the node's children. Returning false leaves
// the subtree as is.
type AnalyzeFunc[A any] func(e *Expr, arg *A) bool

// Compile combines an analysis pass going down the tree with a
// transformation coming back up. analyze sees each node first; every child
// of a node receives the value analyze left for that node, independently of
// its siblings. After the children are compiled, transform is applied to
// the node.
func Compile[A any](e *Expr, analyze AnalyzeFunc[A], arg A, transform TransformFunc) (*Expr, error) {
	if !analyze(e, &arg) {
		return e, nil
	}
	n := e
	for i, child := range e.Args {
		newChild, err := Compile(child, analyze, arg, transform)
		if err != nil {
			return nil, err
		}
		if newChild != child {
			if n == e {
				n = e.copyNode()
			}
			n.Args[i] = newChild
		}
	}
	return transform(n)
}
