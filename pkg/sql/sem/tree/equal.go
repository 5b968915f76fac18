// Copyright 2026 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package tree

// Equal returns whether a and b are structurally equal: the same operator,
// the same number of children, equal leaves and pairwise equal children.
// Resolved types are not compared.
func Equal(a, b *Expr) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Op != b.Op || len(a.Args) != len(b.Args) {
		return false
	}
	switch a.Op {
	case OpConst:
		if a.Datum == nil || b.Datum == nil {
			return a.Datum == b.Datum
		}
		if !DatumsEqual(a.Datum, b.Datum) {
			return false
		}
	case OpColumn:
		if a.Col != b.Col && (a.Col == nil || b.Col == nil ||
			a.Col.Idx != b.Col.Idx || a.Col.Table != b.Col.Table) {
			return false
		}
	}
	for i := range a.Args {
		if !Equal(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}
