// Copyright 2025 Strata Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

// ExprDeepColumns computes, per referenced input column, the structural
// paths a single expression accesses. Columns reached through an operator
// the extractor cannot see through are recorded at the whole-column path.
func ExprDeepColumns(e Expr) DeepColumnMap {
	m := DeepColumnMap{}
	ExprDeepColumnsInto(e, m)
	return m
}

// ExprDeepColumnsInto accumulates e's accesses into m.
func ExprDeepColumnsInto(e Expr, m DeepColumnMap) {
	if col, path, _, extras, ok := resolveChain(e); ok {
		m.Add(col, path)
		for _, ex := range extras {
			ExprDeepColumnsInto(ex, m)
		}
		return
	}
	switch v := e.(type) {
	case *ColExpr:
		m.Add(v.ColPos, nil)
	case *LitExpr:
	case *FuncExpr:
		for _, a := range v.Args {
			ExprDeepColumnsInto(a, m)
		}
	case *WindowExpr:
		for _, a := range v.Fn.Args {
			ExprDeepColumnsInto(a, m)
		}
		for _, p := range v.PartitionBy {
			ExprDeepColumnsInto(p, m)
		}
		for _, o := range v.OrderBy {
			ExprDeepColumnsInto(o.Expr, m)
		}
	case *SubqueryExpr:
		// The inner plan reads its own tables; only the test expression
		// touches this node's input.
		ExprDeepColumnsInto(v.Test, m)
	}
}

// IsAccessChain reports whether e is an unbroken structural access chain
// rooted at a column reference.
func IsAccessChain(e Expr) bool {
	_, _, _, _, ok := resolveChain(e)
	return ok
}

// resolveChain recognizes an unbroken structural access chain rooted at a
// column reference:
//
//	col                                -> (col, [])
//	get_field(chain, 'name')           -> chain's path extended by name
//	element_at(chain, idx)             -> chain's path, frozen
//
// frozen means the chain passed through a list access: further get_fields
// above it must not extend the path, since they address list elements, not
// the column's own structure. extras carries side expressions found inside
// the chain (element_at indexes) whose accesses also count. ok is false
// when e is not a chain at all; the caller then recurses generically and
// every column inside e degrades to the whole-column path. A get_field
// with a non-literal name also fails the chain for the same reason: the
// accessed field cannot be named statically.
func resolveChain(e Expr) (col int32, path Path, frozen bool, extras []Expr, ok bool) {
	switch v := e.(type) {
	case *ColExpr:
		return v.ColPos, nil, false, nil, true
	case *FuncExpr:
		switch v.Name {
		case FnGetField:
			if len(v.Args) != 2 {
				return
			}
			lit, isLit := v.Args[1].(*LitExpr)
			if !isLit {
				return
			}
			name, isStr := lit.Value.(string)
			if !isStr {
				return
			}
			c, p, fr, ex, k := resolveChain(v.Args[0])
			if !k {
				return
			}
			if fr {
				return c, p, true, ex, true
			}
			np := make(Path, len(p), len(p)+1)
			copy(np, p)
			np = append(np, name)
			return c, np, false, ex, true
		case FnElementAt:
			if len(v.Args) == 0 {
				return
			}
			c, p, _, ex, k := resolveChain(v.Args[0])
			if !k {
				return
			}
			return c, p, true, append(ex, v.Args[1:]...), true
		}
	}
	return 0, nil, false, nil, false
}
