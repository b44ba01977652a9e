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

// Per-operator requirement translations. Each takes the requirement a
// node's consumer placed on the node's output (column ordinals in the
// node's output schema) and produces the requirement on an input. All of
// them only ever widen what an exact analysis would need, never narrow it.

// TranslateThroughProjection rewrites an output requirement into input
// terms. For an output column that is an unbroken access chain over the
// input, the consumer's paths are appended to the chain's path (unless the
// chain is frozen by a list access, in which case the chain's own path
// stands). Any other output expression contributes its extracted accesses
// as-is; the consumer's sub-paths below it are discarded, which is sound
// because a shorter path only requires more.
func TranslateThroughProjection(req DeepColumnMap, projections []Expr) DeepColumnMap {
	out := DeepColumnMap{}
	for outCol, pset := range req {
		if outCol < 0 || int(outCol) >= len(projections) {
			continue
		}
		e := projections[outCol]
		col, base, frozen, extras, ok := resolveChain(e)
		if !ok {
			ExprDeepColumnsInto(e, out)
			continue
		}
		for _, p := range pset.Sorted() {
			if frozen {
				out.Add(col, base.Clone())
				continue
			}
			np := make(Path, 0, len(base)+len(p))
			np = append(np, base...)
			np = append(np, p...)
			out.Add(col, np)
		}
		if len(pset) == 0 {
			// Nothing demanded of this output column; still record the
			// chain root so the input keeps producing it.
			out.Add(col, base.Clone())
		}
		for _, ex := range extras {
			ExprDeepColumnsInto(ex, out)
		}
	}
	return out
}

// TranslateThroughFilter passes the requirement through unchanged and adds
// every access the predicates make.
func TranslateThroughFilter(req DeepColumnMap, preds []Expr) DeepColumnMap {
	out := req.Clone()
	if out == nil {
		out = DeepColumnMap{}
	}
	for _, p := range preds {
		ExprDeepColumnsInto(p, out)
	}
	return out
}

// TranslateThroughJoin splits an output requirement between the two join
// inputs. Output ordinals [0, leftWidth) belong to the left input, the
// rest to the right, rebased. The join condition's accesses are split the
// same way and unioned in; both sides see them regardless of join type
// since outer joins still evaluate the condition.
func TranslateThroughJoin(req DeepColumnMap, on []Expr, leftWidth int32) (left, right DeepColumnMap) {
	left = DeepColumnMap{}
	right = DeepColumnMap{}
	for col, pset := range req {
		if col < leftWidth {
			left.AddSet(col, pset)
		} else {
			right.AddSet(col-leftWidth, pset)
		}
	}
	cond := DeepColumnMap{}
	for _, e := range on {
		ExprDeepColumnsInto(e, cond)
	}
	for col, pset := range cond {
		if col < leftWidth {
			left.AddSet(col, pset)
		} else {
			right.AddSet(col-leftWidth, pset)
		}
	}
	return left, right
}

// TranslateThroughAgg ignores the output requirement entirely: an
// aggregation's input need is fixed by its grouping keys and aggregate
// arguments, whatever the consumer keeps of its output.
func TranslateThroughAgg(groupBy, aggs []Expr) DeepColumnMap {
	out := DeepColumnMap{}
	for _, e := range groupBy {
		ExprDeepColumnsInto(e, out)
	}
	for _, e := range aggs {
		ExprDeepColumnsInto(e, out)
	}
	return out
}

// TranslateThroughWindow passes through the requirement on the input's
// pass-through columns, drops requirements on the appended window columns,
// and always adds every access the window expressions make. The window
// expressions are evaluated whether or not their outputs are consumed.
func TranslateThroughWindow(req DeepColumnMap, winExprs []Expr, inputWidth int32) DeepColumnMap {
	out := DeepColumnMap{}
	for col, pset := range req {
		if col < inputWidth {
			out.AddSet(col, pset)
		}
	}
	for _, e := range winExprs {
		ExprDeepColumnsInto(e, out)
	}
	return out
}

// TranslateThroughSort passes the requirement through and adds the sort
// keys' accesses.
func TranslateThroughSort(req DeepColumnMap, orderBy []OrderBySpec) DeepColumnMap {
	out := req.Clone()
	if out == nil {
		out = DeepColumnMap{}
	}
	for _, o := range orderBy {
		ExprDeepColumnsInto(o.Expr, out)
	}
	return out
}
