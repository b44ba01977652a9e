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

package rule

import (
	"context"

	"github.com/RoaringBitmap/roaring"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/sql/plan"
)

// DeepProjection propagates structural (sub-field) column requirements
// from the root of the plan down to every table scan and attaches the
// resulting per-scan requirement maps. The requirement flowing down is an
// optional map: nil means the consumer could not be analyzed; it flows
// down unchanged and the scans materialize everything they project.
type DeepProjection struct {
	cfg config.OptimizerConfig
}

func NewDeepProjection(cfg config.OptimizerConfig) *DeepProjection {
	return &DeepProjection{cfg: cfg}
}

func (r *DeepProjection) Name() string { return "deep_projection" }

func (r *DeepProjection) Apply(ctx context.Context, root *plan.Node) (*plan.Node, bool, error) {
	if !r.cfg.DeepPruningEnabled() {
		return root, false, nil
	}
	// The root's consumer is the client: every output column is needed
	// whole.
	req := plan.DeepColumnMap{}
	for i := int32(0); i < root.OutputWidth(); i++ {
		req.Add(i, nil)
	}
	return r.rewrite(ctx, root, req)
}

// rewrite pushes req down through n and returns the rewritten node. req is
// keyed by n's output ordinals; nil means the consumer could not be
// analyzed, and it stays nil all the way down to the scans so the degrade
// policy decides there.
func (r *DeepProjection) rewrite(ctx context.Context, n *plan.Node, req plan.DeepColumnMap) (*plan.Node, bool, error) {
	switch n.NodeType {
	case plan.NodeTableScan:
		return r.rewriteScan(ctx, n, req)

	case plan.NodeProject:
		list, exprChanged, err := r.rewriteExprList(ctx, n.ProjectList)
		if err != nil {
			return nil, false, err
		}
		var childReq plan.DeepColumnMap
		if req != nil {
			childReq = plan.TranslateThroughProjection(req, list)
		}
		return r.rebuildSingle(ctx, n, childReq, func(nn *plan.Node) {
			nn.ProjectList = list
		}, exprChanged)

	case plan.NodeFilter:
		list, exprChanged, err := r.rewriteExprList(ctx, n.FilterList)
		if err != nil {
			return nil, false, err
		}
		var childReq plan.DeepColumnMap
		if req != nil {
			childReq = plan.TranslateThroughFilter(req, list)
		}
		return r.rebuildSingle(ctx, n, childReq, func(nn *plan.Node) {
			nn.FilterList = list
		}, exprChanged)

	case plan.NodeFetch, plan.NodeExchange:
		return r.rebuildSingle(ctx, n, req, nil, false)

	case plan.NodeSort:
		var childReq plan.DeepColumnMap
		if req != nil {
			childReq = plan.TranslateThroughSort(req, n.OrderBy)
		}
		return r.rebuildSingle(ctx, n, childReq, nil, false)

	case plan.NodeAgg:
		// The aggregate reads exactly its own expressions; the output
		// requirement, absent or not, is irrelevant below it.
		childReq := plan.TranslateThroughAgg(n.GroupBy, n.AggList)
		return r.rebuildSingle(ctx, n, childReq, nil, false)

	case plan.NodeWindow:
		var childReq plan.DeepColumnMap
		if req != nil {
			inputWidth := n.Children[0].OutputWidth()
			childReq = plan.TranslateThroughWindow(req, n.WinSpecList, inputWidth)
		}
		return r.rebuildSingle(ctx, n, childReq, nil, false)

	case plan.NodeJoin:
		list, exprChanged, err := r.rewriteExprList(ctx, n.OnList)
		if err != nil {
			return nil, false, err
		}
		var leftReq, rightReq plan.DeepColumnMap
		if req != nil {
			leftWidth := n.Children[0].OutputWidth()
			leftReq, rightReq = plan.TranslateThroughJoin(req, list, leftWidth)
		}
		left, lch, err := r.rewrite(ctx, n.Children[0], leftReq)
		if err != nil {
			return nil, false, err
		}
		right, rch, err := r.rewrite(ctx, n.Children[1], rightReq)
		if err != nil {
			return nil, false, err
		}
		if !lch && !rch && !exprChanged {
			return n, false, nil
		}
		nn := *n
		nn.OnList = list
		nn.Children = []*plan.Node{left, right}
		return &nn, true, nil

	case plan.NodeSetOp:
		// Branch schemas are shape-compatible; the same requirement
		// applies to each branch unchanged.
		branchReq := req
		changed := false
		children := make([]*plan.Node, len(n.Children))
		for i, c := range n.Children {
			nc, ch, err := r.rewrite(ctx, c, branchReq)
			if err != nil {
				return nil, false, err
			}
			children[i] = nc
			changed = changed || ch
		}
		if !changed {
			return n, false, nil
		}
		nn := *n
		nn.Children = children
		return &nn, true, nil

	case plan.NodeExtensionLeaf:
		return n, false, nil

	case plan.NodeExtensionSingle, plan.NodeExtensionMulti:
		// Opaque semantics: nothing is known about how the extension maps
		// its output onto its inputs, so every input degrades to absent.
		changed := false
		children := make([]*plan.Node, len(n.Children))
		for i, c := range n.Children {
			nc, ch, err := r.rewrite(ctx, c, nil)
			if err != nil {
				return nil, false, err
			}
			children[i] = nc
			changed = changed || ch
		}
		if !changed {
			return n, false, nil
		}
		nn := *n
		nn.Children = children
		return &nn, true, nil

	default:
		return nil, false, serr.NewInvalidState(ctx,
			"relation node has unknown kind %d", int32(n.NodeType))
	}
}

// rebuildSingle recurses into the only child with childReq and rebuilds n
// when the child or its own expressions changed. patch applies the
// rewritten expression lists onto the copy.
func (r *DeepProjection) rebuildSingle(ctx context.Context, n *plan.Node, childReq plan.DeepColumnMap, patch func(*plan.Node), exprChanged bool) (*plan.Node, bool, error) {
	child, ch, err := r.rewrite(ctx, n.Children[0], childReq)
	if err != nil {
		return nil, false, err
	}
	if !ch && !exprChanged {
		return n, false, nil
	}
	nn := *n
	nn.Children = []*plan.Node{child}
	if patch != nil {
		patch(&nn)
	}
	return &nn, true, nil
}

// rewriteScan computes and attaches the scan's requirement map, keyed by
// table column ordinal.
func (r *DeepProjection) rewriteScan(ctx context.Context, n *plan.Node, req plan.DeepColumnMap) (*plan.Node, bool, error) {
	deep, err := r.scanRequirement(ctx, n, req)
	if err != nil {
		return nil, false, err
	}
	if n.DeepProjection.Equal(deep) {
		return n, false, nil
	}
	nn := *n
	nn.DeepProjection = deep
	return &nn, true, nil
}

func (r *DeepProjection) scanRequirement(ctx context.Context, n *plan.Node, req plan.DeepColumnMap) (plan.DeepColumnMap, error) {
	if req == nil {
		if r.cfg.DegradeToLiveColumns {
			// Keep the map explicit: every live column, whole. Storage
			// layers that key behavior off map presence still see one.
			live := liveColumns(n)
			m := plan.DeepColumnMap{}
			it := live.Iterator()
			for it.HasNext() {
				m.Add(int32(it.Next()), nil)
			}
			return m, nil
		}
		return nil, nil
	}

	// Pushed-down filter conjuncts read columns too; they are spelled in
	// the scan's output ordinals like everything else.
	full := plan.TranslateThroughFilter(req, n.FilterList)

	// Remap output ordinals to table ordinals through the flat projection.
	m := plan.DeepColumnMap{}
	for outCol, pset := range full {
		tableCol := outCol
		if n.Projection != nil {
			if outCol < 0 || int(outCol) >= len(n.Projection) {
				return nil, serr.NewInternalError(ctx,
					"scan of %s: requirement column %d outside projection of width %d",
					n.TableDef.Name, outCol, len(n.Projection))
			}
			tableCol = n.Projection[outCol]
		}
		if tableCol < 0 || int(tableCol) >= len(n.TableDef.Cols) {
			return nil, serr.NewInternalError(ctx,
				"scan of %s: requirement column %d outside schema of width %d",
				n.TableDef.Name, tableCol, len(n.TableDef.Cols))
		}
		m.AddSet(tableCol, pset)
	}

	// Wildcard degradation: a map demanding every table column whole is
	// indistinguishable from no map at all. A whole-column map over a
	// narrower flat projection stays: the flat projection is the pruning.
	if m.CoversWholeTable(n.TableDef) {
		return nil, nil
	}
	return m, nil
}

// liveColumns is the set of table column ordinals the scan produces.
func liveColumns(n *plan.Node) *roaring.Bitmap {
	live := roaring.New()
	if n.Projection != nil {
		for _, c := range n.Projection {
			live.Add(uint32(c))
		}
		return live
	}
	live.AddRange(0, uint64(len(n.TableDef.Cols)))
	return live
}

// rewriteExprList optimizes subquery plans embedded in the expressions.
func (r *DeepProjection) rewriteExprList(ctx context.Context, list []plan.Expr) ([]plan.Expr, bool, error) {
	changed := false
	out := list
	for i, e := range list {
		ne, ch, err := r.rewriteExprSubqueries(ctx, e)
		if err != nil {
			return nil, false, err
		}
		if ch && !changed {
			out = make([]plan.Expr, len(list))
			copy(out, list)
			changed = true
		}
		if changed {
			out[i] = ne
		}
	}
	return out, changed, nil
}

func (r *DeepProjection) rewriteExprSubqueries(ctx context.Context, e plan.Expr) (plan.Expr, bool, error) {
	switch v := e.(type) {
	case *plan.SubqueryExpr:
		test, tch, err := r.rewriteExprSubqueries(ctx, v.Test)
		if err != nil {
			return nil, false, err
		}
		// With translation enabled and an analyzable outer reference, the
		// equality between the test value and the subquery's single output
		// column mirrors a whole-column requirement onto it; the inner plan
		// can then prune below itself. Otherwise the inner side degrades.
		var innerReq plan.DeepColumnMap
		if r.cfg.SubqueryTranslationEnabled() && plan.IsAccessChain(v.Test) {
			innerReq = plan.DeepColumnMap{}
			innerReq.Add(0, nil)
		}
		inner, pch, err := r.rewrite(ctx, v.Plan, innerReq)
		if err != nil {
			return nil, false, err
		}
		if !tch && !pch {
			return e, false, nil
		}
		return &plan.SubqueryExpr{Typ: v.Typ, Test: test, Plan: inner}, true, nil

	case *plan.FuncExpr:
		args, changed, err := r.rewriteExprArgs(ctx, v.Args)
		if err != nil {
			return nil, false, err
		}
		if !changed {
			return e, false, nil
		}
		return &plan.FuncExpr{Typ: v.Typ, Name: v.Name, Args: args}, true, nil

	case *plan.WindowExpr:
		fn, fch, err := r.rewriteExprSubqueries(ctx, v.Fn)
		if err != nil {
			return nil, false, err
		}
		part, pch, err := r.rewriteExprArgs(ctx, v.PartitionBy)
		if err != nil {
			return nil, false, err
		}
		if !fch && !pch {
			return e, false, nil
		}
		return &plan.WindowExpr{
			Typ:         v.Typ,
			Fn:          fn.(*plan.FuncExpr),
			PartitionBy: part,
			OrderBy:     v.OrderBy,
		}, true, nil

	default:
		return e, false, nil
	}
}

func (r *DeepProjection) rewriteExprArgs(ctx context.Context, args []plan.Expr) ([]plan.Expr, bool, error) {
	changed := false
	out := args
	for i, a := range args {
		na, ch, err := r.rewriteExprSubqueries(ctx, a)
		if err != nil {
			return nil, false, err
		}
		if ch && !changed {
			out = make([]plan.Expr, len(args))
			copy(out, args)
			changed = true
		}
		if changed {
			out[i] = na
		}
	}
	return out, changed, nil
}
