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

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/common/tree"
	"github.com/strataql/strata/pkg/sql/plan"
)

// MergeProjections collapses a PROJECT whose child is another PROJECT into
// a single node by inlining the child's expressions into the parent's.
// Fewer projection hops means fewer requirement translations later.
type MergeProjections struct{}

func NewMergeProjections() *MergeProjections { return &MergeProjections{} }

func (r *MergeProjections) Name() string { return "merge_projections" }

func (r *MergeProjections) Apply(ctx context.Context, root *plan.Node) (*plan.Node, bool, error) {
	return tree.TransformUp[*plan.Node](root, func(n *plan.Node) (*plan.Node, bool, error) {
		if n.NodeType != plan.NodeProject || n.Children[0].NodeType != plan.NodeProject {
			return n, false, nil
		}
		child := n.Children[0]
		merged := make([]plan.Expr, len(n.ProjectList))
		for i, e := range n.ProjectList {
			ne, err := inlineColumns(ctx, e, child.ProjectList)
			if err != nil {
				return nil, false, err
			}
			merged[i] = ne
		}
		return plan.NewProject(child.Children[0], merged), true, nil
	})
}

// inlineColumns substitutes each column reference in e with the child
// projection's defining expression.
func inlineColumns(ctx context.Context, e plan.Expr, defs []plan.Expr) (plan.Expr, error) {
	switch v := e.(type) {
	case *plan.ColExpr:
		if v.ColPos < 0 || int(v.ColPos) >= len(defs) {
			return nil, serr.NewInternalError(ctx,
				"projection merge: column %d outside child projection of width %d",
				v.ColPos, len(defs))
		}
		return plan.DeepCopyExpr(defs[v.ColPos]), nil
	case *plan.LitExpr:
		return e, nil
	case *plan.FuncExpr:
		args := make([]plan.Expr, len(v.Args))
		for i, a := range v.Args {
			na, err := inlineColumns(ctx, a, defs)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return &plan.FuncExpr{Typ: v.Typ, Name: v.Name, Args: args}, nil
	case *plan.WindowExpr:
		fn, err := inlineColumns(ctx, v.Fn, defs)
		if err != nil {
			return nil, err
		}
		part := make([]plan.Expr, len(v.PartitionBy))
		for i, p := range v.PartitionBy {
			np, err := inlineColumns(ctx, p, defs)
			if err != nil {
				return nil, err
			}
			part[i] = np
		}
		order := make([]plan.OrderBySpec, len(v.OrderBy))
		for i, o := range v.OrderBy {
			no, err := inlineColumns(ctx, o.Expr, defs)
			if err != nil {
				return nil, err
			}
			order[i] = plan.OrderBySpec{Expr: no, Desc: o.Desc}
		}
		return &plan.WindowExpr{Typ: v.Typ, Fn: fn.(*plan.FuncExpr), PartitionBy: part, OrderBy: order}, nil
	case *plan.SubqueryExpr:
		test, err := inlineColumns(ctx, v.Test, defs)
		if err != nil {
			return nil, err
		}
		return &plan.SubqueryExpr{Typ: v.Typ, Test: test, Plan: v.Plan}, nil
	}
	return e, nil
}
