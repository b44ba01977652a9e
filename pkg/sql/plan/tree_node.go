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

import (
	"context"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/common/tree"
)

// checkArity verifies that the node kind is known and that the child count
// matches it. An unknown kind or a wrong arity means the tree was built by
// code that bypassed the constructors, which no rewrite can recover from.
func (n *Node) checkArity() error {
	var want string
	switch n.NodeType {
	case NodeTableScan, NodeExtensionLeaf:
		if len(n.Children) == 0 {
			return nil
		}
		want = "no children"
	case NodeProject, NodeFilter, NodeFetch, NodeAgg, NodeSort, NodeWindow,
		NodeExchange, NodeExtensionSingle:
		if len(n.Children) == 1 {
			return nil
		}
		want = "one child"
	case NodeJoin:
		if len(n.Children) == 2 {
			return nil
		}
		want = "two children"
	case NodeSetOp, NodeExtensionMulti:
		if len(n.Children) >= 1 {
			return nil
		}
		want = "at least one child"
	default:
		return serr.NewInvalidState(context.Background(),
			"relation node has unknown kind %d", int32(n.NodeType))
	}
	return serr.NewInvalidState(context.Background(),
		"%s node has %d children, want %s", n.NodeType, len(n.Children), want)
}

// ApplyChildren implements tree.Node.
func (n *Node) ApplyChildren(f func(*Node) (tree.Recursion, error)) (tree.Recursion, error) {
	if err := n.checkArity(); err != nil {
		return tree.Stop, err
	}
	for _, c := range n.Children {
		r, err := f(c)
		if err != nil {
			return tree.Stop, err
		}
		if r == tree.Stop {
			return tree.Stop, nil
		}
	}
	return tree.Continue, nil
}

// MapChildren implements tree.Node. When no child changes, the receiver is
// returned untouched so unchanged subtrees stay shared.
func (n *Node) MapChildren(f func(*Node) (*Node, bool, error)) (*Node, bool, error) {
	if err := n.checkArity(); err != nil {
		return n, false, err
	}
	if len(n.Children) == 0 {
		return n, false, nil
	}
	changed := false
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		nc, ch, err := f(c)
		if err != nil {
			return n, false, err
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
}

// CollectTableScans gathers every TABLE SCAN node in pre-order, descending
// into subquery plans right after the node that owns them.
func CollectTableScans(root *Node) []*Node {
	var scans []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.NodeType == NodeTableScan {
			scans = append(scans, n)
		}
		for _, e := range nodeExprs(n) {
			WalkExpr(e, func(sub Expr) {
				if sq, ok := sub.(*SubqueryExpr); ok {
					walk(sq.Plan)
				}
			})
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return scans
}

// nodeExprs returns every scalar expression a node owns, in schema order.
func nodeExprs(n *Node) []Expr {
	var out []Expr
	out = append(out, n.ProjectList...)
	out = append(out, n.FilterList...)
	out = append(out, n.OnList...)
	out = append(out, n.GroupBy...)
	out = append(out, n.AggList...)
	out = append(out, n.WinSpecList...)
	for _, o := range n.OrderBy {
		out = append(out, o.Expr)
	}
	return out
}

// WalkExpr visits e and every sub-expression in pre-order. Subquery plans
// are not descended into; the visitor sees the SubqueryExpr itself.
func WalkExpr(e Expr, f func(Expr)) {
	f(e)
	switch v := e.(type) {
	case *FuncExpr:
		for _, a := range v.Args {
			WalkExpr(a, f)
		}
	case *WindowExpr:
		WalkExpr(v.Fn, f)
		for _, p := range v.PartitionBy {
			WalkExpr(p, f)
		}
		for _, o := range v.OrderBy {
			WalkExpr(o.Expr, f)
		}
	case *SubqueryExpr:
		WalkExpr(v.Test, f)
	}
}
