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

// Package explain renders plan trees as deterministic text and JSON,
// including the deep projection maps attached to scans.
package explain

import (
	"fmt"
	"strings"

	"github.com/strataql/strata/pkg/sql/plan"
)

// ExplainPlan renders the tree, one node per line, children indented under
// their parent.
func ExplainPlan(root *plan.Node) string {
	var b strings.Builder
	writeNode(&b, root, 0, false)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func writeLine(b *strings.Builder, depth int, format string, args ...interface{}) {
	indent(b, depth)
	fmt.Fprintf(b, format, args...)
	b.WriteString("\n")
}

func exprList(list []plan.Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func orderList(list []plan.OrderBySpec) string {
	parts := make([]string, len(list))
	for i, o := range list {
		parts[i] = o.Expr.String()
		if o.Desc {
			parts[i] += " desc"
		}
	}
	return strings.Join(parts, ", ")
}

func writeNode(b *strings.Builder, n *plan.Node, depth int, arrow bool) {
	head := nodeHeader(n)
	if arrow {
		writeLine(b, depth, "-> %s", head)
	} else {
		writeLine(b, depth, "%s", head)
	}
	writeDetails(b, n, depth+1)

	for _, sub := range subqueryPlans(n) {
		writeLine(b, depth+1, "Subquery Plan:")
		writeNode(b, sub, depth+2, false)
	}
	for _, c := range n.Children {
		writeNode(b, c, depth+1, true)
	}
}

func nodeHeader(n *plan.Node) string {
	switch n.NodeType {
	case plan.NodeTableScan:
		return "Table Scan on " + n.TableDef.Name
	case plan.NodeProject:
		return "Project"
	case plan.NodeFilter:
		return "Filter"
	case plan.NodeFetch:
		return fmt.Sprintf("Limit (offset=%d, count=%d)", n.Offset, n.Limit)
	case plan.NodeAgg:
		return "Aggregate"
	case plan.NodeSort:
		return "Sort"
	case plan.NodeWindow:
		return "Window"
	case plan.NodeJoin:
		return fmt.Sprintf("Join (%s)", n.JoinType)
	case plan.NodeSetOp:
		return fmt.Sprintf("Set Op (%s)", n.SetOpType)
	case plan.NodeExchange:
		return fmt.Sprintf("Exchange (partitions=%d)", n.NumPartitions)
	case plan.NodeExtensionLeaf, plan.NodeExtensionSingle, plan.NodeExtensionMulti:
		return fmt.Sprintf("Extension (%s)", n.ExtensionName)
	}
	return fmt.Sprintf("Unknown (%d)", int32(n.NodeType))
}

func writeDetails(b *strings.Builder, n *plan.Node, depth int) {
	switch n.NodeType {
	case plan.NodeTableScan:
		if n.Projection != nil {
			cols := make([]string, len(n.Projection))
			for i, c := range n.Projection {
				cols[i] = n.TableDef.Cols[c].Name
			}
			writeLine(b, depth, "Columns: %s", strings.Join(cols, ", "))
		}
		if n.DeepProjection != nil {
			writeLine(b, depth, "Deep Projection: %s", n.DeepProjection)
		}
		if len(n.FilterList) > 0 {
			writeLine(b, depth, "Filter Cond: %s", exprList(n.FilterList))
		}
		if n.Limit >= 0 {
			writeLine(b, depth, "Limit: %d", n.Limit)
		}
	case plan.NodeProject:
		writeLine(b, depth, "Exprs: %s", exprList(n.ProjectList))
	case plan.NodeFilter:
		writeLine(b, depth, "Filter Cond: %s", exprList(n.FilterList))
	case plan.NodeAgg:
		if len(n.GroupBy) > 0 {
			writeLine(b, depth, "Group Key: %s", exprList(n.GroupBy))
		}
		if len(n.AggList) > 0 {
			writeLine(b, depth, "Aggregate Functions: %s", exprList(n.AggList))
		}
	case plan.NodeSort:
		writeLine(b, depth, "Sort Key: %s", orderList(n.OrderBy))
	case plan.NodeWindow:
		writeLine(b, depth, "Window Functions: %s", exprList(n.WinSpecList))
	case plan.NodeJoin:
		if len(n.OnList) > 0 {
			writeLine(b, depth, "Join Cond: %s", exprList(n.OnList))
		}
	}
}

func subqueryPlans(n *plan.Node) []*plan.Node {
	var subs []*plan.Node
	for _, list := range [][]plan.Expr{n.ProjectList, n.FilterList, n.OnList, n.GroupBy, n.AggList, n.WinSpecList} {
		for _, e := range list {
			plan.WalkExpr(e, func(sub plan.Expr) {
				if sq, ok := sub.(*plan.SubqueryExpr); ok {
					subs = append(subs, sq.Plan)
				}
			})
		}
	}
	return subs
}
