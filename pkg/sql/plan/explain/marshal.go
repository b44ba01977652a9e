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

package explain

import (
	"encoding/json"

	"github.com/strataql/strata/pkg/sql/plan"
)

// jsonNode is the serialized shape of a plan node. Expressions appear in
// their rendered form; deep projections as sorted path lists per column.
type jsonNode struct {
	Kind           string              `json:"kind"`
	Table          string              `json:"table,omitempty"`
	Columns        []string            `json:"columns,omitempty"`
	DeepProjection map[string][]string `json:"deep_projection,omitempty"`
	Exprs          []string            `json:"exprs,omitempty"`
	Filters        []string            `json:"filters,omitempty"`
	JoinType       string              `json:"join_type,omitempty"`
	JoinCond       []string            `json:"join_cond,omitempty"`
	GroupKey       []string            `json:"group_key,omitempty"`
	Aggregates     []string            `json:"aggregates,omitempty"`
	WindowFuncs    []string            `json:"window_funcs,omitempty"`
	SortKey        []string            `json:"sort_key,omitempty"`
	SetOpType      string              `json:"set_op_type,omitempty"`
	Offset         int64               `json:"offset,omitempty"`
	Limit          *int64              `json:"limit,omitempty"`
	Extension      string              `json:"extension,omitempty"`
	Children       []*jsonNode         `json:"children,omitempty"`
}

// MarshalPlan serializes the plan tree as indented JSON.
func MarshalPlan(root *plan.Node) ([]byte, error) {
	return json.MarshalIndent(toJSONNode(root), "", "  ")
}

func exprStrings(list []plan.Expr) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.String()
	}
	return out
}

func toJSONNode(n *plan.Node) *jsonNode {
	j := &jsonNode{Kind: n.NodeType.String()}
	switch n.NodeType {
	case plan.NodeTableScan:
		j.Table = n.TableDef.Name
		if n.Projection != nil {
			for _, c := range n.Projection {
				j.Columns = append(j.Columns, n.TableDef.Cols[c].Name)
			}
		}
		if n.DeepProjection != nil {
			j.DeepProjection = map[string][]string{}
			for _, col := range n.DeepProjection.Columns() {
				name := n.TableDef.Cols[col].Name
				paths := []string{}
				if !n.DeepProjection[col].IsWholeColumn() {
					for _, p := range n.DeepProjection[col].Sorted() {
						paths = append(paths, p.String())
					}
				}
				j.DeepProjection[name] = paths
			}
		}
		j.Filters = exprStrings(n.FilterList)
		if n.Limit >= 0 {
			l := n.Limit
			j.Limit = &l
		}
	case plan.NodeProject:
		j.Exprs = exprStrings(n.ProjectList)
	case plan.NodeFilter:
		j.Filters = exprStrings(n.FilterList)
	case plan.NodeFetch:
		j.Offset = n.Offset
		l := n.Limit
		j.Limit = &l
	case plan.NodeAgg:
		j.GroupKey = exprStrings(n.GroupBy)
		j.Aggregates = exprStrings(n.AggList)
	case plan.NodeSort:
		for _, o := range n.OrderBy {
			s := o.Expr.String()
			if o.Desc {
				s += " desc"
			}
			j.SortKey = append(j.SortKey, s)
		}
	case plan.NodeWindow:
		j.WindowFuncs = exprStrings(n.WinSpecList)
	case plan.NodeJoin:
		j.JoinType = n.JoinType.String()
		j.JoinCond = exprStrings(n.OnList)
	case plan.NodeSetOp:
		j.SetOpType = n.SetOpType.String()
	case plan.NodeExtensionLeaf, plan.NodeExtensionSingle, plan.NodeExtensionMulti:
		j.Extension = n.ExtensionName
	}
	for _, c := range n.Children {
		j.Children = append(j.Children, toJSONNode(c))
	}
	return j
}
