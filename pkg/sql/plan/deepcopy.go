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

// DeepCopyExpr clones an expression, including any embedded subquery plan.
func DeepCopyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *ColExpr:
		c := *v
		return &c
	case *LitExpr:
		c := *v
		return &c
	case *FuncExpr:
		args := make([]Expr, len(v.Args))
		for i, a := range v.Args {
			args[i] = DeepCopyExpr(a)
		}
		return &FuncExpr{Typ: v.Typ, Name: v.Name, Args: args}
	case *WindowExpr:
		fn := DeepCopyExpr(v.Fn).(*FuncExpr)
		part := make([]Expr, len(v.PartitionBy))
		for i, p := range v.PartitionBy {
			part[i] = DeepCopyExpr(p)
		}
		return &WindowExpr{
			Typ:         v.Typ,
			Fn:          fn,
			PartitionBy: part,
			OrderBy:     DeepCopyOrderBy(v.OrderBy),
		}
	case *SubqueryExpr:
		return &SubqueryExpr{
			Typ:  v.Typ,
			Test: DeepCopyExpr(v.Test),
			Plan: DeepCopyNode(v.Plan),
		}
	}
	return e
}

func DeepCopyExprList(list []Expr) []Expr {
	if list == nil {
		return nil
	}
	out := make([]Expr, len(list))
	for i, e := range list {
		out[i] = DeepCopyExpr(e)
	}
	return out
}

func DeepCopyOrderBy(list []OrderBySpec) []OrderBySpec {
	if list == nil {
		return nil
	}
	out := make([]OrderBySpec, len(list))
	for i, o := range list {
		out[i] = OrderBySpec{Expr: DeepCopyExpr(o.Expr), Desc: o.Desc}
	}
	return out
}

// DeepCopyNode clones a whole plan tree. TableDef and Source are shared;
// they are immutable during optimization.
func DeepCopyNode(n *Node) *Node {
	if n == nil {
		return nil
	}
	nn := *n
	if n.Children != nil {
		nn.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			nn.Children[i] = DeepCopyNode(c)
		}
	}
	nn.ProjectList = DeepCopyExprList(n.ProjectList)
	nn.FilterList = DeepCopyExprList(n.FilterList)
	nn.OnList = DeepCopyExprList(n.OnList)
	nn.GroupBy = DeepCopyExprList(n.GroupBy)
	nn.AggList = DeepCopyExprList(n.AggList)
	nn.WinSpecList = DeepCopyExprList(n.WinSpecList)
	nn.OrderBy = DeepCopyOrderBy(n.OrderBy)
	if n.Projection != nil {
		nn.Projection = make([]int32, len(n.Projection))
		copy(nn.Projection, n.Projection)
	}
	nn.DeepProjection = n.DeepProjection.Clone()
	return &nn
}
