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

// Node constructors. Rules and tests build plans through these so that
// arity invariants hold from the start.

func NewTableScan(def *TableDef, source TableSource, projection []int32) *Node {
	return &Node{
		NodeType:   NodeTableScan,
		TableDef:   def,
		Source:     source,
		Projection: projection,
		Limit:      -1,
	}
}

func NewProject(child *Node, exprs []Expr) *Node {
	return &Node{
		NodeType:    NodeProject,
		Children:    []*Node{child},
		ProjectList: exprs,
		Limit:       -1,
	}
}

func NewFilter(child *Node, preds []Expr) *Node {
	return &Node{
		NodeType:   NodeFilter,
		Children:   []*Node{child},
		FilterList: preds,
		Limit:      -1,
	}
}

func NewFetch(child *Node, offset, limit int64) *Node {
	return &Node{
		NodeType: NodeFetch,
		Children: []*Node{child},
		Offset:   offset,
		Limit:    limit,
	}
}

func NewAgg(child *Node, groupBy, aggs []Expr) *Node {
	return &Node{
		NodeType: NodeAgg,
		Children: []*Node{child},
		GroupBy:  groupBy,
		AggList:  aggs,
		Limit:    -1,
	}
}

func NewSort(child *Node, orderBy []OrderBySpec) *Node {
	return &Node{
		NodeType: NodeSort,
		Children: []*Node{child},
		OrderBy:  orderBy,
		Limit:    -1,
	}
}

func NewWindow(child *Node, winExprs []Expr) *Node {
	return &Node{
		NodeType:    NodeWindow,
		Children:    []*Node{child},
		WinSpecList: winExprs,
		Limit:       -1,
	}
}

func NewJoin(left, right *Node, joinType JoinType, on []Expr) *Node {
	return &Node{
		NodeType: NodeJoin,
		Children: []*Node{left, right},
		JoinType: joinType,
		OnList:   on,
		Limit:    -1,
	}
}

func NewSetOp(setOpType SetOpType, children ...*Node) *Node {
	return &Node{
		NodeType:  NodeSetOp,
		Children:  children,
		SetOpType: setOpType,
		Limit:     -1,
	}
}

func NewExchange(child *Node, partitions int32) *Node {
	return &Node{
		NodeType:      NodeExchange,
		Children:      []*Node{child},
		NumPartitions: partitions,
		Limit:         -1,
	}
}

// Expression constructors.

func NewCol(pos int32, name string, typ Type) *ColExpr {
	return &ColExpr{ColPos: pos, Name: name, Typ: typ}
}

func NewStrLit(v string) *LitExpr {
	return &LitExpr{Typ: Type{Id: T_varchar}, Value: v}
}

func NewIntLit(v int64) *LitExpr {
	return &LitExpr{Typ: Type{Id: T_int64}, Value: v}
}

func NewFunc(name string, typ Type, args ...Expr) *FuncExpr {
	return &FuncExpr{Name: name, Typ: typ, Args: args}
}

// NewGetField builds a structural field access; the result type is looked
// up from the base type when resolvable.
func NewGetField(base Expr, field string) *FuncExpr {
	typ, _ := base.ReturnType().FieldType(field)
	return &FuncExpr{
		Typ:  typ,
		Name: FnGetField,
		Args: []Expr{base, NewStrLit(field)},
	}
}

// NewElementAt builds a list element access.
func NewElementAt(base Expr, index Expr) *FuncExpr {
	var typ Type
	if bt := base.ReturnType(); bt.Id == T_list && bt.Elem != nil {
		typ = *bt.Elem
	}
	return &FuncExpr{
		Typ:  typ,
		Name: FnElementAt,
		Args: []Expr{base, index},
	}
}
