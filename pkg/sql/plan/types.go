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

// Package plan defines the relational plan tree, the scalar expression
// tree, and the deep column requirement algebra that the optimizer rules
// in plan/rule operate on.
package plan

// NodeType tags the relation-node union.
type NodeType int32

const (
	NodeUnknown NodeType = iota
	NodeTableScan
	NodeProject
	NodeFilter
	NodeFetch
	NodeAgg
	NodeSort
	NodeWindow
	NodeJoin
	NodeSetOp
	NodeExchange
	NodeExtensionLeaf
	NodeExtensionSingle
	NodeExtensionMulti
)

var nodeTypeNames = map[NodeType]string{
	NodeUnknown:         "UNKNOWN",
	NodeTableScan:       "TABLE SCAN",
	NodeProject:         "PROJECT",
	NodeFilter:          "FILTER",
	NodeFetch:           "FETCH",
	NodeAgg:             "AGG",
	NodeSort:            "SORT",
	NodeWindow:          "WINDOW",
	NodeJoin:            "JOIN",
	NodeSetOp:           "SET OP",
	NodeExchange:        "EXCHANGE",
	NodeExtensionLeaf:   "EXTENSION LEAF",
	NodeExtensionSingle: "EXTENSION SINGLE",
	NodeExtensionMulti:  "EXTENSION MULTI",
}

func (t NodeType) String() string {
	if s, ok := nodeTypeNames[t]; ok {
		return s
	}
	return "INVALID"
}

type JoinType int32

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinOuter
	JoinSemi
	JoinAnti
)

var joinTypeNames = [...]string{"INNER", "LEFT", "RIGHT", "OUTER", "SEMI", "ANTI"}

func (t JoinType) String() string {
	if int(t) < len(joinTypeNames) {
		return joinTypeNames[t]
	}
	return "INVALID"
}

type SetOpType int32

const (
	SetOpUnion SetOpType = iota
	SetOpUnionAll
	SetOpIntersect
	SetOpMinus
)

var setOpTypeNames = [...]string{"UNION", "UNION ALL", "INTERSECT", "MINUS"}

func (t SetOpType) String() string {
	if int(t) < len(setOpTypeNames) {
		return setOpTypeNames[t]
	}
	return "INVALID"
}

// TypeId enumerates value types. Nested kinds (struct, map, list) carry
// their shape in Type.
type TypeId int32

const (
	T_any TypeId = iota
	T_bool
	T_int64
	T_float64
	T_varchar
	T_date
	T_timestamp
	T_struct
	T_map
	T_list
)

var typeIdNames = [...]string{
	"any", "bool", "int64", "float64", "varchar", "date", "timestamp",
	"struct", "map", "list",
}

func (t TypeId) String() string {
	if int(t) < len(typeIdNames) {
		return typeIdNames[t]
	}
	return "invalid"
}

// Type describes a column or expression type. Fields is set for T_struct;
// Elem is the element type for T_list and the value type for T_map (map
// keys are always strings here).
type Type struct {
	Id     TypeId
	Fields []*ColDef
	Elem   *Type
}

// FieldType returns the type of the named struct field or map value, and
// whether the name resolves.
func (t Type) FieldType(name string) (Type, bool) {
	switch t.Id {
	case T_struct:
		for _, f := range t.Fields {
			if f.Name == name {
				return f.Typ, true
			}
		}
	case T_map:
		if t.Elem != nil {
			return *t.Elem, true
		}
	}
	return Type{}, false
}

// ColDef is one column (or nested struct field) definition.
type ColDef struct {
	Name string
	Typ  Type
}

// TableDef is a table's declared full schema.
type TableDef struct {
	Name string
	Cols []*ColDef
}

// ColumnIndex returns the ordinal of the named column, or -1.
func (t *TableDef) ColumnIndex(name string) int32 {
	for i, c := range t.Cols {
		if c.Name == name {
			return int32(i)
		}
	}
	return -1
}

// OrderBySpec is one sort key.
type OrderBySpec struct {
	Expr Expr
	Desc bool
}

// PushdownSupport is a table source's answer for one filter conjunct.
type PushdownSupport int8

const (
	// PushdownUnsupported: the source cannot apply the filter; it stays in
	// the plan.
	PushdownUnsupported PushdownSupport = iota
	// PushdownInexact: the source applies the filter best-effort; the plan
	// keeps a copy to guarantee exact results.
	PushdownInexact
	// PushdownExact: the source applies the filter completely and it is
	// removed from the plan.
	PushdownExact
)

// TableSource is the planning-time view of a table provider. Execution
// capabilities (reading batches, deep projection reads) live in vm/engine;
// keeping the split lets the optimizer stay free of execution imports.
type TableSource interface {
	Name() string
	Schema() *TableDef

	// SupportsFilterPushdown reports, per filter, whether the source can
	// apply it during the scan. The result must have exactly one element
	// per filter; a length mismatch is a fatal planning error, enforced by
	// the caller.
	SupportsFilterPushdown(filters []Expr) ([]PushdownSupport, error)
}

// Node is a relation node. The payload fields meaningful for a given node
// are selected by NodeType; children are owned exclusively and the tree is
// acyclic by construction. Nodes are never mutated in place by the rewrite
// machinery: a rewrite either returns the identical node or a fresh one.
type Node struct {
	NodeType NodeType
	Children []*Node

	// PROJECT
	ProjectList []Expr
	// FILTER, and pushed-down conjuncts on TABLE SCAN
	FilterList []Expr
	// JOIN condition conjuncts; column ordinals span left then right input
	OnList []Expr
	// AGG; output schema is GroupBy then AggList
	GroupBy []Expr
	AggList []Expr
	// WINDOW; output schema is the input schema plus these, in order
	WinSpecList []Expr
	// SORT
	OrderBy []OrderBySpec

	// FETCH, and pushed-down limit on TABLE SCAN. -1 means unset.
	Limit  int64
	Offset int64

	JoinType  JoinType
	SetOpType SetOpType

	// EXCHANGE
	NumPartitions int32

	// EXTENSION *
	ExtensionName    string
	ExtensionPayload []byte

	// TABLE SCAN
	TableDef   *TableDef
	Source     TableSource
	Projection []int32 // flat column projection; nil means every column
	// DeepProjection is attached by the deep pruning rule, keyed by table
	// column ordinal. nil means full materialization of every projected
	// column.
	DeepProjection DeepColumnMap
}

// OutputWidth returns the number of columns the node produces.
func (n *Node) OutputWidth() int32 {
	switch n.NodeType {
	case NodeTableScan:
		if n.Projection != nil {
			return int32(len(n.Projection))
		}
		return int32(len(n.TableDef.Cols))
	case NodeProject:
		return int32(len(n.ProjectList))
	case NodeAgg:
		return int32(len(n.GroupBy) + len(n.AggList))
	case NodeWindow:
		return n.Children[0].OutputWidth() + int32(len(n.WinSpecList))
	case NodeJoin:
		return n.Children[0].OutputWidth() + n.Children[1].OutputWidth()
	case NodeFilter, NodeFetch, NodeSort, NodeExchange, NodeExtensionSingle:
		return n.Children[0].OutputWidth()
	case NodeSetOp:
		return n.Children[0].OutputWidth()
	case NodeExtensionMulti:
		if len(n.Children) > 0 {
			return n.Children[0].OutputWidth()
		}
	}
	return 0
}
