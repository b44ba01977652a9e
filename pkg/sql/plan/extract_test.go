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
	"testing"

	"github.com/stretchr/testify/require"
)

func structType(fields ...*ColDef) Type {
	return Type{Id: T_struct, Fields: fields}
}

func listType(elem Type) Type {
	return Type{Id: T_list, Elem: &elem}
}

// col1 has shape {sc1 int64, st1 {sc1 int64, lst list<{sc1 int64}>}}.
func nestedCol() *ColExpr {
	inner := structType(&ColDef{Name: "sc1", Typ: Type{Id: T_int64}})
	return NewCol(1, "col1", structType(
		&ColDef{Name: "sc1", Typ: Type{Id: T_int64}},
		&ColDef{Name: "st1", Typ: structType(
			&ColDef{Name: "sc1", Typ: Type{Id: T_int64}},
			&ColDef{Name: "lst", Typ: listType(inner)},
		)},
	))
}

func TestExtractBareColumn(t *testing.T) {
	m := ExprDeepColumns(NewCol(2, "a", Type{Id: T_int64}))
	require.Equal(t, "{2: []}", m.String())
}

func TestExtractFieldChain(t *testing.T) {
	e := NewGetField(NewGetField(nestedCol(), "st1"), "sc1")
	m := ExprDeepColumns(e)
	require.Equal(t, "{1: [st1.sc1]}", m.String())
}

func TestExtractNonLiteralFieldName(t *testing.T) {
	// get_field(col1, other_col) cannot be named statically: both columns
	// degrade to whole-column paths.
	e := NewFunc(FnGetField, Type{}, nestedCol(), NewCol(3, "name_col", Type{Id: T_varchar}))
	m := ExprDeepColumns(e)
	require.Equal(t, "{1: [], 3: []}", m.String())
}

func TestExtractListFreezesPath(t *testing.T) {
	// col1[st1][lst][0][sc1]: the element access freezes the path at
	// st1.lst; the trailing field access must not extend it.
	e := NewGetField(
		NewElementAt(NewGetField(NewGetField(nestedCol(), "st1"), "lst"), NewIntLit(0)),
		"sc1",
	)
	m := ExprDeepColumns(e)
	require.Equal(t, "{1: [st1.lst]}", m.String())
}

func TestExtractElementAtIndexColumns(t *testing.T) {
	// The index expression's own accesses count too.
	e := NewElementAt(
		NewGetField(NewGetField(nestedCol(), "st1"), "lst"),
		NewGetField(NewCol(4, "col4", structType(&ColDef{Name: "idx", Typ: Type{Id: T_int64}})), "idx"),
	)
	m := ExprDeepColumns(e)
	require.Equal(t, "{1: [st1.lst], 4: [idx]}", m.String())
}

func TestExtractOpaqueOperatorCutsChain(t *testing.T) {
	// coalesce(col1[st1][sc1], 0) is not a chain, but the clean chain
	// beneath it still narrows.
	e := NewFunc(FnCoalesce, Type{Id: T_int64},
		NewGetField(NewGetField(nestedCol(), "st1"), "sc1"),
		NewIntLit(0),
	)
	m := ExprDeepColumns(e)
	require.Equal(t, "{1: [st1.sc1]}", m.String())

	// A field access ON TOP of an opaque operator degrades the operands:
	// get_field(coalesce(col1, col2), 'sc1') needs both columns whole.
	top := NewGetField(
		NewFunc(FnCoalesce, nestedCol().Typ, nestedCol(), NewCol(2, "col2", nestedCol().Typ)),
		"sc1",
	)
	m = ExprDeepColumns(top)
	require.Equal(t, "{1: [], 2: []}", m.String())
}

func TestExtractWindowExpr(t *testing.T) {
	lag := NewFunc(FnLag, Type{Id: T_int64}, NewGetField(NewGetField(nestedCol(), "st1"), "sc1"))
	w := &WindowExpr{
		Typ:         Type{Id: T_int64},
		Fn:          lag,
		PartitionBy: []Expr{NewCol(0, "k", Type{Id: T_int64})},
		OrderBy:     []OrderBySpec{{Expr: NewGetField(nestedCol(), "sc1")}},
	}
	m := ExprDeepColumns(w)
	require.Equal(t, "{0: [], 1: [sc1, st1.sc1]}", m.String())
}

func TestExtractSubqueryTestOnly(t *testing.T) {
	inner := NewTableScan(&TableDef{Name: "u", Cols: []*ColDef{{Name: "a"}}}, nil, nil)
	sq := &SubqueryExpr{
		Typ:  Type{Id: T_bool},
		Test: NewGetField(nestedCol(), "sc1"),
		Plan: inner,
	}
	m := ExprDeepColumns(sq)
	require.Equal(t, "{1: [sc1]}", m.String())
}
