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

func reqOf(entries map[int32][]string) DeepColumnMap {
	m := DeepColumnMap{}
	for col, paths := range entries {
		if len(paths) == 0 {
			m.Add(col, nil)
			continue
		}
		for _, p := range paths {
			m.Add(col, ParsePath(p))
		}
	}
	return m
}

func TestTranslateProjectionChainComposition(t *testing.T) {
	// SELECT col1[st1] AS s FROM ...; consumer wants s.sc1.
	proj := []Expr{NewGetField(nestedCol(), "st1")}
	req := reqOf(map[int32][]string{0: {"sc1"}})
	got := TranslateThroughProjection(req, proj)
	require.Equal(t, "{1: [st1.sc1]}", got.String())
}

func TestTranslateProjectionWholeOutput(t *testing.T) {
	// Consumer wants the whole projected chain: base path stands.
	proj := []Expr{NewGetField(nestedCol(), "st1")}
	req := reqOf(map[int32][]string{0: nil})
	got := TranslateThroughProjection(req, proj)
	require.Equal(t, "{1: [st1]}", got.String())
}

func TestTranslateProjectionNonChain(t *testing.T) {
	// Output 0 is col0 + 1: not a chain. The consumer's sub-path below it
	// is discarded and the operand's extraction stands.
	proj := []Expr{NewFunc(FnPlus, Type{Id: T_int64}, NewCol(0, "a", Type{Id: T_int64}), NewIntLit(1))}
	req := reqOf(map[int32][]string{0: {"x"}})
	got := TranslateThroughProjection(req, proj)
	require.Equal(t, "{0: []}", got.String())
}

func TestTranslateProjectionFrozenChain(t *testing.T) {
	// Output 0 is col1[st1][lst][0]: list access froze the path; consumer
	// sub-paths must not extend it.
	proj := []Expr{NewElementAt(NewGetField(NewGetField(nestedCol(), "st1"), "lst"), NewIntLit(0))}
	req := reqOf(map[int32][]string{0: {"sc1"}})
	got := TranslateThroughProjection(req, proj)
	require.Equal(t, "{1: [st1.lst]}", got.String())
}

func TestTranslateProjectionDropsUnusedColumns(t *testing.T) {
	proj := []Expr{
		NewGetField(nestedCol(), "sc1"),
		NewCol(5, "unused", Type{Id: T_int64}),
	}
	req := reqOf(map[int32][]string{0: nil})
	got := TranslateThroughProjection(req, proj)
	require.Equal(t, "{1: [sc1]}", got.String())
}

func TestTranslateFilter(t *testing.T) {
	req := reqOf(map[int32][]string{0: {"a"}})
	pred := []Expr{NewFunc(FnEq, Type{Id: T_bool},
		NewGetField(nestedCol(), "sc1"), NewIntLit(7))}
	got := TranslateThroughFilter(req, pred)
	require.Equal(t, "{0: [a], 1: [sc1]}", got.String())

	// The input requirement is not mutated.
	require.Equal(t, "{0: [a]}", req.String())
}

func TestTranslateJoinSplitsByWidth(t *testing.T) {
	req := reqOf(map[int32][]string{0: {"a"}, 2: {"b"}, 3: nil})
	on := []Expr{NewFunc(FnEq, Type{Id: T_bool},
		NewCol(1, "lk", Type{Id: T_int64}),
		NewCol(2, "rk", Type{Id: T_int64}))}
	left, right := TranslateThroughJoin(req, on, 2)
	require.Equal(t, "{0: [a], 1: []}", left.String())
	// The condition reads right column 0 whole, so the empty path dominates
	// the consumer's [b].
	require.Equal(t, "{0: [], 1: []}", right.String())
}

func TestTranslateJoinConditionChainSurvivesUnion(t *testing.T) {
	st := Type{Id: T_struct, Fields: []*ColDef{
		{Name: "k", Typ: Type{Id: T_int64}},
		{Name: "b", Typ: Type{Id: T_int64}},
	}}
	req := reqOf(map[int32][]string{2: {"b"}, 3: nil})
	on := []Expr{NewFunc(FnEq, Type{Id: T_bool},
		NewCol(1, "lk", Type{Id: T_int64}),
		NewGetField(NewCol(2, "rk", st), "k"))}
	left, right := TranslateThroughJoin(req, on, 2)
	require.Equal(t, "{1: []}", left.String())
	require.Equal(t, "{0: [b, k], 1: []}", right.String())
}

func TestTranslateAggIgnoresOutputReq(t *testing.T) {
	groupBy := []Expr{NewGetField(nestedCol(), "sc1")}
	aggs := []Expr{NewFunc(FnSum, Type{Id: T_int64}, NewGetField(NewGetField(nestedCol(), "st1"), "sc1"))}
	// Whatever the consumer demands, the input need is only what the keys
	// and aggregate arguments touch.
	got := TranslateThroughAgg(groupBy, aggs)
	require.Equal(t, "{1: [sc1, st1.sc1]}", got.String())
}

func TestTranslateWindow(t *testing.T) {
	lag := &WindowExpr{
		Typ: Type{Id: T_int64},
		Fn:  NewFunc(FnLag, Type{Id: T_int64}, NewGetField(NewGetField(nestedCol(), "st1"), "sc1")),
	}
	// Input has 2 columns; ordinal 2 is the appended window column.
	req := reqOf(map[int32][]string{0: {"a"}, 2: nil})
	got := TranslateThroughWindow(req, []Expr{lag}, 2)
	require.Equal(t, "{0: [a], 1: [st1.sc1]}", got.String())
}

func TestTranslateSort(t *testing.T) {
	req := reqOf(map[int32][]string{0: {"a"}})
	got := TranslateThroughSort(req, []OrderBySpec{{Expr: NewGetField(nestedCol(), "sc1")}})
	require.Equal(t, "{0: [a], 1: [sc1]}", got.String())
}

func TestTranslateDistributesOverUnion(t *testing.T) {
	a := reqOf(map[int32][]string{0: {"sc1"}})
	b := reqOf(map[int32][]string{0: {"st1"}})
	pred := []Expr{NewFunc(FnIsNotNull, Type{Id: T_bool}, NewGetField(nestedCol(), "sc1"))}

	lhs := TranslateThroughFilter(Union(a, b), pred)
	rhs := Union(TranslateThroughFilter(a, pred), TranslateThroughFilter(b, pred))
	require.True(t, lhs.Equal(rhs))
}
