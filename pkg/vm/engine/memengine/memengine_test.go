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

package memengine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strataql/strata/pkg/sql/plan"
	"github.com/strataql/strata/pkg/vm/engine"
)

func eventsTable() *Table {
	def := &plan.TableDef{
		Name: "events",
		Cols: []*plan.ColDef{
			{Name: "id", Typ: plan.Type{Id: plan.T_int64}},
			{Name: "acp_date", Typ: plan.Type{Id: plan.T_varchar}},
			{Name: "experience", Typ: plan.Type{Id: plan.T_struct, Fields: []*plan.ColDef{
				{Name: "eVar56", Typ: plan.Type{Id: plan.T_varchar}},
				{Name: "eVar57", Typ: plan.Type{Id: plan.T_varchar}},
				{Name: "metrics", Typ: plan.Type{Id: plan.T_struct, Fields: []*plan.ColDef{
					{Name: "clicks", Typ: plan.Type{Id: plan.T_int64}},
					{Name: "views", Typ: plan.Type{Id: plan.T_int64}},
				}}},
			}}},
		},
	}
	rows := [][]interface{}{
		{int64(1), "2025-01-01", map[string]interface{}{
			"eVar56": "u1", "eVar57": "x1",
			"metrics": map[string]interface{}{"clicks": int64(3), "views": int64(9)},
		}},
		{int64(2), "2025-01-02", map[string]interface{}{
			"eVar56": "u2", "eVar57": "x2",
			"metrics": map[string]interface{}{"clicks": int64(5), "views": int64(11)},
		}},
		{int64(3), "2025-01-02", nil},
	}
	return NewTable(def, rows)
}

func readAll(t *testing.T, r engine.Reader) [][]interface{} {
	t.Helper()
	var rows [][]interface{}
	for {
		b, err := r.Next(context.Background())
		require.NoError(t, err)
		if b == nil {
			break
		}
		rows = append(rows, b.Rows...)
	}
	require.NoError(t, r.Close())
	return rows
}

func TestScanProjectionAndLimit(t *testing.T) {
	tab := eventsTable()
	r, err := tab.Scan(context.Background(), []int32{1}, nil, 2)
	require.NoError(t, err)
	rows := readAll(t, r)
	require.Equal(t, [][]interface{}{{"2025-01-01"}, {"2025-01-02"}}, rows)
}

func TestScanFilter(t *testing.T) {
	tab := eventsTable()
	pred := &plan.FuncExpr{Name: plan.FnEq, Typ: plan.Type{Id: plan.T_bool}, Args: []plan.Expr{
		&plan.ColExpr{ColPos: 1, Name: "acp_date", Typ: plan.Type{Id: plan.T_varchar}},
		&plan.LitExpr{Typ: plan.Type{Id: plan.T_varchar}, Value: "2025-01-02"},
	}}
	r, err := tab.Scan(context.Background(), []int32{0}, []plan.Expr{pred}, -1)
	require.NoError(t, err)
	rows := readAll(t, r)
	require.Equal(t, [][]interface{}{{int64(2)}, {int64(3)}}, rows)
}

func TestScanDeepNarrowsValues(t *testing.T) {
	tab := eventsTable()
	deep := plan.DeepColumnMap{}
	deep.Add(0, nil)
	deep.Add(2, plan.ParsePath("eVar56"))
	deep.Add(2, plan.ParsePath("metrics.clicks"))

	r, err := tab.ScanDeep(context.Background(), []int32{0, 2}, deep, nil, -1)
	require.NoError(t, err)
	rows := readAll(t, r)

	require.Equal(t, map[string]interface{}{
		"eVar56":  "u1",
		"metrics": map[string]interface{}{"clicks": int64(3)},
	}, rows[0][1])
	// Nulls narrow to nulls.
	require.Nil(t, rows[2][1])
}

func TestScanDeepNarrowsSchema(t *testing.T) {
	tab := eventsTable()
	deep := plan.DeepColumnMap{}
	deep.Add(2, plan.ParsePath("metrics.clicks"))

	r, err := tab.ScanDeep(context.Background(), []int32{2}, deep, nil, -1)
	require.NoError(t, err)
	b, err := r.Next(context.Background())
	require.NoError(t, err)

	exp := b.Schema.Cols[0]
	require.Equal(t, "experience", exp.Name)
	require.Len(t, exp.Typ.Fields, 1)
	require.Equal(t, "metrics", exp.Typ.Fields[0].Name)
	require.Len(t, exp.Typ.Fields[0].Typ.Fields, 1)
	require.Equal(t, "clicks", exp.Typ.Fields[0].Typ.Fields[0].Name)
}

func TestScanDeepSkipsUnrequestedColumns(t *testing.T) {
	tab := eventsTable()
	deep := plan.DeepColumnMap{}
	deep.Add(0, nil)

	// Column 2 is projected but absent from the map: it is not read.
	r, err := tab.ScanDeep(context.Background(), []int32{0, 2}, deep, nil, -1)
	require.NoError(t, err)
	rows := readAll(t, r)
	require.Equal(t, int64(1), rows[0][0])
	require.Nil(t, rows[0][1])
}

func TestScanDeepWholeColumnPath(t *testing.T) {
	tab := eventsTable()
	deep := plan.DeepColumnMap{}
	deep.Add(2, nil)

	r, err := tab.ScanDeep(context.Background(), []int32{2}, deep, nil, -1)
	require.NoError(t, err)
	rows := readAll(t, r)
	require.Equal(t, map[string]interface{}{
		"eVar56": "u1", "eVar57": "x1",
		"metrics": map[string]interface{}{"clicks": int64(3), "views": int64(9)},
	}, rows[0][0])
}

func TestSupportsFilterPushdownVerdicts(t *testing.T) {
	tab := eventsTable()
	exact := &plan.FuncExpr{Name: plan.FnEq, Args: []plan.Expr{
		&plan.ColExpr{ColPos: 1}, &plan.LitExpr{Value: "2025-01-01"},
	}}
	inexact := &plan.FuncExpr{Name: plan.FnIsNotNull, Args: []plan.Expr{
		&plan.FuncExpr{Name: plan.FnGetField, Args: []plan.Expr{
			&plan.ColExpr{ColPos: 2}, &plan.LitExpr{Value: "eVar56"},
		}},
	}}
	unsupported := &plan.FuncExpr{Name: "regexp_like", Args: []plan.Expr{
		&plan.ColExpr{ColPos: 1},
	}}

	got, err := tab.SupportsFilterPushdown([]plan.Expr{exact, inexact, unsupported})
	require.NoError(t, err)
	require.Equal(t, []plan.PushdownSupport{
		plan.PushdownExact,
		plan.PushdownInexact,
		plan.PushdownUnsupported,
	}, got)
}

func TestEngineCatalog(t *testing.T) {
	e := New()
	tab := eventsTable()
	require.NoError(t, e.AddTable(tab))
	require.Error(t, e.AddTable(tab))

	got, err := e.Table("events")
	require.NoError(t, err)
	require.Same(t, tab, got)

	_, err = e.Table("ghost")
	require.Error(t, err)
}

func TestReadAfterClose(t *testing.T) {
	tab := eventsTable()
	r, err := tab.Scan(context.Background(), nil, nil, -1)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	_, err = r.Next(context.Background())
	require.Error(t, err)
}
