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

package main

import (
	"context"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/sql/plan"
	"github.com/strataql/strata/pkg/vm/engine/memengine"
)

// The demo catalog is a single wide events table with two struct columns,
// the shape that makes sub-field pruning visible.
func demoCatalog() *memengine.Engine {
	def := &plan.TableDef{
		Name: "events",
		Cols: []*plan.ColDef{
			{Name: "timestamp", Typ: plan.Type{Id: plan.T_int64}},
			{Name: "acp_date", Typ: plan.Type{Id: plan.T_varchar}},
			{Name: "endUserIDs", Typ: plan.Type{Id: plan.T_struct, Fields: []*plan.ColDef{
				{Name: "aaid_id", Typ: plan.Type{Id: plan.T_varchar}},
				{Name: "mcid_id", Typ: plan.Type{Id: plan.T_varchar}},
			}}},
			{Name: "experience", Typ: plan.Type{Id: plan.T_struct, Fields: []*plan.ColDef{
				{Name: "eVar56", Typ: plan.Type{Id: plan.T_varchar}},
				{Name: "eVar57", Typ: plan.Type{Id: plan.T_varchar}},
			}}},
		},
	}
	rows := [][]interface{}{
		{int64(1000), "2025-01-01",
			map[string]interface{}{"aaid_id": "a-1", "mcid_id": "m-1"},
			map[string]interface{}{"eVar56": "u1", "eVar57": "x1"}},
		{int64(1001), "2025-01-01",
			map[string]interface{}{"aaid_id": "a-2", "mcid_id": "m-2"},
			map[string]interface{}{"eVar56": "u2", "eVar57": "x2"}},
		{int64(1002), "2025-01-02",
			map[string]interface{}{"aaid_id": "a-3", "mcid_id": "m-3"},
			map[string]interface{}{"eVar56": "u3", "eVar57": "x3"}},
	}

	eng := memengine.New()
	if err := eng.AddTable(memengine.NewTable(def, rows)); err != nil {
		panic(err)
	}
	return eng
}

var demoBuilders = map[string]func(*memengine.Table) *plan.Node{
	"deep-chains":     deepChainsPlan,
	"count-rows":      countRowsPlan,
	"whole-row":       wholeRowPlan,
	"filter-pushdown": filterPushdownPlan,
}

func demoPlanNames() []string {
	names := make([]string, 0, len(demoBuilders))
	for name := range demoBuilders {
		names = append(names, name)
	}
	return names
}

func demoPlan(name string) (*plan.Node, error) {
	build, ok := demoBuilders[name]
	if !ok {
		return nil, serr.NewInvalidInput(context.Background(),
			"unknown demo plan %q, run 'strata-explain plans' for the list", name)
	}
	eng := demoCatalog()
	events, err := eng.Table("events")
	if err != nil {
		return nil, err
	}
	return build(events), nil
}

func scanEvents(events *memengine.Table) *plan.Node {
	return plan.NewTableScan(events.Schema(), events, nil)
}

func eventsCol(events *memengine.Table, pos int32) *plan.ColExpr {
	col := events.Schema().Cols[pos]
	return plan.NewCol(pos, col.Name, col.Typ)
}

// SELECT endUserIDs.aaid_id, experience.eVar56 FROM events
// WHERE acp_date = '2025-01-01' LIMIT 10
func deepChainsPlan(events *memengine.Table) *plan.Node {
	boolTyp := plan.Type{Id: plan.T_bool}
	filtered := plan.NewFilter(scanEvents(events), []plan.Expr{
		plan.NewFunc(plan.FnEq, boolTyp, eventsCol(events, 1), plan.NewStrLit("2025-01-01")),
	})
	projected := plan.NewProject(filtered, []plan.Expr{
		plan.NewGetField(eventsCol(events, 2), "aaid_id"),
		plan.NewGetField(eventsCol(events, 3), "eVar56"),
	})
	return plan.NewFetch(projected, 0, 10)
}

// SELECT count(acp_date) FROM events WHERE acp_date = '2025-01-01'
func countRowsPlan(events *memengine.Table) *plan.Node {
	boolTyp := plan.Type{Id: plan.T_bool}
	filtered := plan.NewFilter(scanEvents(events), []plan.Expr{
		plan.NewFunc(plan.FnEq, boolTyp, eventsCol(events, 1), plan.NewStrLit("2025-01-01")),
	})
	return plan.NewAgg(filtered, nil, []plan.Expr{
		plan.NewFunc(plan.FnCount, plan.Type{Id: plan.T_int64}, eventsCol(events, 1)),
	})
}

// SELECT * FROM events
func wholeRowPlan(events *memengine.Table) *plan.Node {
	exprs := make([]plan.Expr, 0, len(events.Schema().Cols))
	for i := range events.Schema().Cols {
		exprs = append(exprs, eventsCol(events, int32(i)))
	}
	return plan.NewProject(scanEvents(events), exprs)
}

// SELECT experience.eVar56 FROM events
// WHERE acp_date = '2025-01-01' AND isnotnull(endUserIDs.aaid_id)
func filterPushdownPlan(events *memengine.Table) *plan.Node {
	boolTyp := plan.Type{Id: plan.T_bool}
	filtered := plan.NewFilter(scanEvents(events), []plan.Expr{
		plan.NewFunc(plan.FnEq, boolTyp, eventsCol(events, 1), plan.NewStrLit("2025-01-01")),
		plan.NewFunc(plan.FnIsNotNull, boolTyp,
			plan.NewGetField(eventsCol(events, 2), "aaid_id")),
	})
	return plan.NewProject(filtered, []plan.Expr{
		plan.NewGetField(eventsCol(events, 3), "eVar56"),
	})
}
