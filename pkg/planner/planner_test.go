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

package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/sql/plan"
)

func testConfig() config.OptimizerConfig {
	return config.OptimizerConfig{
		MaxPasses: config.DefaultMaxPasses,
		DeepPruningFlags: config.FlagDeepPruning |
			config.FlagProjectionMerging |
			config.FlagSubqueryTranslation,
	}
}

func narrowingPlan() *plan.Node {
	def := &plan.TableDef{
		Name: "events",
		Cols: []*plan.ColDef{
			{Name: "acp_date", Typ: plan.Type{Id: plan.T_varchar}},
			{Name: "experience", Typ: plan.Type{Id: plan.T_struct, Fields: []*plan.ColDef{
				{Name: "eVar56", Typ: plan.Type{Id: plan.T_varchar}},
				{Name: "eVar57", Typ: plan.Type{Id: plan.T_varchar}},
			}}},
		},
	}
	return plan.NewProject(
		plan.NewTableScan(def, nil, nil),
		[]plan.Expr{plan.NewGetField(plan.NewCol(1, "experience", def.Cols[1].Typ), "eVar56")},
	)
}

func TestOptimizeAttachesDeepProjection(t *testing.T) {
	p := New(testConfig())
	root := narrowingPlan()

	got, err := p.Optimize(context.Background(), root)
	require.NoError(t, err)
	scans := plan.CollectTableScans(got)
	require.Len(t, scans, 1)
	require.Equal(t, "{1: [eVar56]}", scans[0].DeepProjection.String())

	// The input plan is untouched.
	require.Nil(t, plan.CollectTableScans(root)[0].DeepProjection)
}

func TestOptimizeNilPlan(t *testing.T) {
	p := New(testConfig())
	_, err := p.Optimize(context.Background(), nil)
	require.Error(t, err)
}

func TestOptimizeBatch(t *testing.T) {
	p := New(testConfig())
	roots := make([]*plan.Node, 8)
	for i := range roots {
		roots[i] = narrowingPlan()
	}

	got, err := p.OptimizeBatch(context.Background(), roots, 3)
	require.NoError(t, err)
	require.Len(t, got, len(roots))
	for _, g := range got {
		require.Equal(t, "{1: [eVar56]}", plan.CollectTableScans(g)[0].DeepProjection.String())
	}
}

func TestOptimizeBatchReportsFirstError(t *testing.T) {
	p := New(testConfig())
	bad := &plan.Node{NodeType: plan.NodeType(77)}
	roots := []*plan.Node{narrowingPlan(), bad, narrowingPlan()}

	got, err := p.OptimizeBatch(context.Background(), roots, 2)
	require.Error(t, err)
	require.NotNil(t, got[0])
	require.Nil(t, got[1])
	require.NotNil(t, got[2])
}
