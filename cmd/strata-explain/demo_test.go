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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/planner"
	"github.com/strataql/strata/pkg/sql/plan"
)

func TestDemoScansAreExecutable(t *testing.T) {
	cfg := config.Default()
	for _, name := range demoPlanNames() {
		root, err := demoPlan(name)
		require.NoError(t, err, name)

		root, err = planner.New(cfg.Optimizer).Optimize(context.Background(), root)
		require.NoError(t, err, name)

		// Every scan in a demo plan carries an executable source.
		for _, scan := range plan.CollectTableScans(root) {
			require.NoError(t, dumpScan(context.Background(), scan), name)
		}
	}
}

func TestDemoPlanUnknownName(t *testing.T) {
	_, err := demoPlan("no-such-plan")
	require.Error(t, err)
}
