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

// Package planner is the front door of the optimizer: it owns the rule
// pipeline assembled from configuration and runs plans through it, one at
// a time or in parallel batches.
package planner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/logutil"
	"github.com/strataql/strata/pkg/sql/plan"
	"github.com/strataql/strata/pkg/sql/plan/rule"
)

type Planner struct {
	cfg      config.OptimizerConfig
	pipeline *rule.Pipeline
}

func New(cfg config.OptimizerConfig) *Planner {
	return &Planner{cfg: cfg, pipeline: rule.NewPipeline(cfg)}
}

// Optimize runs the plan through the pipeline. The input tree is never
// mutated; callers may keep using it.
func (p *Planner) Optimize(ctx context.Context, root *plan.Node) (*plan.Node, error) {
	if root == nil {
		return nil, serr.NewInvalidInput(ctx, "optimize called with no plan")
	}
	id := uuid.New()
	start := time.Now()
	optimized, err := p.pipeline.Optimize(ctx, root)
	if err != nil {
		logutil.Error("optimization failed",
			zap.String("invocation", id.String()),
			zap.Error(err))
		return nil, err
	}
	logutil.Debug("optimization finished",
		zap.String("invocation", id.String()),
		zap.Duration("took", time.Since(start)))
	return optimized, nil
}

// OptimizeBatch optimizes the plans concurrently on a bounded worker pool
// and returns the results in input order. Plans are independent; a failure
// on one does not stop the others, and the first error (by input order) is
// returned after every plan has settled.
func (p *Planner) OptimizeBatch(ctx context.Context, roots []*plan.Node, parallelism int) ([]*plan.Node, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	pool, err := ants.NewPool(parallelism)
	if err != nil {
		return nil, serr.NewInternalError(ctx, "creating worker pool: %v", err)
	}
	defer pool.Release()

	out := make([]*plan.Node, len(roots))
	errs := make([]error, len(roots))
	var wg sync.WaitGroup
	for i, root := range roots {
		i, root := i, root
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			out[i], errs[i] = p.Optimize(ctx, root)
		}); submitErr != nil {
			wg.Done()
			errs[i] = serr.NewInternalError(ctx, "submitting plan %d: %v", i, submitErr)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
