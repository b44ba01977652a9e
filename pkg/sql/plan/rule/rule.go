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

// Package rule holds the plan rewrite rules and the pipeline that drives
// them to a fixed point.
package rule

import (
	"context"

	"go.uber.org/zap"

	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/logutil"
	"github.com/strataql/strata/pkg/sql/plan"
)

// Rule rewrites a plan tree. Apply never mutates the input tree; it
// returns the same root when nothing changed.
type Rule interface {
	Name() string
	Apply(ctx context.Context, root *plan.Node) (*plan.Node, bool, error)
}

// Pipeline runs its rules in order, repeating the whole sequence until a
// full pass changes nothing or MaxPasses is reached. Each rule is
// idempotent on its own output, so the cap only matters when rules feed
// each other.
type Pipeline struct {
	rules     []Rule
	maxPasses int
}

// NewPipeline assembles the rule sequence for the given optimizer
// configuration. Projection merging runs before the deep pruning analysis
// so requirement translation crosses fewer hops.
func NewPipeline(cfg config.OptimizerConfig) *Pipeline {
	var rules []Rule
	if cfg.ProjectionMergingEnabled() {
		rules = append(rules, NewMergeProjections())
	}
	rules = append(rules,
		NewPushdownFilter(),
		NewPushdownLimit(),
		NewDeepProjection(cfg),
	)
	return &Pipeline{rules: rules, maxPasses: cfg.MaxPasses}
}

func (p *Pipeline) Optimize(ctx context.Context, root *plan.Node) (*plan.Node, error) {
	for pass := 0; pass < p.maxPasses; pass++ {
		anyChanged := false
		for _, r := range p.rules {
			n, changed, err := r.Apply(ctx, root)
			if err != nil {
				return nil, err
			}
			if changed {
				logutil.Debug("rule rewrote plan",
					zap.String("rule", r.Name()),
					zap.Int("pass", pass))
			}
			root = n
			anyChanged = anyChanged || changed
		}
		if !anyChanged {
			break
		}
	}
	return root, nil
}
