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

package rule

import (
	"context"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/common/tree"
	"github.com/strataql/strata/pkg/sql/plan"
)

// PushdownFilter moves filter conjuncts sitting directly above a table
// scan into the scan, as far as the source supports them. Exactly applied
// conjuncts leave the plan; inexactly applied ones are duplicated into the
// scan and kept in the filter for re-checking.
type PushdownFilter struct{}

func NewPushdownFilter() *PushdownFilter { return &PushdownFilter{} }

func (r *PushdownFilter) Name() string { return "pushdown_filter" }

func (r *PushdownFilter) Apply(ctx context.Context, root *plan.Node) (*plan.Node, bool, error) {
	return tree.TransformUp[*plan.Node](root, func(n *plan.Node) (*plan.Node, bool, error) {
		if n.NodeType != plan.NodeFilter || len(n.FilterList) == 0 {
			return n, false, nil
		}
		scan := n.Children[0]
		if scan.NodeType != plan.NodeTableScan || scan.Source == nil {
			return n, false, nil
		}

		support, err := scan.Source.SupportsFilterPushdown(n.FilterList)
		if err != nil {
			return nil, false, err
		}
		if len(support) != len(n.FilterList) {
			return nil, false, serr.NewInternalError(ctx,
				"source %s answered %d pushdown verdicts for %d filters",
				scan.Source.Name(), len(support), len(n.FilterList))
		}

		// Inexact conjuncts stay in the filter after being copied into the
		// scan; skip any the scan already carries so a second pass is a
		// no-op.
		already := make(map[string]bool, len(scan.FilterList))
		for _, f := range scan.FilterList {
			already[f.String()] = true
		}

		var pushed, kept []plan.Expr
		for i, s := range support {
			switch s {
			case plan.PushdownExact:
				if already[n.FilterList[i].String()] {
					continue
				}
				pushed = append(pushed, n.FilterList[i])
			case plan.PushdownInexact:
				if !already[n.FilterList[i].String()] {
					pushed = append(pushed, n.FilterList[i])
				}
				kept = append(kept, n.FilterList[i])
			case plan.PushdownUnsupported:
				kept = append(kept, n.FilterList[i])
			default:
				return nil, false, serr.NewInternalError(ctx,
					"source %s answered unknown pushdown verdict %d",
					scan.Source.Name(), s)
			}
		}
		if len(pushed) == 0 {
			return n, false, nil
		}

		newScan := *scan
		newScan.FilterList = append(append([]plan.Expr{}, scan.FilterList...), pushed...)
		if len(kept) == 0 {
			return &newScan, true, nil
		}
		return plan.NewFilter(&newScan, kept), true, nil
	})
}
