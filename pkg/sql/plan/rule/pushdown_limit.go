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

	"github.com/strataql/strata/pkg/common/tree"
	"github.com/strataql/strata/pkg/sql/plan"
)

// PushdownLimit tells a scan below a FETCH how many rows can possibly be
// consumed. The FETCH stays in place; the scan limit is a hint, covering
// offset plus count. Projections are row-preserving, so the hint travels
// through any chain of PROJECT nodes; anything else stops it.
type PushdownLimit struct{}

func NewPushdownLimit() *PushdownLimit { return &PushdownLimit{} }

func (r *PushdownLimit) Name() string { return "pushdown_limit" }

func (r *PushdownLimit) Apply(ctx context.Context, root *plan.Node) (*plan.Node, bool, error) {
	return tree.TransformUp[*plan.Node](root, func(n *plan.Node) (*plan.Node, bool, error) {
		if n.NodeType != plan.NodeFetch || n.Limit < 0 {
			return n, false, nil
		}
		offset := n.Offset
		if offset < 0 {
			offset = 0
		}
		want := offset + n.Limit

		var spine []*plan.Node
		cur := n.Children[0]
		for cur.NodeType == plan.NodeProject {
			spine = append(spine, cur)
			cur = cur.Children[0]
		}
		if cur.NodeType != plan.NodeTableScan {
			return n, false, nil
		}
		if cur.Limit >= 0 && cur.Limit <= want {
			return n, false, nil
		}

		newScan := *cur
		newScan.Limit = want
		child := &newScan
		for i := len(spine) - 1; i >= 0; i-- {
			np := *spine[i]
			np.Children = []*plan.Node{child}
			child = &np
		}
		nn := *n
		nn.Children = []*plan.Node{child}
		return &nn, true, nil
	})
}
