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

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/common/tree"
	"github.com/stretchr/testify/require"
)

func scanOf(cols ...string) *Node {
	defs := make([]*ColDef, len(cols))
	for i, c := range cols {
		defs[i] = &ColDef{Name: c, Typ: Type{Id: T_int64}}
	}
	return NewTableScan(&TableDef{Name: "t", Cols: defs}, nil, nil)
}

func TestApplyChildrenRejectsUnknownKind(t *testing.T) {
	bad := &Node{NodeType: NodeType(99)}
	_, err := tree.Apply[*Node](bad, func(n *Node) (tree.Recursion, error) {
		return tree.Continue, nil
	})
	require.Error(t, err)
	require.True(t, serr.IsError(err, serr.ErrInvalidState))
}

func TestApplyChildrenRejectsWrongArity(t *testing.T) {
	bad := &Node{NodeType: NodeJoin, Children: []*Node{scanOf("a")}}
	_, err := tree.Apply[*Node](bad, func(n *Node) (tree.Recursion, error) {
		return tree.Continue, nil
	})
	require.Error(t, err)
	require.True(t, serr.IsError(err, serr.ErrInvalidState))
}

func TestMapChildrenSharesUnchangedTree(t *testing.T) {
	root := NewFilter(NewProject(scanOf("a", "b"), []Expr{NewCol(0, "a", Type{Id: T_int64})}), nil)
	got, changed, err := tree.TransformUp[*Node](root, func(n *Node) (*Node, bool, error) {
		return n, false, nil
	})
	require.NoError(t, err)
	require.False(t, changed)
	require.Same(t, root, got)
}

func TestMapChildrenRebuildsChangedSpine(t *testing.T) {
	scan := scanOf("a", "b")
	proj := NewProject(scan, []Expr{NewCol(0, "a", Type{Id: T_int64})})
	root := NewFilter(proj, nil)

	got, changed, err := tree.TransformUp[*Node](root, func(n *Node) (*Node, bool, error) {
		if n.NodeType == NodeTableScan {
			nn := *n
			nn.Projection = []int32{0}
			return &nn, true, nil
		}
		return n, false, nil
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.NotSame(t, root, got)
	require.NotSame(t, proj, got.Children[0])
	require.Equal(t, []int32{0}, got.Children[0].Children[0].Projection)

	// The original tree is untouched.
	require.Nil(t, scan.Projection)
}

func TestCollectTableScansOrder(t *testing.T) {
	left := scanOf("a")
	right := scanOf("b")
	inner := scanOf("c")
	sq := &SubqueryExpr{
		Typ:  Type{Id: T_bool},
		Test: NewCol(0, "a", Type{Id: T_int64}),
		Plan: inner,
	}
	filter := NewFilter(NewJoin(left, right, JoinInner, nil), []Expr{sq})

	scans := CollectTableScans(filter)
	require.Equal(t, []*Node{inner, left, right}, scans)
}
