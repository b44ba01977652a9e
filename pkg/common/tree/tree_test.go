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

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testNode struct {
	val      int
	children []*testNode
}

func (n *testNode) ApplyChildren(f func(*testNode) (Recursion, error)) (Recursion, error) {
	for _, c := range n.children {
		r, err := f(c)
		if err != nil {
			return Stop, err
		}
		if r == Stop {
			return Stop, nil
		}
	}
	return Continue, nil
}

func (n *testNode) MapChildren(f func(*testNode) (*testNode, bool, error)) (*testNode, bool, error) {
	changed := false
	newChildren := make([]*testNode, len(n.children))
	for i, c := range n.children {
		nc, ch, err := f(c)
		if err != nil {
			return n, false, err
		}
		newChildren[i] = nc
		changed = changed || ch
	}
	if !changed {
		return n, false, nil
	}
	return &testNode{val: n.val, children: newChildren}, true, nil
}

func leaf(v int) *testNode { return &testNode{val: v} }

func branch(v int, children ...*testNode) *testNode {
	return &testNode{val: v, children: children}
}

func TestApplyVisitsPreOrder(t *testing.T) {
	root := branch(1, branch(2, leaf(4), leaf(5)), leaf(3))

	var seen []int
	r, err := Apply(root, func(n *testNode) (Recursion, error) {
		seen = append(seen, n.val)
		return Continue, nil
	})
	require.NoError(t, err)
	assert.Equal(t, Continue, r)
	assert.Equal(t, []int{1, 2, 4, 5, 3}, seen)
}

func TestApplyStopShortCircuits(t *testing.T) {
	root := branch(1, branch(2, leaf(4), leaf(5)), leaf(3))

	var seen []int
	r, err := Apply(root, func(n *testNode) (Recursion, error) {
		seen = append(seen, n.val)
		if n.val == 4 {
			return Stop, nil
		}
		return Continue, nil
	})
	require.NoError(t, err)
	assert.Equal(t, Stop, r)
	assert.Equal(t, []int{1, 2, 4}, seen)
}

func TestApplySkipChildrenPrunes(t *testing.T) {
	root := branch(1, branch(2, leaf(4), leaf(5)), leaf(3))

	var seen []int
	_, err := Apply(root, func(n *testNode) (Recursion, error) {
		seen = append(seen, n.val)
		if n.val == 2 {
			return SkipChildren, nil
		}
		return Continue, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestTransformDownNoChangeSharesNode(t *testing.T) {
	root := branch(1, branch(2, leaf(4)), leaf(3))

	nn, changed, err := TransformDown(root, func(n *testNode) (*testNode, bool, error) {
		return n, false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, root, nn)
	assert.Same(t, root.children[0], nn.children[0])
}

func TestTransformDownRebuildsChangedSpine(t *testing.T) {
	shared := branch(2, leaf(4))
	root := branch(1, shared, leaf(3))

	nn, changed, err := TransformDown(root, func(n *testNode) (*testNode, bool, error) {
		if n.val == 4 {
			return leaf(40), true, nil
		}
		return n, false, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotSame(t, root, nn)
	assert.Equal(t, 40, nn.children[0].children[0].val)
	// the untouched sibling subtree is shared, not copied
	assert.Same(t, root.children[1], nn.children[1])
	// the original tree is untouched
	assert.Equal(t, 4, shared.children[0].val)
}

func TestTransformUpSeesRebuiltChildren(t *testing.T) {
	root := branch(1, leaf(2))

	nn, changed, err := TransformUp(root, func(n *testNode) (*testNode, bool, error) {
		if len(n.children) > 0 {
			// by the time the parent is visited the child is already rewritten
			return branch(n.val + n.children[0].val), true, nil
		}
		return leaf(n.val * 10), true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 21, nn.val)
}
