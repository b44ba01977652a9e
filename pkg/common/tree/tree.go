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

// Package tree provides read-only visitation and change-tracking rewriting
// over any recursively-defined node type. A concrete node type implements
// Node on itself; the free functions compose whole-subtree traversals out
// of the per-node primitives.
package tree

// Recursion controls how a traversal proceeds after visiting a node.
type Recursion int

const (
	// Continue visits the node's children next.
	Continue Recursion = iota
	// SkipChildren continues the traversal without descending into the
	// visited node's children.
	SkipChildren
	// Stop aborts the whole traversal.
	Stop
)

// Node is implemented by any tree node type T. ApplyChildren invokes f on
// each direct child in a fixed order and must short-circuit as soon as f
// returns Stop, propagating Stop to the caller. MapChildren applies f to
// each direct child in the same order and reconstructs the parent from the
// results; when no child reports a change, the original node must be
// returned as-is with changed == false, without copying its payload.
type Node[T any] interface {
	ApplyChildren(f func(T) (Recursion, error)) (Recursion, error)
	MapChildren(f func(T) (T, bool, error)) (T, bool, error)
}

// Apply visits n and its whole subtree in pre-order. The visitor may prune
// with SkipChildren or abort with Stop; either way every child of every
// visited (non-pruned) node is seen exactly once.
func Apply[T Node[T]](n T, f func(T) (Recursion, error)) (Recursion, error) {
	r, err := f(n)
	if err != nil {
		return Stop, err
	}
	switch r {
	case Stop:
		return Stop, nil
	case SkipChildren:
		return Continue, nil
	}
	return n.ApplyChildren(func(c T) (Recursion, error) {
		return Apply(c, f)
	})
}

// TransformDown rewrites the tree top-down: f is applied to the node first,
// then its (possibly replaced) children are rewritten recursively. The
// returned bool reports whether anything in the subtree changed; when it is
// false the returned node is the original.
func TransformDown[T Node[T]](n T, f func(T) (T, bool, error)) (T, bool, error) {
	nn, changed, err := f(n)
	if err != nil {
		return nn, false, err
	}
	nn, childrenChanged, err := nn.MapChildren(func(c T) (T, bool, error) {
		return TransformDown(c, f)
	})
	if err != nil {
		return nn, false, err
	}
	return nn, changed || childrenChanged, nil
}

// TransformUp rewrites the tree bottom-up: children first, then f on the
// rebuilt node. Change tracking follows the same contract as TransformDown.
func TransformUp[T Node[T]](n T, f func(T) (T, bool, error)) (T, bool, error) {
	nn, childrenChanged, err := n.MapChildren(func(c T) (T, bool, error) {
		return TransformUp(c, f)
	})
	if err != nil {
		return nn, false, err
	}
	nn, changed, err := f(nn)
	if err != nil {
		return nn, false, err
	}
	return nn, changed || childrenChanged, nil
}
