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
	"sort"
	"strconv"
	"strings"
)

// Path is a structural access path below a column root: an ordered list of
// field names. The empty path denotes the whole column. List element
// access never contributes a component, so a path through a list stops at
// the list.
type Path []string

func (p Path) String() string {
	return strings.Join(p, ".")
}

func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	q := make(Path, len(p))
	copy(q, p)
	return q
}

// ParsePath turns a dotted string into a Path; "" is the whole column.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, "."))
}

// PathSet is a set of structural paths for one column, keyed by the dotted
// rendering. An empty path in the set dominates: it means the whole column
// is needed and every narrower path is redundant.
type PathSet map[string]Path

// NewPathSet builds a set from the given paths, applying domination.
func NewPathSet(paths ...Path) PathSet {
	s := PathSet{}
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Add inserts p. Inserting the empty path collapses the set to it;
// inserting into a set that already holds the empty path is a no-op.
func (s PathSet) Add(p Path) {
	if _, whole := s[""]; whole {
		return
	}
	if len(p) == 0 {
		for k := range s {
			delete(s, k)
		}
		s[""] = nil
		return
	}
	s[p.String()] = p
}

// IsWholeColumn reports whether the set demands full materialization.
func (s PathSet) IsWholeColumn() bool {
	_, ok := s[""]
	return ok
}

func (s PathSet) Contains(p Path) bool {
	_, ok := s[p.String()]
	return ok
}

func (s PathSet) Equal(o PathSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

func (s PathSet) Clone() PathSet {
	c := make(PathSet, len(s))
	for k, p := range s {
		c[k] = p
	}
	return c
}

// Sorted returns the paths in lexicographic order of their dotted form.
func (s PathSet) Sorted() []Path {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Path, len(keys))
	for i, k := range keys {
		out[i] = s[k]
	}
	return out
}

func (s PathSet) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}

// DeepColumnMap maps a column ordinal to the set of structural paths
// required below it. A nil map is the absent requirement: the consumer
// could not be analyzed and the producer must materialize everything. A
// non-nil empty map means nothing is required. Callers distinguish the two
// with a plain nil check.
type DeepColumnMap map[int32]PathSet

// Add inserts path p for column col. The receiver must be non-nil.
func (m DeepColumnMap) Add(col int32, p Path) {
	s, ok := m[col]
	if !ok {
		s = PathSet{}
		m[col] = s
	}
	s.Add(p)
}

// AddSet unions an entire path set into column col.
func (m DeepColumnMap) AddSet(col int32, paths PathSet) {
	for _, p := range paths {
		m.Add(col, p)
	}
}

// Union returns a fresh map holding every (column, path) of a and b. Both
// arguments must be non-nil; absent requirements are resolved by the
// caller before merging.
func Union(a, b DeepColumnMap) DeepColumnMap {
	out := make(DeepColumnMap, len(a)+len(b))
	for col, s := range a {
		out.AddSet(col, s)
	}
	for col, s := range b {
		out.AddSet(col, s)
	}
	return out
}

// Equal treats nil as distinct from the non-nil empty map.
func (m DeepColumnMap) Equal(o DeepColumnMap) bool {
	if (m == nil) != (o == nil) {
		return false
	}
	if len(m) != len(o) {
		return false
	}
	for col, s := range m {
		os, ok := o[col]
		if !ok || !s.Equal(os) {
			return false
		}
	}
	return true
}

func (m DeepColumnMap) Clone() DeepColumnMap {
	if m == nil {
		return nil
	}
	c := make(DeepColumnMap, len(m))
	for col, s := range m {
		c[col] = s.Clone()
	}
	return c
}

// Columns returns the column ordinals in ascending order.
func (m DeepColumnMap) Columns() []int32 {
	cols := make([]int32, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	return cols
}

// String renders the map deterministically, e.g. {0: [], 2: [a.b, c]}.
func (m DeepColumnMap) String() string {
	if m == nil {
		return "<none>"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, col := range m.Columns() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(int(col)))
		b.WriteString(": ")
		b.WriteString(m[col].String())
	}
	b.WriteString("}")
	return b.String()
}

// CoversWholeTable reports whether the map demands every column of the
// table at the whole-column path, i.e. nothing would be pruned.
func (m DeepColumnMap) CoversWholeTable(def *TableDef) bool {
	if m == nil || len(m) != len(def.Cols) {
		return false
	}
	for col, s := range m {
		if col < 0 || int(col) >= len(def.Cols) || !s.IsWholeColumn() {
			return false
		}
	}
	return true
}

// PathTree is the trie form of a PathSet, used when narrowing values and
// schemas. Whole marks a node at which the entire subtree is required.
type PathTree struct {
	Whole    bool
	Children map[string]*PathTree
}

// Tree converts the set to its trie. An empty set yields a tree requiring
// nothing; a set holding the empty path yields Whole at the root.
func (s PathSet) Tree() *PathTree {
	root := &PathTree{}
	for _, p := range s {
		node := root
		if len(p) == 0 {
			node.Whole = true
			continue
		}
		for _, step := range p {
			if node.Whole {
				break
			}
			if node.Children == nil {
				node.Children = map[string]*PathTree{}
			}
			next, ok := node.Children[step]
			if !ok {
				next = &PathTree{}
				node.Children[step] = next
			}
			node = next
		}
		node.Whole = true
	}
	return root
}
