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

// Package memengine is an in-memory table engine used by tests and the
// demo CLI. Its tables implement the deep scan capability for real: struct
// and map values are narrowed to the requested structural paths, with
// unrequested siblings omitted from the materialized value.
package memengine

import (
	"context"
	"sync"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/sql/plan"
	"github.com/strataql/strata/pkg/vm/engine"
)

const defaultBatchRows = 1024

// Engine is a named collection of tables.
type Engine struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

func New() *Engine {
	return &Engine{tables: map[string]*Table{}}
}

func (e *Engine) AddTable(t *Table) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.tables[t.def.Name]; ok {
		return serr.NewInvalidInput(context.Background(), "table %s already exists", t.def.Name)
	}
	e.tables[t.def.Name] = t
	return nil
}

func (e *Engine) Table(name string) (*Table, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	t, ok := e.tables[name]
	if !ok {
		return nil, serr.NewInvalidInput(context.Background(), "no such table %s", name)
	}
	return t, nil
}

// Table holds immutable row-major data. Rows are shared with readers, so
// callers must not mutate them after NewTable.
type Table struct {
	def  *plan.TableDef
	rows [][]interface{}
}

func NewTable(def *plan.TableDef, rows [][]interface{}) *Table {
	return &Table{def: def, rows: rows}
}

var _ engine.DeepSource = (*Table)(nil)

func (t *Table) Name() string           { return t.def.Name }
func (t *Table) Schema() *plan.TableDef { return t.def }

// SupportsFilterPushdown: equality against a literal on a bare column is
// applied exactly; any other conjunct the evaluator understands is applied
// best-effort; the rest are unsupported.
func (t *Table) SupportsFilterPushdown(filters []plan.Expr) ([]plan.PushdownSupport, error) {
	out := make([]plan.PushdownSupport, len(filters))
	for i, f := range filters {
		switch {
		case isColumnEqLiteral(f):
			out[i] = plan.PushdownExact
		case canEvaluate(f):
			out[i] = plan.PushdownInexact
		default:
			out[i] = plan.PushdownUnsupported
		}
	}
	return out, nil
}

func (t *Table) Scan(ctx context.Context, projection []int32, filters []plan.Expr, limit int64) (engine.Reader, error) {
	return t.ScanDeep(ctx, projection, nil, filters, limit)
}

func (t *Table) ScanDeep(ctx context.Context, projection []int32, deep plan.DeepColumnMap, filters []plan.Expr, limit int64) (engine.Reader, error) {
	cols := projection
	if cols == nil {
		cols = make([]int32, len(t.def.Cols))
		for i := range cols {
			cols[i] = int32(i)
		}
	}
	for _, c := range cols {
		if c < 0 || int(c) >= len(t.def.Cols) {
			return nil, serr.NewInvalidInput(ctx, "table %s: projected column %d outside schema", t.def.Name, c)
		}
	}

	// Per projected column, the narrowing trie; nil means materialize in
	// full, absent-from-map means do not read at all.
	tries := make([]*plan.PathTree, len(cols))
	skip := make([]bool, len(cols))
	if deep != nil {
		for i, c := range cols {
			pset, ok := deep[c]
			if !ok {
				skip[i] = true
				continue
			}
			if !pset.IsWholeColumn() {
				tries[i] = pset.Tree()
			}
		}
	}

	schema := &plan.TableDef{Name: t.def.Name, Cols: make([]*plan.ColDef, len(cols))}
	for i, c := range cols {
		cd := *t.def.Cols[c]
		if tries[i] != nil {
			cd.Typ = narrowType(cd.Typ, tries[i])
		}
		schema.Cols[i] = &cd
	}

	return &reader{
		table:   t,
		schema:  schema,
		cols:    cols,
		tries:   tries,
		skip:    skip,
		filters: filters,
		limit:   limit,
	}, nil
}

type reader struct {
	table   *Table
	schema  *plan.TableDef
	cols    []int32
	tries   []*plan.PathTree
	skip    []bool
	filters []plan.Expr
	limit   int64

	pos     int
	emitted int64
	closed  bool
}

func (r *reader) Next(ctx context.Context) (*engine.Batch, error) {
	if r.closed {
		return nil, serr.NewInvalidState(ctx, "read after close on table %s", r.table.def.Name)
	}
	var out [][]interface{}
	for r.pos < len(r.table.rows) && len(out) < defaultBatchRows {
		if r.limit >= 0 && r.emitted >= r.limit {
			break
		}
		row := r.table.rows[r.pos]
		r.pos++

		keep, err := evalFilters(ctx, r.filters, row)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}

		vals := make([]interface{}, len(r.cols))
		for i, c := range r.cols {
			if r.skip[i] {
				continue
			}
			v := row[c]
			if r.tries[i] != nil {
				v = narrowValue(v, r.tries[i])
			}
			vals[i] = v
		}
		out = append(out, vals)
		r.emitted++
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &engine.Batch{Schema: r.schema, Rows: out}, nil
}

func (r *reader) Close() error {
	r.closed = true
	return nil
}

// narrowValue prunes struct (map[string]interface{}) values to the trie,
// omitting siblings outside it. List elements are narrowed with the same
// trie node, matching paths that stop at the list.
func narrowValue(v interface{}, tree *plan.PathTree) interface{} {
	if tree == nil || tree.Whole || v == nil {
		return v
	}
	switch tv := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(tree.Children))
		for name, sub := range tree.Children {
			if inner, ok := tv[name]; ok {
				out[name] = narrowValue(inner, sub)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = narrowValue(e, tree)
		}
		return out
	default:
		// A path descends below a scalar: schema and requirement disagree.
		// Materialize the scalar whole rather than losing it.
		return v
	}
}

// narrowType mirrors narrowValue on the schema: struct fields outside the
// trie are dropped.
func narrowType(t plan.Type, tree *plan.PathTree) plan.Type {
	if tree == nil || tree.Whole {
		return t
	}
	switch t.Id {
	case plan.T_struct:
		var fields []*plan.ColDef
		for _, f := range t.Fields {
			sub, ok := tree.Children[f.Name]
			if !ok {
				continue
			}
			nf := *f
			nf.Typ = narrowType(f.Typ, sub)
			fields = append(fields, &nf)
		}
		return plan.Type{Id: plan.T_struct, Fields: fields}
	case plan.T_list:
		if t.Elem != nil {
			elem := narrowType(*t.Elem, tree)
			return plan.Type{Id: plan.T_list, Elem: &elem}
		}
	case plan.T_map:
		// Map keys are dynamic; requested keys become the narrowing of the
		// value type, and the map keeps its shape.
		if t.Elem != nil {
			return t
		}
	}
	return t
}
