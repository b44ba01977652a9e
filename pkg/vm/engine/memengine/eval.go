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

package memengine

import (
	"context"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/sql/plan"
)

// A small row-at-a-time evaluator, just enough for pushed-down filters.

func evalFilters(ctx context.Context, filters []plan.Expr, row []interface{}) (bool, error) {
	for _, f := range filters {
		v, err := eval(ctx, f, row)
		if err != nil {
			return false, err
		}
		if b, ok := v.(bool); !ok || !b {
			return false, nil
		}
	}
	return true, nil
}

func eval(ctx context.Context, e plan.Expr, row []interface{}) (interface{}, error) {
	switch v := e.(type) {
	case *plan.ColExpr:
		if v.ColPos < 0 || int(v.ColPos) >= len(row) {
			return nil, serr.NewInvalidInput(ctx, "filter references column %d of a %d-column row", v.ColPos, len(row))
		}
		return row[v.ColPos], nil
	case *plan.LitExpr:
		return v.Value, nil
	case *plan.FuncExpr:
		return evalFunc(ctx, v, row)
	}
	return nil, serr.NewNYI(ctx, "evaluating %T", e)
}

func evalFunc(ctx context.Context, f *plan.FuncExpr, row []interface{}) (interface{}, error) {
	switch f.Name {
	case plan.FnGetField:
		base, err := eval(ctx, f.Args[0], row)
		if err != nil {
			return nil, err
		}
		name, err := eval(ctx, f.Args[1], row)
		if err != nil {
			return nil, err
		}
		m, ok := base.(map[string]interface{})
		if !ok {
			return nil, nil
		}
		key, ok := name.(string)
		if !ok {
			return nil, nil
		}
		return m[key], nil

	case plan.FnElementAt:
		base, err := eval(ctx, f.Args[0], row)
		if err != nil {
			return nil, err
		}
		idx, err := eval(ctx, f.Args[1], row)
		if err != nil {
			return nil, err
		}
		list, ok := base.([]interface{})
		if !ok {
			return nil, nil
		}
		i, ok := idx.(int64)
		if !ok || i < 0 || int(i) >= len(list) {
			return nil, nil
		}
		return list[i], nil

	case plan.FnIsNotNull:
		v, err := eval(ctx, f.Args[0], row)
		if err != nil {
			return nil, err
		}
		return v != nil, nil

	case plan.FnEq:
		l, err := eval(ctx, f.Args[0], row)
		if err != nil {
			return nil, err
		}
		r, err := eval(ctx, f.Args[1], row)
		if err != nil {
			return nil, err
		}
		if l == nil || r == nil {
			return false, nil
		}
		return l == r, nil

	case plan.FnAnd:
		for _, a := range f.Args {
			v, err := eval(ctx, a, row)
			if err != nil {
				return nil, err
			}
			if b, ok := v.(bool); !ok || !b {
				return false, nil
			}
		}
		return true, nil

	case plan.FnOr:
		for _, a := range f.Args {
			v, err := eval(ctx, a, row)
			if err != nil {
				return nil, err
			}
			if b, ok := v.(bool); ok && b {
				return true, nil
			}
		}
		return false, nil

	case plan.FnGt, plan.FnLt:
		l, err := eval(ctx, f.Args[0], row)
		if err != nil {
			return nil, err
		}
		r, err := eval(ctx, f.Args[1], row)
		if err != nil {
			return nil, err
		}
		cmp, ok := compare(l, r)
		if !ok {
			return false, nil
		}
		if f.Name == plan.FnGt {
			return cmp > 0, nil
		}
		return cmp < 0, nil

	case plan.FnCoalesce:
		for _, a := range f.Args {
			v, err := eval(ctx, a, row)
			if err != nil {
				return nil, err
			}
			if v != nil {
				return v, nil
			}
		}
		return nil, nil
	}
	return nil, serr.NewNYI(ctx, "evaluating function %s", f.Name)
}

func compare(l, r interface{}) (int, bool) {
	switch lv := l.(type) {
	case int64:
		rv, ok := r.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		}
		return 0, true
	case float64:
		rv, ok := r.(float64)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		}
		return 0, true
	case string:
		rv, ok := r.(string)
		if !ok {
			return 0, false
		}
		switch {
		case lv < rv:
			return -1, true
		case lv > rv:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// isColumnEqLiteral recognizes col = lit (either order).
func isColumnEqLiteral(e plan.Expr) bool {
	f, ok := e.(*plan.FuncExpr)
	if !ok || f.Name != plan.FnEq || len(f.Args) != 2 {
		return false
	}
	_, lCol := f.Args[0].(*plan.ColExpr)
	_, rLit := f.Args[1].(*plan.LitExpr)
	if lCol && rLit {
		return true
	}
	_, lLit := f.Args[0].(*plan.LitExpr)
	_, rCol := f.Args[1].(*plan.ColExpr)
	return lLit && rCol
}

// canEvaluate reports whether the evaluator understands every operator in
// the expression.
func canEvaluate(e plan.Expr) bool {
	switch v := e.(type) {
	case *plan.ColExpr, *plan.LitExpr:
		return true
	case *plan.FuncExpr:
		switch v.Name {
		case plan.FnGetField, plan.FnElementAt, plan.FnIsNotNull, plan.FnEq,
			plan.FnAnd, plan.FnOr, plan.FnGt, plan.FnLt, plan.FnCoalesce:
		default:
			return false
		}
		for _, a := range v.Args {
			if !canEvaluate(a) {
				return false
			}
		}
		return true
	}
	return false
}
