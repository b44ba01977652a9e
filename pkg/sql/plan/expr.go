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
	"fmt"
	"strings"
)

// Structural access function names. GetField is the only operator that
// extends a structural path; ElementAt freezes one.
const (
	FnGetField  = "get_field"
	FnElementAt = "element_at"
)

// Common scalar and aggregate function names used across rules and tests.
const (
	FnAnd       = "and"
	FnOr        = "or"
	FnEq        = "="
	FnLt        = "<"
	FnGt        = ">"
	FnPlus      = "+"
	FnIsNotNull = "isnotnull"
	FnCoalesce  = "coalesce"
	FnCount     = "count"
	FnSum       = "sum"
	FnMax       = "max"
	FnLag       = "lag"
	FnRowNumber = "row_number"
)

// Expr is a scalar expression node. The concrete variants form a closed
// union; new variants must be taught to the extractor and the rewriters.
type Expr interface {
	ReturnType() Type
	String() string

	exprNode()
}

// ColExpr references the ColPos-th column of the owning node's input.
type ColExpr struct {
	ColPos int32
	Name   string
	Typ    Type
}

func (e *ColExpr) exprNode()        {}
func (e *ColExpr) ReturnType() Type { return e.Typ }

func (e *ColExpr) String() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("#%d", e.ColPos)
}

// LitExpr is a constant.
type LitExpr struct {
	Typ   Type
	Value interface{}
}

func (e *LitExpr) exprNode()        {}
func (e *LitExpr) ReturnType() Type { return e.Typ }

func (e *LitExpr) String() string {
	switch v := e.Value.(type) {
	case string:
		return "'" + v + "'"
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}

// FuncExpr is a function or operator application, identified by name.
// Aggregate functions appear only in AggList; everything else may appear
// anywhere.
type FuncExpr struct {
	Typ  Type
	Name string
	Args []Expr
}

func (e *FuncExpr) exprNode()        {}
func (e *FuncExpr) ReturnType() Type { return e.Typ }

func (e *FuncExpr) String() string {
	switch e.Name {
	case FnGetField:
		if len(e.Args) == 2 {
			if lit, ok := e.Args[1].(*LitExpr); ok {
				if name, ok := lit.Value.(string); ok {
					return fmt.Sprintf("%s[%s]", e.Args[0], name)
				}
			}
			return fmt.Sprintf("%s[%s]", e.Args[0], e.Args[1])
		}
	case FnElementAt:
		if len(e.Args) == 2 {
			return fmt.Sprintf("%s[%s]", e.Args[0], e.Args[1])
		}
	case FnAnd, FnOr, FnEq, FnLt, FnGt, FnPlus:
		if len(e.Args) == 2 {
			return fmt.Sprintf("%s %s %s", e.Args[0], e.Name, e.Args[1])
		}
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ", "))
}

// WindowExpr is a window function application with its frame spec.
type WindowExpr struct {
	Typ         Type
	Fn          *FuncExpr
	PartitionBy []Expr
	OrderBy     []OrderBySpec
}

func (e *WindowExpr) exprNode()        {}
func (e *WindowExpr) ReturnType() Type { return e.Typ }

func (e *WindowExpr) String() string {
	var b strings.Builder
	b.WriteString(e.Fn.String())
	b.WriteString(" over(")
	if len(e.PartitionBy) > 0 {
		b.WriteString("partition by ")
		for i, p := range e.PartitionBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
	}
	if len(e.OrderBy) > 0 {
		if len(e.PartitionBy) > 0 {
			b.WriteString(" ")
		}
		b.WriteString("order by ")
		for i, o := range e.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(o.Expr.String())
			if o.Desc {
				b.WriteString(" desc")
			}
		}
	}
	b.WriteString(")")
	return b.String()
}

// SubqueryExpr is a correlatable IN-subquery: Test IN (Plan). Plan's
// output is a single column.
type SubqueryExpr struct {
	Typ  Type
	Test Expr
	Plan *Node
}

func (e *SubqueryExpr) exprNode()        {}
func (e *SubqueryExpr) ReturnType() Type { return e.Typ }

func (e *SubqueryExpr) String() string {
	return fmt.Sprintf("%s in (subquery)", e.Test)
}
