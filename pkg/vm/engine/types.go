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

// Package engine defines the execution-side contract between plans and
// storage: plain scans, and the optional deep-projection scan capability
// the optimizer's requirement maps feed into.
package engine

import (
	"context"

	"github.com/strataql/strata/pkg/sql/plan"
)

// Batch is one unit of scan output. Values are row-major; each row has one
// value per schema column. Struct values are map[string]interface{}, map
// values likewise, list values []interface{}.
type Batch struct {
	Schema *plan.TableDef
	Rows   [][]interface{}
}

// Reader yields batches until it returns nil with no error.
type Reader interface {
	Next(ctx context.Context) (*Batch, error)
	Close() error
}

// Source is the execution-side table provider. Scan materializes the
// projected columns in full, applying pushed filters best-effort and
// stopping after limit rows when limit >= 0.
type Source interface {
	plan.TableSource

	Scan(ctx context.Context, projection []int32, filters []plan.Expr, limit int64) (Reader, error)
}

// DeepSource is the optional capability behind deep column pruning. deep
// maps table column ordinals to the structural paths required below them;
// columns absent from a non-nil map are not read at all, and present
// columns are narrowed to their paths. A nil map is exactly Scan.
type DeepSource interface {
	Source

	ScanDeep(ctx context.Context, projection []int32, deep plan.DeepColumnMap, filters []plan.Expr, limit int64) (Reader, error)
}

// ScanDeepDefault is the delegation a DeepSource implementation can use
// before it grows real narrowing: ignore the map and scan in full. Results
// are identical, only wider.
func ScanDeepDefault(ctx context.Context, s Source, projection []int32, deep plan.DeepColumnMap, filters []plan.Expr, limit int64) (Reader, error) {
	return s.Scan(ctx, projection, filters, limit)
}

// AsDeepSource reports whether the source supports deep scans.
func AsDeepSource(s Source) (DeepSource, bool) {
	ds, ok := s.(DeepSource)
	return ds, ok
}

// ScanMaybeDeep dispatches to ScanDeep when the source supports it and a
// map is attached, and falls back to the plain scan otherwise. Sources
// without the capability lose nothing but the narrowing.
func ScanMaybeDeep(ctx context.Context, s Source, projection []int32, deep plan.DeepColumnMap, filters []plan.Expr, limit int64) (Reader, error) {
	if deep != nil {
		if ds, ok := AsDeepSource(s); ok {
			return ds.ScanDeep(ctx, projection, deep, filters, limit)
		}
	}
	return s.Scan(ctx, projection, filters, limit)
}
