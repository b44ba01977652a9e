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

package engine

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/strataql/strata/pkg/sql/plan"
)

func TestScanMaybeDeepDispatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deep := plan.DeepColumnMap{}
	deep.Add(2, plan.ParsePath("a.b"))

	ds := NewMockDeepSource(ctrl)
	ds.EXPECT().ScanDeep(gomock.Any(), []int32{2}, deep, gomock.Nil(), int64(-1)).Return(nil, nil)
	_, err := ScanMaybeDeep(context.Background(), ds, []int32{2}, deep, nil, -1)
	require.NoError(t, err)

	// No map attached: the plain scan runs even on a deep-capable source.
	ds.EXPECT().Scan(gomock.Any(), []int32{2}, gomock.Nil(), int64(-1)).Return(nil, nil)
	_, err = ScanMaybeDeep(context.Background(), ds, []int32{2}, nil, nil, -1)
	require.NoError(t, err)

	// A map on a plain source falls back to the full scan.
	s := NewMockSource(ctrl)
	s.EXPECT().Scan(gomock.Any(), []int32{2}, gomock.Nil(), int64(-1)).Return(nil, nil)
	_, err = ScanMaybeDeep(context.Background(), s, []int32{2}, deep, nil, -1)
	require.NoError(t, err)
}

func TestScanDeepDefaultDelegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deep := plan.DeepColumnMap{}
	deep.Add(0, nil)

	s := NewMockSource(ctrl)
	s.EXPECT().Scan(gomock.Any(), gomock.Nil(), gomock.Nil(), int64(10)).Return(nil, nil)
	_, err := ScanDeepDefault(context.Background(), s, nil, deep, nil, 10)
	require.NoError(t, err)
}

func TestAsDeepSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, ok := AsDeepSource(NewMockSource(ctrl))
	require.False(t, ok)

	_, ok = AsDeepSource(NewMockDeepSource(ctrl))
	require.True(t, ok)
}
