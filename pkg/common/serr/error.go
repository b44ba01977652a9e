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

package serr

import (
	"context"
	"fmt"
)

// Error codes. Codes are grouped by class; the numeric values are stable
// and may end up in logs, so do not renumber.
const (
	Ok uint16 = 0

	// Group 1: internal errors
	ErrInternal uint16 = 20101
	ErrNYI      uint16 = 20102

	// Group 2: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 3: unexpected state
	ErrInvalidState uint16 = 20400
)

var errorNames = map[uint16]string{
	Ok:              "ok",
	ErrInternal:     "internal error",
	ErrNYI:          "not yet implemented",
	ErrBadConfig:    "invalid configuration",
	ErrInvalidInput: "invalid input",
	ErrInvalidState: "invalid state",
}

// Error is the only error type produced by the planner. It carries a
// stable numeric code and a formatted message.
type Error struct {
	code uint16
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func newError(_ context.Context, code uint16, format string, args ...interface{}) *Error {
	name, ok := errorNames[code]
	if !ok {
		name = "unknown error"
	}
	return &Error{
		code: code,
		msg:  name + ": " + fmt.Sprintf(format, args...),
	}
}

func NewInternalError(ctx context.Context, format string, args ...interface{}) *Error {
	return newError(ctx, ErrInternal, format, args...)
}

func NewNYI(ctx context.Context, format string, args ...interface{}) *Error {
	return newError(ctx, ErrNYI, format, args...)
}

func NewBadConfig(ctx context.Context, format string, args ...interface{}) *Error {
	return newError(ctx, ErrBadConfig, format, args...)
}

func NewInvalidInput(ctx context.Context, format string, args ...interface{}) *Error {
	return newError(ctx, ErrInvalidInput, format, args...)
}

func NewInvalidState(ctx context.Context, format string, args ...interface{}) *Error {
	return newError(ctx, ErrInvalidState, format, args...)
}

// IsError reports whether err is a planner error with the given code.
func IsError(err error, code uint16) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*Error)
	return ok && e.code == code
}
