// Copyright 2026 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scheda

import (
	"errors"
	"fmt"
)

// The kinds of the errors returned by Parse and ParseRange.
//
// Use errors.Is to test the kind of a returned error.
var (
	ErrMissingWhen    = errors.New("missing when statement")
	ErrMalformedRange = errors.New("malformed range")
	ErrUnknownPart    = errors.New("unknown date-time part")
	ErrInvalidSyntax  = errors.New("invalid syntax")
	ErrUnsupported    = errors.New("unsupported date-time part")
)

// The details of an ErrMalformedRange error.
const (
	ReasonRangeSyntax = "incorrect syntax"
	ReasonRangeOrder  = "start not less than end"
)

// Error is the error returned when a schedule expression cannot be parsed.
type Error struct {
	// Kind is one of the ErrXxx variables.
	Kind error

	// Detail is the offending token or clause, or the reason
	// for an ErrMalformedRange error.
	Detail string

	// Offset is the byte offset, in the trimmed expression,
	// of the construct that failed.
	Offset int
}

func newError(kind error, offset int, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, Offset: offset}
}

// Error implements the interface error.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap returns the kind of the error.
func (e *Error) Unwrap() error { return e.Kind }
