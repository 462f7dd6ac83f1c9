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
	"fmt"
	"strings"
)

// Component is implemented by every bounded date-time component type:
// Hour, Minute, MonthDay, Month and Weekday.
type Component[T any] interface {
	fmt.Stringer

	// Canonical returns the numeric value used for comparison.
	Canonical() uint8

	// Less reports whether the component comes strictly before other.
	Less(other T) bool
}

// WellFormed reports whether start..end is a legal range,
// that's, start is strictly less than end.
func WellFormed[T Component[T]](start, end T) bool {
	return start.Less(end)
}

// Part is either a single date-time component or an inclusive range of them,
// such as "2" in "when day 2" or "Thu to Fri" in "when weekday Thu to Fri".
type Part[T Component[T]] struct {
	start   T
	end     T
	isRange bool
}

// Single returns a part matching only v.
func Single[T Component[T]](v T) Part[T] {
	return Part[T]{start: v, end: v}
}

// NewRange returns a part matching every value from start to end inclusive.
//
// It returns an ErrMalformedRange error if start is not less than end.
func NewRange[T Component[T]](start, end T) (Part[T], error) {
	if !WellFormed(start, end) {
		return Part[T]{}, newError(ErrMalformedRange, 0, ReasonRangeOrder)
	}
	return Part[T]{start: start, end: end, isRange: true}, nil
}

// ParseRange parses s, formatted as "<atom> to <atom>", as a range,
// using atom to parse both endpoints.
//
// The returned error is an ErrMalformedRange error whose detail is either
// ReasonRangeSyntax or ReasonRangeOrder.
func ParseRange[T Component[T]](s string, atom func(string) (T, bool)) (Part[T], error) {
	tokens := strings.Split(strings.TrimSpace(s), " ")
	if len(tokens) != 3 || tokens[1] != "to" {
		return Part[T]{}, newError(ErrMalformedRange, 0, ReasonRangeSyntax)
	}

	start, ok := atom(tokens[0])
	if !ok {
		return Part[T]{}, newError(ErrMalformedRange, 0, ReasonRangeSyntax)
	}
	end, ok := atom(tokens[2])
	if !ok {
		return Part[T]{}, newError(ErrMalformedRange, 0, ReasonRangeSyntax)
	}

	return NewRange(start, end)
}

// IsRange reports whether the part is a range.
func (p Part[T]) IsRange() bool { return p.isRange }

// Start returns the first value matched by the part.
func (p Part[T]) Start() T { return p.start }

// End returns the last value matched by the part,
// which is equal to Start for a single part.
func (p Part[T]) End() T { return p.end }

// Contains reports whether v is matched by the part.
func (p Part[T]) Contains(v T) bool {
	c := v.Canonical()
	if !p.isRange {
		return c == p.start.Canonical()
	}
	return p.start.Canonical() <= c && c <= p.end.Canonical()
}

// String returns the part as it is written in a schedule expression.
func (p Part[T]) String() string {
	if p.isRange {
		return p.start.String() + " to " + p.end.String()
	}
	return p.start.String()
}
