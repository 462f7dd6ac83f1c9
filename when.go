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
	"strings"
	"unicode"
	"unicode/utf8"
)

// MustParse is the same as Parse, but panics if there is an error.
func MustParse(s string) *Schedule {
	sched, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sched
}

// Parse parses the schedule expression s.
//
// s starts with the keyword "when", followed by one or more declarations
// separated by commas. A declaration names the date-time part to constrain
// and lists its alternatives, separated by " or ". An alternative is either
// a single value or an inclusive range "<start> to <end>", whose start
// must be strictly less than its end.
//
//	schedule    = "when" declaration { "," declaration }
//	declaration = kind alternative { " or " alternative }
//	alternative = atom | atom " to " atom
//
// The supported kinds and their values are
//
//	month   1-12, Jan-Dec, January-December
//	day     1-31, the day of the month
//	weekday 0-6 (Sunday=0), Sun-Sat, Sunday-Saturday
//	hour    0-23
//	minute  0-59
//
// Kinds and names are case-insensitive. The kind "every" is reserved and
// returns an ErrUnsupported error. Several declarations of the same kind
// add up their alternatives.
//
// Examples
//
//	when weekday mon to fri, hour 9 to 17
//	when month Dec, day 24 or 31
//	when weekday saturday or sunday, hour 10 to 12 or 15 to 18
//	when month 5, day 19 to 22, hour 20, weekday tuesday
//
// The returned error is always an *Error.
func Parse(s string) (*Schedule, error) {
	p := parser{sched: new(Schedule)}
	if err := p.schedule(segment{text: strings.TrimSpace(s)}); err != nil {
		return nil, err
	}
	return p.sched, nil
}

type parser struct {
	sched *Schedule
}

func (p *parser) schedule(input segment) error {
	before, body, found := input.cut("when")
	if !found {
		return newError(ErrMissingWhen, input.offset, "")
	} else if before.text != "" {
		return newError(ErrInvalidSyntax, before.offset,
			fmt.Sprintf("unexpected '%s' before when", before.text))
	} else if body.text != "" && !startsWithSpace(body.text) {
		return newError(ErrInvalidSyntax, body.offset, "expected a space after when")
	}

	for _, decl := range body.split(",") {
		if err := p.declaration(decl.trim()); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) declaration(decl segment) (err error) {
	ident, rest, found := decl.cut(" ")
	if ident.text == "" {
		return newError(ErrInvalidSyntax, ident.offset,
			"expected a date-time part identifier, such as `month` or `hour`")
	}

	kind, ok := ParseKind(ident.text)
	switch {
	case !ok:
		return newError(ErrUnknownPart, ident.offset, ident.text)
	case kind == KindEvery:
		return newError(ErrUnsupported, ident.offset, ident.text)
	case !found || strings.TrimSpace(rest.text) == "":
		return newError(ErrInvalidSyntax, rest.offset,
			fmt.Sprintf("expected a value after %s", kind))
	}

	for _, alt := range rest.split(" or ") {
		alt = alt.trim()
		switch kind {
		case KindMonth:
			err = appendPart(&p.sched.months, alt, ParseMonth)
		case KindDay:
			err = appendPart(&p.sched.days, alt, ParseMonthDay)
		case KindWeekday:
			err = appendPart(&p.sched.weekdays, alt, ParseWeekday)
		case KindHour:
			err = appendPart(&p.sched.hours, alt, ParseHour)
		case KindMinute:
			err = appendPart(&p.sched.minutes, alt, ParseMinute)
		}

		if err != nil {
			return
		}
	}

	return
}

func appendPart[T Component[T]](parts *[]Part[T], alt segment,
	atom func(string) (T, bool)) error {
	part, err := alternative(alt, atom)
	if err != nil {
		return err
	}
	*parts = append(*parts, part)
	return nil
}

// alternative parses alt as a range, then as a single atom if alt is not
// shaped like a range. A range whose start is not less than its end is
// reported as it is.
func alternative[T Component[T]](alt segment, atom func(string) (T, bool)) (Part[T], error) {
	part, err := ParseRange(alt.text, atom)
	if err == nil {
		return part, nil
	}

	var e *Error
	if errors.As(err, &e) && e.Detail == ReasonRangeOrder {
		e.Offset = alt.offset
		return Part[T]{}, e
	}

	if v, ok := atom(alt.text); ok {
		return Single(v), nil
	}
	return Part[T]{}, newError(ErrInvalidSyntax, alt.offset, alt.text)
}

// segment is a piece of the expression remembering where it starts.
type segment struct {
	text   string
	offset int
}

func (s segment) trim() segment {
	text := strings.TrimLeftFunc(s.text, unicode.IsSpace)
	offset := s.offset + len(s.text) - len(text)
	return segment{text: strings.TrimRightFunc(text, unicode.IsSpace), offset: offset}
}

func (s segment) cut(sep string) (before, after segment, found bool) {
	index := strings.Index(s.text, sep)
	if index < 0 {
		return s, segment{offset: s.offset + len(s.text)}, false
	}

	before = segment{text: s.text[:index], offset: s.offset}
	after = segment{text: s.text[index+len(sep):], offset: s.offset + index + len(sep)}
	return before, after, true
}

func (s segment) split(sep string) (segments []segment) {
	for {
		before, after, found := s.cut(sep)
		segments = append(segments, before)
		if !found {
			return
		}
		s = after
	}
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
