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
	"slices"
	"strings"
	"time"
)

// Timestamp is the calendar view of a point in time used by Schedule.Matches.
//
// time.Time implements it. The fields are read as they are, so the caller
// decides the location by converting the time before matching.
type Timestamp interface {
	Hour() int
	Minute() int
	Day() int
	Month() time.Month
	Weekday() time.Weekday
}

// Kind is the date-time axis constrained by a declaration.
type Kind int

// The axes of a schedule. KindEvery is recognized by the parser
// but not supported yet.
const (
	KindMonth Kind = iota
	KindDay
	KindWeekday
	KindHour
	KindMinute
	KindEvery
)

var kindNames = [...]string{
	KindMonth:   "month",
	KindDay:     "day",
	KindWeekday: "weekday",
	KindHour:    "hour",
	KindMinute:  "minute",
	KindEvery:   "every",
}

// ParseKind resolves the identifier s case-insensitively.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Schedule is a set of points in time described by a schedule expression,
// such as "when month 5, day 19 to 22, hour 20, weekday tuesday".
//
// Each axis holds the alternatives declared for it. An axis without any
// alternative is a wildcard and matches every value; otherwise the value
// must be contained by at least one alternative. A time matches the
// schedule only when it matches all of the axes.
//
// A Schedule is not modified after Parse returns it, so it may be used
// by several goroutines at once.
type Schedule struct {
	months   []Part[Month]
	days     []Part[MonthDay]
	weekdays []Part[Weekday]
	hours    []Part[Hour]
	minutes  []Part[Minute]
}

// Months returns the alternatives of the month axis.
func (s *Schedule) Months() []Part[Month] { return slices.Clone(s.months) }

// Days returns the alternatives of the day-of-month axis.
func (s *Schedule) Days() []Part[MonthDay] { return slices.Clone(s.days) }

// Weekdays returns the alternatives of the weekday axis.
func (s *Schedule) Weekdays() []Part[Weekday] { return slices.Clone(s.weekdays) }

// Hours returns the alternatives of the hour axis.
func (s *Schedule) Hours() []Part[Hour] { return slices.Clone(s.hours) }

// Minutes returns the alternatives of the minute axis.
func (s *Schedule) Minutes() []Part[Minute] { return slices.Clone(s.minutes) }

// IsWildcard reports whether the axis k has no alternative.
func (s *Schedule) IsWildcard(k Kind) bool {
	switch k {
	case KindMonth:
		return len(s.months) == 0
	case KindDay:
		return len(s.days) == 0
	case KindWeekday:
		return len(s.weekdays) == 0
	case KindHour:
		return len(s.hours) == 0
	case KindMinute:
		return len(s.minutes) == 0
	default:
		return true
	}
}

// Matches reports whether t falls inside the schedule.
//
// A nil schedule matches every time.
func (s *Schedule) Matches(t Timestamp) bool {
	if s == nil {
		return true
	}

	month, mok := NewMonth(int(t.Month()))
	day, dok := NewMonthDay(t.Day())
	weekday, wok := NewWeekday(int(t.Weekday()))
	hour, hok := NewHour(t.Hour())
	minute, nok := NewMinute(t.Minute())

	return contains(s.months, month, mok) &&
		contains(s.days, day, dok) &&
		contains(s.weekdays, weekday, wok) &&
		contains(s.hours, hour, hok) &&
		contains(s.minutes, minute, nok)
}

func contains[T Component[T]](parts []Part[T], v T, valid bool) bool {
	if len(parts) == 0 {
		return true // Wildcard
	} else if !valid {
		return false
	}

	for _, part := range parts {
		if part.Contains(v) {
			return true
		}
	}
	return false
}

// String returns the canonical expression of the schedule, which declares
// the axes in the order month, day, weekday, hour and minute, and keeps
// the alternatives of each axis in their original order.
//
// The schedule without any constraint is returned as "when",
// which is not accepted by Parse.
func (s *Schedule) String() string {
	if s == nil {
		return "when"
	}

	var b strings.Builder
	b.Grow(64)
	b.WriteString("when")

	var n int
	decl := func(k Kind, alts []string) {
		if len(alts) == 0 {
			return
		}

		if n > 0 {
			b.WriteByte(',')
		}
		n++

		b.WriteByte(' ')
		b.WriteString(k.String())
		b.WriteByte(' ')
		b.WriteString(strings.Join(alts, " or "))
	}

	decl(KindMonth, partStrings(s.months))
	decl(KindDay, partStrings(s.days))
	decl(KindWeekday, partStrings(s.weekdays))
	decl(KindHour, partStrings(s.hours))
	decl(KindMinute, partStrings(s.minutes))
	return b.String()
}

func partStrings[T Component[T]](parts []Part[T]) []string {
	ss := make([]string, len(parts))
	for i, part := range parts {
		ss[i] = part.String()
	}
	return ss
}

// MarshalText implements the interface encoding.TextMarshaler.
func (s *Schedule) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements the interface encoding.TextUnmarshaler.
func (s *Schedule) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}
