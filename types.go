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
	"strconv"
	"time"
)

// Hour is an hour of the day, from 0 to 23.
type Hour struct{ v uint8 }

// NewHour returns the hour h, or false if h is not in [0, 23].
func NewHour(h int) (Hour, bool) {
	if h < 0 || h > 23 {
		return Hour{}, false
	}
	return Hour{v: uint8(h)}, true
}

// Canonical returns the hour number.
func (h Hour) Canonical() uint8 { return h.v }

// Less reports whether h is earlier than o.
func (h Hour) Less(o Hour) bool { return h.v < o.v }

func (h Hour) String() string { return strconv.Itoa(int(h.v)) }

// Minute is a minute of the hour, from 0 to 59.
type Minute struct{ v uint8 }

// NewMinute returns the minute m, or false if m is not in [0, 59].
func NewMinute(m int) (Minute, bool) {
	if m < 0 || m > 59 {
		return Minute{}, false
	}
	return Minute{v: uint8(m)}, true
}

// Canonical returns the minute number.
func (m Minute) Canonical() uint8 { return m.v }

// Less reports whether m is earlier than o.
func (m Minute) Less(o Minute) bool { return m.v < o.v }

func (m Minute) String() string { return strconv.Itoa(int(m.v)) }

// MonthDay is a day of the month, from 1 to 31.
//
// It is not checked against the length of any concrete month,
// so 31 is a valid MonthDay that simply never matches in April.
type MonthDay struct{ v uint8 }

// NewMonthDay returns the day d, or false if d is not in [1, 31].
func NewMonthDay(d int) (MonthDay, bool) {
	if d < 1 || d > 31 {
		return MonthDay{}, false
	}
	return MonthDay{v: uint8(d)}, true
}

// Canonical returns the day number.
func (d MonthDay) Canonical() uint8 { return d.v }

// Less reports whether d is earlier than o.
func (d MonthDay) Less(o MonthDay) bool { return d.v < o.v }

func (d MonthDay) String() string { return strconv.Itoa(int(d.v)) }

// Month is a calendar month, from 1 (January) to 12 (December).
type Month struct{ m time.Month }

// NewMonth returns the month with the calendar number m,
// or false if m is not in [1, 12].
func NewMonth(m int) (Month, bool) {
	if m < 1 || m > 12 {
		return Month{}, false
	}
	return Month{m: time.Month(m)}, true
}

// Canonical returns the calendar month number.
func (m Month) Canonical() uint8 { return uint8(m.m) }

// Less reports whether m comes before o in the calendar year.
func (m Month) Less(o Month) bool { return m.m < o.m }

// Month returns m as a time.Month.
func (m Month) Month() time.Month { return m.m }

// String returns the full English name of the month, such as "January".
func (m Month) String() string { return m.m.String() }

// Weekday is a day of the week, from 0 (Sunday) to 6 (Saturday).
type Weekday struct{ d time.Weekday }

// NewWeekday returns the weekday d counted from Sunday,
// or false if d is not in [0, 6].
func NewWeekday(d int) (Weekday, bool) {
	if d < 0 || d > 6 {
		return Weekday{}, false
	}
	return Weekday{d: time.Weekday(d)}, true
}

// Canonical returns the number of days since Sunday.
func (d Weekday) Canonical() uint8 { return uint8(d.d) }

// Less reports whether d comes before o in a week starting on Sunday.
func (d Weekday) Less(o Weekday) bool { return d.d < o.d }

// Weekday returns d as a time.Weekday.
func (d Weekday) Weekday() time.Weekday { return d.d }

// String returns the full English name of the weekday, such as "Sunday".
func (d Weekday) String() string { return d.d.String() }
