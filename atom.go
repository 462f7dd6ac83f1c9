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
	"strings"
	"time"
)

// ParseHour parses a numeric hour from 0 to 23.
func ParseHour(s string) (Hour, bool) {
	n, ok := parseNumber(s)
	if !ok {
		return Hour{}, false
	}
	return NewHour(n)
}

// ParseMinute parses a numeric minute from 0 to 59.
func ParseMinute(s string) (Minute, bool) {
	n, ok := parseNumber(s)
	if !ok {
		return Minute{}, false
	}
	return NewMinute(n)
}

// ParseMonthDay parses a numeric day of the month from 1 to 31.
func ParseMonthDay(s string) (MonthDay, bool) {
	n, ok := parseNumber(s)
	if !ok {
		return MonthDay{}, false
	}
	return NewMonthDay(n)
}

// ParseMonth parses a month from its calendar number ("1" to "12"),
// its three-letter abbreviation ("Jan") or its full name ("January").
// Names are case-insensitive.
func ParseMonth(s string) (Month, bool) {
	s = strings.TrimSpace(s)
	if n, ok := parseNumber(s); ok {
		return NewMonth(n)
	}

	for m := time.January; m <= time.December; m++ {
		if matchName(s, m.String()) {
			return Month{m: m}, true
		}
	}
	return Month{}, false
}

// ParseWeekday parses a weekday from its number counted from Sunday
// ("0" to "6"), its three-letter abbreviation ("Mon") or its full name
// ("Monday"). Names are case-insensitive.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	if n, ok := parseNumber(s); ok {
		return NewWeekday(n)
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		if matchName(s, d.String()) {
			return Weekday{d: d}, true
		}
	}
	return Weekday{}, false
}

// parseNumber only accepts plain decimal digits, so that a word such as
// "1st" or "-3" is never mistaken for a number.
func parseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	n, err := strconv.Atoi(s)
	return n, err == nil
}

func matchName(s, name string) bool {
	return strings.EqualFold(s, name[:3]) || strings.EqualFold(s, name)
}
