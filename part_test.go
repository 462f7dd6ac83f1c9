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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(t *testing.T, s string) Month {
	t.Helper()
	m, ok := ParseMonth(s)
	require.True(t, ok, "month %q", s)
	return m
}

func TestWellFormed(t *testing.T) {
	for a := 1; a <= 12; a++ {
		for b := 1; b <= 12; b++ {
			start, _ := NewMonth(a)
			end, _ := NewMonth(b)
			assert.Equal(t, a < b, WellFormed(start, end), "%d..%d", a, b)
		}
	}

	h0, _ := NewHour(0)
	h23, _ := NewHour(23)
	assert.True(t, WellFormed(h0, h23))
	assert.False(t, WellFormed(h23, h0))
	assert.False(t, WellFormed(h0, h0))

	sat, _ := NewWeekday(6)
	sun, _ := NewWeekday(0)
	assert.True(t, WellFormed(sun, sat))
	assert.False(t, WellFormed(sat, sun))
}

func TestParseRange(t *testing.T) {
	valid := []struct {
		input      string
		start, end string
	}{
		{"Jan to Mar", "January", "March"},
		{"february to 10", "February", "October"},
		{"Nov to Dec", "November", "December"},
		{"2 to 10", "February", "October"},
		{"  3 to Dec  ", "March", "December"},
	}
	for _, tt := range valid {
		part, err := ParseRange(tt.input, ParseMonth)
		require.NoError(t, err, tt.input)
		assert.True(t, part.IsRange())
		assert.Equal(t, month(t, tt.start), part.Start())
		assert.Equal(t, month(t, tt.end), part.End())
	}

	invalid := []struct {
		input  string
		reason string
	}{
		{"10 to 5", ReasonRangeOrder},
		{"Dec to Feb", ReasonRangeOrder},
		{"Dec to Dec", ReasonRangeOrder},
		{"february to Feb", ReasonRangeOrder},
		{"Dec to Tuesday", ReasonRangeSyntax},
		{"13 to 19", ReasonRangeSyntax},
		{"Jan To Mar", ReasonRangeSyntax},
		{"Jan - Mar", ReasonRangeSyntax},
		{"Jan to", ReasonRangeSyntax},
		{"Jan  to Mar", ReasonRangeSyntax},
		{"Jan", ReasonRangeSyntax},
	}
	for _, tt := range invalid {
		_, err := ParseRange(tt.input, ParseMonth)
		require.Error(t, err, tt.input)
		assert.True(t, errors.Is(err, ErrMalformedRange), tt.input)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, tt.reason, e.Detail, tt.input)
	}
}

func TestPartContains(t *testing.T) {
	h := func(i int) Hour {
		v, ok := NewHour(i)
		require.True(t, ok)
		return v
	}

	single := Single(h(20))
	assert.False(t, single.IsRange())
	assert.True(t, single.Contains(h(20)))
	assert.False(t, single.Contains(h(19)))
	assert.Equal(t, "20", single.String())

	r, err := NewRange(h(18), h(21))
	require.NoError(t, err)
	assert.Equal(t, "18 to 21", r.String())
	for i := 0; i <= 23; i++ {
		assert.Equal(t, i >= 18 && i <= 21, r.Contains(h(i)), "hour %d", i)
	}

	_, err = NewRange(h(21), h(18))
	assert.ErrorIs(t, err, ErrMalformedRange)
}
