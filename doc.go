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

// Package scheda describes recurring time windows with a small, readable
// language, as an alternative to the crontab expressions, and tests whether
// a time falls inside such a window.
//
// Example
//
//	package main
//
//	import (
//		"fmt"
//		"time"
//
//		"github.com/xgfone/scheda"
//	)
//
//	func main() {
//		office := scheda.MustParse("when weekday mon to fri, hour 9 to 17")
//
//		now := time.Date(2001, time.May, 22, 20, 0, 0, 0, time.UTC)
//		fmt.Println(office.Matches(now)) // false, it's 20:00.
//
//		evening := scheda.MustParse("when weekday tuesday, hour 18 to 21")
//		fmt.Println(evening.Matches(now)) // true
//	}
//
// Timezones are not handled by the package: a time is matched with the
// calendar fields it carries, so convert it with time.Time.In first.
package scheda
