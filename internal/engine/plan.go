/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"time"

	"rmagenda/internal/calendar"
)

// MonthPlan expands one month into the standard page order: the month
// page first, then the weeks overlapping it, then every day. This is the
// deterministic ordering the assembled document keeps.
func MonthPlan(year int, month time.Month, weekStart time.Weekday) ([]calendar.Unit, error) {
	m, err := calendar.NewMonth(year, month)
	if err != nil {
		return nil, err
	}
	if err := calendar.CheckWeekStart(weekStart); err != nil {
		return nil, err
	}

	units := []calendar.Unit{m}

	days := calendar.DaysInMonth(year, month)
	last := m.Date.AddDate(0, 0, days-1)
	for ws := calendar.StartOfWeek(m.Date, weekStart); !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		w, err := calendar.NewWeek(ws, weekStart)
		if err != nil {
			return nil, err
		}
		units = append(units, w)
	}

	for d := 1; d <= days; d++ {
		day, err := calendar.NewDay(year, month, d)
		if err != nil {
			return nil, err
		}
		units = append(units, day)
	}
	return units, nil
}
