/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// Month grids are always 6 weeks by 7 weekdays so every month shares one
// page geometry; short months pad with adjacent-month filler cells.
const (
	MonthRows  = 6
	WeekDays   = 7
	MonthCells = MonthRows * WeekDays
)

// GridCell is one day/slot of a view page. InRange is false for cells that
// belong to an adjacent month shown for continuity; such cells render but
// are never primary navigation targets of the current page.
type GridCell struct {
	Date    time.Time
	Row     int
	Col     int
	Label   string
	InRange bool
}

// BuildGrid produces the ordered cell sequence for a unit:
//   - month: 42 cells, row-major, starting on the weekStart on or before the 1st
//   - week: 7 cells beginning on weekStart
//   - day: a single cell (hour slots are a layout concern, not a date one)
func BuildGrid(u Unit, weekStart time.Weekday) ([]GridCell, error) {
	if err := CheckWeekStart(weekStart); err != nil {
		return nil, err
	}
	if u.Date.IsZero() {
		return nil, fmt.Errorf("%w: zero unit date", ErrInvalidCalendarUnit)
	}
	switch u.Kind {
	case KindMonth:
		return monthGrid(u, weekStart), nil
	case KindWeek:
		return weekGrid(u, weekStart), nil
	case KindDay:
		return []GridCell{{Date: u.Date, Label: u.Date.Format("2"), InRange: true}}, nil
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidCalendarUnit, int(u.Kind))
	}
}

func monthGrid(u Unit, weekStart time.Weekday) []GridCell {
	first := u.Date // normalized to the 1st by NewMonth
	cur := StartOfWeek(first, weekStart)
	cells := make([]GridCell, 0, MonthCells)
	for i := 0; i < MonthCells; i++ {
		cells = append(cells, GridCell{
			Date:    cur,
			Row:     i / WeekDays,
			Col:     i % WeekDays,
			Label:   strconv.Itoa(cur.Day()),
			InRange: cur.Month() == first.Month() && cur.Year() == first.Year(),
		})
		cur = cur.AddDate(0, 0, 1)
	}
	return cells
}

func weekGrid(u Unit, weekStart time.Weekday) []GridCell {
	start := StartOfWeek(u.Date, weekStart)
	cells := make([]GridCell, 0, WeekDays)
	for i := 0; i < WeekDays; i++ {
		d := start.AddDate(0, 0, i)
		cells = append(cells, GridCell{
			Date:    d,
			Row:     i,
			Label:   d.Format("Mon 2"),
			InRange: true,
		})
	}
	return cells
}

// WeekdayNames returns the 7 weekday header labels starting at weekStart.
func WeekdayNames(weekStart time.Weekday) []string {
	names := make([]string, WeekDays)
	for i := 0; i < WeekDays; i++ {
		names[i] = time.Weekday((int(weekStart) + i) % 7).String()
	}
	return names
}
