/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout converts logical calendar grids into page-relative
// geometric regions for a given tablet profile. All output is in device
// pixels with the origin at the top-left of the page.
package layout

import (
	"errors"
	"fmt"

	"rmagenda/internal/calendar"
	"rmagenda/internal/device"
)

var ErrBadLayoutInput = errors.New("bad layout input")

// Orientation selects which page axis carries the week-day axis.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation normalizes a configuration string; empty means portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "portrait":
		return Portrait, nil
	case "landscape":
		return Landscape, nil
	default:
		return "", fmt.Errorf("%w: orientation %q", ErrBadLayoutInput, s)
	}
}

// HourRange is the waking-hours span drawn in day and week views.
// First and Last are hours of day, both inclusive (8..20 draws thirteen
// one-hour rows).
type HourRange struct {
	First int
	Last  int
}

// DefaultHours mirrors the classic planner layout: 08:00 through 20:00.
var DefaultHours = HourRange{First: 8, Last: 20}

func (h HourRange) Valid() bool {
	return h.First >= 0 && h.Last <= 23 && h.First <= h.Last
}

// Slots returns the number of hour rows the range spans.
func (h HourRange) Slots() int { return h.Last - h.First + 1 }

// PageRegions is the mapper output for one page. Cells parallels the grid's
// cell order exactly; the remaining fields describe chrome regions the
// renderer draws around the grid. Hour/task/notes regions are populated for
// day views only.
type PageRegions struct {
	Page     Rect
	Usable   Rect
	Header   Rect
	DayNames []Rect // weekday label band, month view only
	Cells    []Rect
	Hours    []Rect // day view hour rows
	Tasks    Rect   // day view task checklist column
	Notes    Rect   // day view notes box
	Hour     HourRange
}

// headerShare is the fraction of the usable height reserved for the title
// band. dayNamesShare sizes the weekday label row of the month view.
const (
	headerShare   = 0.06
	dayNamesShare = 0.03
)

// MapToRegions lays out the grid on the profile's page. The returned cell
// regions are pairwise disjoint, fully contained in the usable area, and
// whole-pixel sized; division remainders land in the last row/column.
func MapToRegions(grid []calendar.GridCell, p device.TabletProfile, kind calendar.Kind, o Orientation, hours HourRange) (*PageRegions, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: profile %+v", ErrBadLayoutInput, p)
	}
	if o != Portrait && o != Landscape {
		return nil, fmt.Errorf("%w: orientation %q", ErrBadLayoutInput, o)
	}
	if !hours.Valid() {
		return nil, fmt.Errorf("%w: hour range %+v", ErrBadLayoutInput, hours)
	}

	pageW, pageH := p.PageWidth, p.PageHeight
	if o == Landscape {
		pageW, pageH = pageH, pageW
	}
	page := R(0, 0, pageW, pageH)
	usable := R(p.Margin, p.Margin, pageW-2*p.Margin, pageH-2*p.Margin)

	headerH := float64(int(usable.H * headerShare))
	header := R(usable.X, usable.Y, usable.W, headerH)
	body := R(usable.X, usable.Y+headerH, usable.W, usable.H-headerH)

	pr := &PageRegions{Page: page, Usable: usable, Header: header, Hour: hours}

	switch kind {
	case calendar.KindMonth:
		if len(grid) != calendar.MonthCells {
			return nil, fmt.Errorf("%w: month grid has %d cells", ErrBadLayoutInput, len(grid))
		}
		namesH := float64(int(usable.H * dayNamesShare))
		pr.DayNames = gridRects(R(body.X, body.Y, body.W, namesH), 1, calendar.WeekDays)
		cellArea := R(body.X, body.Y+namesH, body.W, body.H-namesH)
		pr.Cells = gridRects(cellArea, calendar.MonthRows, calendar.WeekDays)
	case calendar.KindWeek:
		if len(grid) != calendar.WeekDays {
			return nil, fmt.Errorf("%w: week grid has %d cells", ErrBadLayoutInput, len(grid))
		}
		if o == Landscape {
			pr.Cells = gridRects(body, 1, calendar.WeekDays)
		} else {
			pr.Cells = gridRects(body, calendar.WeekDays, 1)
		}
	case calendar.KindDay:
		if len(grid) != 1 {
			return nil, fmt.Errorf("%w: day grid has %d cells", ErrBadLayoutInput, len(grid))
		}
		pr.Cells = []Rect{body}
		mapDayBody(pr, body, hours)
	default:
		return nil, fmt.Errorf("%w: kind %v", ErrBadLayoutInput, kind)
	}
	return pr, nil
}

// mapDayBody subdivides the day page body: hour schedule on the left
// (60% width), task checklist top-right, notes box bottom-right.
func mapDayBody(pr *PageRegions, body Rect, hours HourRange) {
	colW := splitSizes(body.W, 5)
	schedW := colW[0] + colW[1] + colW[2]
	sched := R(body.X, body.Y, schedW, body.H)
	right := R(body.X+schedW, body.Y, body.W-schedW, body.H)

	rowH := splitSizes(sched.H, hours.Slots())
	pr.Hours = make([]Rect, 0, hours.Slots())
	y := sched.Y
	for _, h := range rowH {
		pr.Hours = append(pr.Hours, R(sched.X, y, sched.W, h))
		y += h
	}

	halves := splitSizes(right.H, 2)
	pr.Tasks = R(right.X, right.Y, right.W, halves[0])
	pr.Notes = R(right.X, right.Y+halves[0], right.W, halves[1])
}
