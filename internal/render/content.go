/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"time"

	"rmagenda/internal/layout"
)

// ContentProvider fills a cell's content area for one date. Providers are
// how task lists, events and weather summaries reach the page without the
// grid or layout code knowing about them; new content kinds plug in here.
type ContentProvider interface {
	// Ops returns draw operations for the given date's content area.
	// An empty slice means nothing to draw.
	Ops(date time.Time, area layout.Rect) []Op
}

// DateKey is the map key format for per-day engine inputs.
const DateKey = "2006-01-02"

// Event is a pre-gathered calendar entry (iCal fetching happens outside
// the engine).
type Event struct {
	Start    time.Time
	Summary  string
	Location string
}

// Weather is a pre-gathered one-day forecast summary.
type Weather struct {
	Condition string
	TempC     float64
}

// EventList renders event summaries as stacked lines in a cell.
type EventList struct {
	Events map[string][]Event // keyed by DateKey
	Use24h bool
	Size   float64 // line height; 0 uses a cell-proportional default
}

func (e EventList) Ops(date time.Time, area layout.Rect) []Op {
	evs := e.Events[date.Format(DateKey)]
	if len(evs) == 0 {
		return nil
	}
	size := e.Size
	if size == 0 {
		size = area.H / 8
		if size > 22 {
			size = 22
		}
	}
	ops := make([]Op, 0, len(evs))
	y := area.Y
	for _, ev := range evs {
		if y+size > area.MaxY() {
			break
		}
		line := fmt.Sprintf("%s %s", clock(ev.Start, e.Use24h), ev.Summary)
		ops = append(ops, textOp(layout.R(area.X, y, area.W, size), line, size, AlignLeft, grayBlack, false))
		y += size * 1.3
	}
	return ops
}

// HourOps places events whose start hour matches into that hour's row,
// upgrading EventList to an HourlyProvider for day views.
func (e EventList) HourOps(date time.Time, hour int, row layout.Rect) []Op {
	var ops []Op
	size := row.H * 0.5
	if size > 24 {
		size = 24
	}
	x := row.X
	for _, ev := range e.Events[date.Format(DateKey)] {
		if ev.Start.Hour() != hour {
			continue
		}
		line := ev.Summary
		if ev.Location != "" {
			line += " - " + ev.Location
		}
		ops = append(ops, textOp(layout.R(x, row.Y+(row.H-size)/2, row.W, size), line, size, AlignLeft, grayBlack, false))
		x += row.W / 2 // crude two-up packing for clashing events
	}
	return ops
}

// WeatherBadge renders a one-line condition/temperature summary at the
// bottom of a cell.
type WeatherBadge struct {
	Forecast map[string]Weather // keyed by DateKey
	Size     float64
}

func (w WeatherBadge) Ops(date time.Time, area layout.Rect) []Op {
	f, ok := w.Forecast[date.Format(DateKey)]
	if !ok {
		return nil
	}
	size := w.Size
	if size == 0 {
		size = 20
	}
	line := fmt.Sprintf("%s %.0f°C", f.Condition, f.TempC)
	anchor := layout.R(area.X, area.MaxY()-size*1.2, area.W, size)
	return []Op{textOp(anchor, line, size, AlignRight, grayDim, false)}
}

// TaskChecklist renders checkbox rows. With no tasks it draws empty
// checkbox lines so the page stays writable on the tablet.
type TaskChecklist struct {
	Tasks     []string
	EmptyRows int // rows to draw when Tasks is empty; 0 means 10
}

func (tc TaskChecklist) Ops(_ time.Time, area layout.Rect) []Op {
	rows := len(tc.Tasks)
	if rows == 0 {
		rows = tc.EmptyRows
		if rows == 0 {
			rows = 10
		}
	}
	rowH := area.H / float64(rows)
	if rowH > 56 {
		rowH = 56
	}
	box := rowH * 0.45
	size := rowH * 0.42
	ops := make([]Op, 0, rows*2)
	for i := 0; i < rows; i++ {
		y := area.Y + float64(i)*rowH
		ops = append(ops, rectOp(layout.R(area.X+4, y+(rowH-box)/2, box, box), grayBlack, hairline))
		if i < len(tc.Tasks) {
			anchor := layout.R(area.X+box+16, y, area.W-box-20, rowH)
			ops = append(ops, textOp(anchor, tc.Tasks[i], size, AlignLeft, grayBlack, false))
		} else {
			// ruled line for handwriting
			ops = append(ops, lineOp(area.X+box+16, y+rowH-4, area.MaxX()-4, y+rowH-4, grayDim, hairline))
		}
	}
	return ops
}

func clock(t time.Time, use24h bool) string {
	if use24h {
		return t.Format("15:04")
	}
	return t.Format("3:04PM")
}
