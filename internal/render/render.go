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

	"rmagenda/internal/calendar"
	"rmagenda/internal/layout"
)

// HourlyProvider is an optional upgrade of ContentProvider for day views:
// content that belongs to a specific hour row rather than the whole day.
type HourlyProvider interface {
	ContentProvider
	HourOps(date time.Time, hour int, row layout.Rect) []Op
}

// Options configures one render pass. Providers run against every day
// cell's content area; Tasks fills the day view's checklist region.
type Options struct {
	Use24h    bool
	Providers []ContentProvider
	Tasks     ContentProvider
}

// RenderPage draws one calendar unit into a fresh Page using the regions
// previously mapped for its grid. The returned Page is immutable.
func RenderPage(grid []calendar.GridCell, regions *layout.PageRegions, unit calendar.Unit, opts Options) (*Page, error) {
	if regions == nil || len(regions.Cells) != len(grid) {
		return nil, fmt.Errorf("render: regions do not match grid (%d cells)", len(grid))
	}
	p := &Page{Unit: unit, Grid: grid, Regions: regions}

	// Title band
	p.push(fillOp(regions.Header, grayLight))
	p.push(textOp(regions.Header, unit.Title(), regions.Header.H*0.55, AlignCenter, grayBlack, true))

	switch unit.Kind {
	case calendar.KindMonth:
		renderMonth(p, grid, regions, opts)
	case calendar.KindWeek:
		renderWeek(p, grid, regions, opts)
	case calendar.KindDay:
		renderDay(p, grid, regions, opts)
	default:
		return nil, fmt.Errorf("render: unknown unit kind %v", unit.Kind)
	}
	return p, nil
}

func renderMonth(p *Page, grid []calendar.GridCell, regions *layout.PageRegions, opts Options) {
	names := calendar.WeekdayNames(grid[0].Date.Weekday())
	for i, r := range regions.DayNames {
		p.push(textOp(r, names[i], r.H*0.6, AlignCenter, grayBlack, true))
	}
	for i, cell := range grid {
		r := regions.Cells[i]
		gray := uint8(grayBlack)
		if !cell.InRange {
			gray = grayDim
		}
		p.push(rectOp(r, gray, hairline))
		labelSize := clampSize(r.H*0.22, 30)
		label := layout.R(r.X+6, r.Y+4, r.W-12, labelSize)
		p.push(textOp(label, cell.Label, labelSize, AlignLeft, gray, cell.InRange))
		if cell.InRange {
			content := layout.R(r.X+6, r.Y+labelSize+8, r.W-12, r.H-labelSize-14)
			applyProviders(p, opts.Providers, cell.Date, content)
		}
	}
}

func renderWeek(p *Page, grid []calendar.GridCell, regions *layout.PageRegions, opts Options) {
	for i, cell := range grid {
		r := regions.Cells[i]
		p.push(rectOp(r, grayBlack, hairline))
		labelSize := clampSize(r.H*0.2, 28)
		label := layout.R(r.X+8, r.Y+6, r.W-16, labelSize)
		p.push(textOp(label, cell.Date.Format("Monday 2"), labelSize, AlignLeft, grayBlack, true))
		content := layout.R(r.X+8, r.Y+labelSize+12, r.W-16, r.H-labelSize-18)
		applyProviders(p, opts.Providers, cell.Date, content)
	}
}

func renderDay(p *Page, grid []calendar.GridCell, regions *layout.PageRegions, opts Options) {
	date := grid[0].Date

	// Non-hourly content (weather summaries and the like) lands in the
	// title band so the schedule stays clear for writing.
	for _, prov := range opts.Providers {
		if _, hourly := prov.(HourlyProvider); !hourly {
			p.push(prov.Ops(date, regions.Header)...)
		}
	}

	gutter := clampSize(regions.Hours[0].W*0.16, 110)
	for i, row := range regions.Hours {
		hour := regions.Hour.First + i
		p.push(lineOp(row.X, row.Y, row.MaxX(), row.Y, grayDim, hairline))
		size := clampSize(row.H*0.35, 26)
		anchor := layout.R(row.X, row.Y+4, gutter-8, size)
		p.push(textOp(anchor, hourLabel(hour, opts.Use24h), size, AlignRight, grayBlack, false))

		slot := layout.R(row.X+gutter, row.Y+2, row.W-gutter-4, row.H-4)
		for _, prov := range opts.Providers {
			if hp, ok := prov.(HourlyProvider); ok {
				p.push(hp.HourOps(date, hour, slot)...)
			}
		}
	}
	last := regions.Hours[len(regions.Hours)-1]
	p.push(lineOp(last.X, last.MaxY(), last.MaxX(), last.MaxY(), grayDim, hairline))

	// Task checklist
	p.push(rectOp(regions.Tasks, grayBlack, hairline))
	taskHeader := layout.R(regions.Tasks.X+8, regions.Tasks.Y+6, regions.Tasks.W-16, 28)
	p.push(textOp(taskHeader, "Tasks", 28, AlignLeft, grayBlack, true))
	tasks := opts.Tasks
	if tasks == nil {
		tasks = TaskChecklist{}
	}
	taskArea := layout.R(regions.Tasks.X+8, regions.Tasks.Y+44, regions.Tasks.W-16, regions.Tasks.H-52)
	p.push(tasks.Ops(date, taskArea)...)

	// Notes box
	p.push(rectOp(regions.Notes, grayBlack, hairline))
	notesHeader := layout.R(regions.Notes.X+8, regions.Notes.Y+6, regions.Notes.W-16, 28)
	p.push(textOp(notesHeader, "Notes", 28, AlignLeft, grayBlack, true))
}

func applyProviders(p *Page, provs []ContentProvider, date time.Time, area layout.Rect) {
	for _, prov := range provs {
		p.push(prov.Ops(date, area)...)
	}
}

func hourLabel(hour int, use24h bool) string {
	if use24h {
		return fmt.Sprintf("%02d:00", hour)
	}
	t := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC)
	return t.Format("3PM")
}

func clampSize(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}
