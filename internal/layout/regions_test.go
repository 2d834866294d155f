/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"errors"
	"math"
	"testing"
	"time"

	"rmagenda/internal/calendar"
	"rmagenda/internal/device"
)

func rm2(t *testing.T) device.TabletProfile {
	t.Helper()
	p, err := device.Lookup("reMarkable 2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return p
}

func monthGrid(t *testing.T) []calendar.GridCell {
	t.Helper()
	u, err := calendar.NewMonth(2024, time.February)
	if err != nil {
		t.Fatalf("NewMonth: %v", err)
	}
	cells, err := calendar.BuildGrid(u, time.Monday)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	return cells
}

func assertDisjointContained(t *testing.T, cells []Rect, within Rect) {
	t.Helper()
	for i := range cells {
		if !within.ContainsRect(cells[i], 1) {
			t.Fatalf("cell %d %+v escapes %+v", i, cells[i], within)
		}
		for j := i + 1; j < len(cells); j++ {
			if cells[i].Overlaps(cells[j]) {
				t.Fatalf("cells %d and %d overlap: %+v %+v", i, j, cells[i], cells[j])
			}
		}
	}
}

func TestMonthRegionsDisjointAndTiling(t *testing.T) {
	pr, err := MapToRegions(monthGrid(t), rm2(t), calendar.KindMonth, Portrait, DefaultHours)
	if err != nil {
		t.Fatalf("MapToRegions: %v", err)
	}
	if len(pr.Cells) != calendar.MonthCells {
		t.Fatalf("got %d regions, want 42", len(pr.Cells))
	}
	if len(pr.DayNames) != calendar.WeekDays {
		t.Fatalf("got %d day-name regions, want 7", len(pr.DayNames))
	}
	assertDisjointContained(t, pr.Cells, pr.Usable)

	// Cell rows tile the cell area exactly: the union area of the 42 cells
	// must equal the bounding box they span, within a pixel per boundary.
	var sum float64
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range pr.Cells {
		sum += c.Area()
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.MaxX())
		maxY = math.Max(maxY, c.MaxY())
	}
	bbox := (maxX - minX) * (maxY - minY)
	if math.Abs(sum-bbox) > 1 {
		t.Fatalf("cells leave gaps: union %.1f vs bbox %.1f", sum, bbox)
	}
	// Rounding remainder goes to the last column/row, so the grid's right
	// and bottom edges land exactly on the area bounds.
	last := pr.Cells[len(pr.Cells)-1]
	if math.Abs(last.MaxX()-pr.Usable.MaxX()) > 0.5 || math.Abs(last.MaxY()-pr.Usable.MaxY()) > 0.5 {
		t.Fatalf("remainder not absorbed by last cell: %+v vs %+v", last, pr.Usable)
	}
}

func TestWeekRegionsOrientation(t *testing.T) {
	u, err := calendar.NewWeek(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), time.Monday)
	if err != nil {
		t.Fatalf("NewWeek: %v", err)
	}
	grid, err := calendar.BuildGrid(u, time.Monday)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}

	portrait, err := MapToRegions(grid, rm2(t), calendar.KindWeek, Portrait, DefaultHours)
	if err != nil {
		t.Fatalf("portrait: %v", err)
	}
	if len(portrait.Cells) != 7 {
		t.Fatalf("got %d cells, want 7", len(portrait.Cells))
	}
	// portrait stacks days vertically: same X, increasing Y
	for i := 1; i < 7; i++ {
		if portrait.Cells[i].X != portrait.Cells[0].X || portrait.Cells[i].Y <= portrait.Cells[i-1].Y {
			t.Fatalf("portrait cells not stacked: %+v", portrait.Cells)
		}
	}

	landscape, err := MapToRegions(grid, rm2(t), calendar.KindWeek, Landscape, DefaultHours)
	if err != nil {
		t.Fatalf("landscape: %v", err)
	}
	if landscape.Page.W != 1872 || landscape.Page.H != 1404 {
		t.Fatalf("landscape page not rotated: %+v", landscape.Page)
	}
	for i := 1; i < 7; i++ {
		if landscape.Cells[i].Y != landscape.Cells[0].Y || landscape.Cells[i].X <= landscape.Cells[i-1].X {
			t.Fatalf("landscape cells not side by side: %+v", landscape.Cells)
		}
	}
	assertDisjointContained(t, landscape.Cells, landscape.Usable)
}

func TestDayRegions(t *testing.T) {
	u, err := calendar.NewDay(2024, time.February, 29)
	if err != nil {
		t.Fatalf("NewDay: %v", err)
	}
	grid, err := calendar.BuildGrid(u, time.Monday)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	pr, err := MapToRegions(grid, rm2(t), calendar.KindDay, Portrait, DefaultHours)
	if err != nil {
		t.Fatalf("MapToRegions: %v", err)
	}
	if len(pr.Hours) != DefaultHours.Slots() {
		t.Fatalf("got %d hour rows, want %d", len(pr.Hours), DefaultHours.Slots())
	}
	all := append(append([]Rect{}, pr.Hours...), pr.Tasks, pr.Notes)
	assertDisjointContained(t, all, pr.Usable)
	if pr.Tasks.X <= pr.Hours[0].X {
		t.Fatalf("task column should sit right of the schedule: %+v vs %+v", pr.Tasks, pr.Hours[0])
	}
	if pr.Notes.Y <= pr.Tasks.Y {
		t.Fatalf("notes box should sit under tasks: %+v vs %+v", pr.Notes, pr.Tasks)
	}
}

func TestMapToRegionsRejectsBadInput(t *testing.T) {
	grid := monthGrid(t)
	if _, err := MapToRegions(grid[:10], rm2(t), calendar.KindMonth, Portrait, DefaultHours); !errors.Is(err, ErrBadLayoutInput) {
		t.Fatalf("short grid accepted: %v", err)
	}
	if _, err := MapToRegions(grid, device.TabletProfile{}, calendar.KindMonth, Portrait, DefaultHours); !errors.Is(err, ErrBadLayoutInput) {
		t.Fatalf("zero profile accepted: %v", err)
	}
	if _, err := MapToRegions(grid, rm2(t), calendar.KindMonth, Orientation("diagonal"), DefaultHours); !errors.Is(err, ErrBadLayoutInput) {
		t.Fatalf("bad orientation accepted: %v", err)
	}
	if _, err := MapToRegions(grid, rm2(t), calendar.KindMonth, Portrait, HourRange{First: 20, Last: 8}); !errors.Is(err, ErrBadLayoutInput) {
		t.Fatalf("inverted hour range accepted: %v", err)
	}
}

func TestParseOrientation(t *testing.T) {
	if o, err := ParseOrientation(""); err != nil || o != Portrait {
		t.Fatalf("empty should default to portrait: %v %v", o, err)
	}
	if o, err := ParseOrientation("landscape"); err != nil || o != Landscape {
		t.Fatalf("landscape not parsed: %v %v", o, err)
	}
	if _, err := ParseOrientation("upside-down"); err == nil {
		t.Fatalf("bad orientation parsed")
	}
}

func TestSplitSizesExact(t *testing.T) {
	sizes := splitSizes(100, 7)
	var sum float64
	for _, s := range sizes[:6] {
		if s != 14 {
			t.Fatalf("base span should floor to 14, got %v", sizes)
		}
		sum += s
	}
	if sizes[6] != 100-sum {
		t.Fatalf("last span must absorb remainder: %v", sizes)
	}
}
