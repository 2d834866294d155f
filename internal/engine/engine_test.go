/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package engine

import (
	"errors"
	"testing"
	"time"

	"rmagenda/internal/calendar"
	"rmagenda/internal/device"
	"rmagenda/internal/layout"
)

func rm2(t *testing.T) device.TabletProfile {
	t.Helper()
	p, err := device.Lookup("reMarkable 2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return p
}

func TestGenerateMonthOnly(t *testing.T) {
	// End-to-end scenario from the drawing board: February 2024, Monday
	// weeks, reMarkable 2 page. One page, 42 cell regions in a 6×7 grid,
	// 29 in-range cells, zero links and zero errors without day pages.
	m, err := calendar.NewMonth(2024, time.February)
	if err != nil {
		t.Fatalf("NewMonth: %v", err)
	}
	doc, err := Generate(Request{
		Profile:   rm2(t),
		Units:     []calendar.Unit{m},
		WeekStart: time.Monday,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(doc.Pages))
	}
	page := doc.Pages[0]
	if len(page.Regions.Cells) != 42 {
		t.Fatalf("got %d regions, want 42", len(page.Regions.Cells))
	}
	inRange := 0
	for _, c := range page.Grid {
		if c.InRange {
			inRange++
		}
	}
	if inRange != 29 {
		t.Fatalf("got %d in-range cells, want 29", inRange)
	}
	if len(doc.Links) != 0 {
		t.Fatalf("expected unresolved links to vanish, got %d", len(doc.Links))
	}
}

func TestGenerateFullMonthPlan(t *testing.T) {
	units, err := MonthPlan(2024, time.February, time.Monday)
	if err != nil {
		t.Fatalf("MonthPlan: %v", err)
	}
	// month + 5 weeks (Jan 29 .. Feb 26 starts) + 29 days
	if len(units) != 1+5+29 {
		t.Fatalf("got %d units, want 35", len(units))
	}
	if units[0].Kind != calendar.KindMonth || units[1].Kind != calendar.KindWeek || units[len(units)-1].Kind != calendar.KindDay {
		t.Fatalf("plan order wrong: %v %v %v", units[0].Kind, units[1].Kind, units[len(units)-1].Kind)
	}

	doc, err := Generate(Request{
		Profile:   rm2(t),
		Units:     units,
		WeekStart: time.Monday,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(doc.Pages) != 35 {
		t.Fatalf("got %d pages, want 35", len(doc.Pages))
	}
	// every in-range month cell resolves to the page of its own date
	monthLinks := 0
	for _, l := range doc.Links {
		if l.SourcePage != 0 {
			continue
		}
		monthLinks++
		target := doc.Pages[l.TargetPage]
		if target.Unit.Kind != calendar.KindDay || !target.Unit.Date.Equal(l.TargetUnit.Date) {
			t.Fatalf("month link misrouted: %+v -> %+v", l, target.Unit)
		}
	}
	if monthLinks != 29 {
		t.Fatalf("got %d month day links, want 29", monthLinks)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	units, err := MonthPlan(2024, time.February, time.Monday)
	if err != nil {
		t.Fatalf("MonthPlan: %v", err)
	}
	req := Request{Profile: rm2(t), Units: units, WeekStart: time.Monday}
	a, err := Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(a.Links) != len(b.Links) {
		t.Fatalf("link counts differ: %d vs %d", len(a.Links), len(b.Links))
	}
	for i := range a.Links {
		if a.Links[i] != b.Links[i] {
			t.Fatalf("link %d differs across runs", i)
		}
	}
	for i := range a.Pages {
		if a.Pages[i].Unit != b.Pages[i].Unit {
			t.Fatalf("page %d unit differs across runs", i)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	m, _ := calendar.NewMonth(2024, time.February)
	if _, err := Generate(Request{Units: []calendar.Unit{m}, WeekStart: time.Monday}); err == nil {
		t.Fatalf("zero profile accepted")
	}
	if _, err := Generate(Request{Profile: rm2(t), Units: []calendar.Unit{m}, WeekStart: time.Weekday(12)}); !errors.Is(err, calendar.ErrUnsupportedWeekStart) {
		t.Fatalf("bad week start accepted: %v", err)
	}
	if _, err := Generate(Request{Profile: rm2(t), WeekStart: time.Monday}); err == nil {
		t.Fatalf("empty unit list accepted")
	}
	if _, err := Generate(Request{Profile: rm2(t), Units: []calendar.Unit{m}, WeekStart: time.Monday, Orientation: layout.Orientation("diagonal")}); err == nil {
		t.Fatalf("bad orientation accepted")
	}
}

func TestGenerateDropsDuplicateUnits(t *testing.T) {
	m, _ := calendar.NewMonth(2024, time.February)
	doc, err := Generate(Request{
		Profile:   rm2(t),
		Units:     []calendar.Unit{m, m, m},
		WeekStart: time.Monday,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("duplicates not dropped: %d pages", len(doc.Pages))
	}
}
