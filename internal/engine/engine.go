/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package engine runs the generation pipeline: calendar math, layout
// mapping, page rendering, link building, document assembly. One call,
// one immutable Document; configuration arrives in the Request so there
// is no ambient state to contaminate the next generation.
package engine

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rmagenda/internal/calendar"
	"rmagenda/internal/device"
	"rmagenda/internal/document"
	"rmagenda/internal/layout"
	applog "rmagenda/internal/log"
	"rmagenda/internal/nav"
	"rmagenda/internal/render"
)

// Request is the full input contract of one generation run. Units is the
// declared page order of the output document. Events, Weather and Tasks
// are pre-gathered by outside collaborators and keyed by render.DateKey.
type Request struct {
	Profile     device.TabletProfile
	Units       []calendar.Unit
	WeekStart   time.Weekday
	Orientation layout.Orientation
	Hours       layout.HourRange
	Use24h      bool
	Events      map[string][]render.Event
	Weather     map[string]render.Weather
	Tasks       []string
}

// Generate runs the pipeline for one request. Pages render concurrently;
// link building starts only after every page exists.
func Generate(req Request) (*document.Document, error) {
	l := applog.WithComponent("engine")
	start := time.Now()

	if !req.Profile.Valid() {
		return nil, fmt.Errorf("generate: invalid tablet profile %+v", req.Profile)
	}
	if err := calendar.CheckWeekStart(req.WeekStart); err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if req.Orientation == "" {
		req.Orientation = layout.Portrait
	}
	if req.Hours == (layout.HourRange{}) {
		req.Hours = layout.DefaultHours
	}
	if len(req.Units) == 0 {
		return nil, fmt.Errorf("generate: no units requested")
	}
	units := dedupeUnits(req.Units)
	if len(units) < len(req.Units) {
		l.Warn("duplicate units dropped", slog.Int("dropped", len(req.Units)-len(units)))
	}

	opts := render.Options{
		Use24h: req.Use24h,
		Providers: []render.ContentProvider{
			render.EventList{Events: req.Events, Use24h: req.Use24h},
			render.WeatherBadge{Forecast: req.Weather},
		},
		Tasks: render.TaskChecklist{Tasks: req.Tasks},
	}

	// Grids and regions first; failures here are caller input problems
	// and must surface before any concurrent work starts.
	type job struct {
		unit    calendar.Unit
		grid    []calendar.GridCell
		regions *layout.PageRegions
	}
	jobs := make([]job, len(units))
	for i, u := range units {
		grid, err := calendar.BuildGrid(u, req.WeekStart)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", u.Key(), err)
		}
		regions, err := layout.MapToRegions(grid, req.Profile, u.Kind, req.Orientation, req.Hours)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", u.Key(), err)
		}
		jobs[i] = job{unit: u, grid: grid, regions: regions}
	}

	// Page renders are independent: fan out, join, then link.
	pages := make([]*render.Page, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pages[i], errs[i] = render.RenderPage(jobs[i].grid, jobs[i].regions, jobs[i].unit, opts)
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", jobs[i].unit.Key(), err)
		}
	}

	links, err := nav.BuildLinks(pages)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	doc, err := document.Assemble(pages, links)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	l.Info("document generated",
		slog.Int("pages", len(doc.Pages)),
		slog.Int("links", len(doc.Links)),
		slog.Duration("took", time.Since(start)),
	)
	return doc, nil
}

func dedupeUnits(units []calendar.Unit) []calendar.Unit {
	seen := make(map[string]bool, len(units))
	out := make([]calendar.Unit, 0, len(units))
	for _, u := range units {
		if seen[u.Key()] {
			continue
		}
		seen[u.Key()] = true
		out = append(out, u)
	}
	return out
}
