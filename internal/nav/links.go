/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package nav builds the navigation link graph between rendered pages:
// month day cells jump to day pages, week day cells jump to day pages,
// page headers jump one level up (day→week, week→month). Linking is
// best-effort; a missing target page simply yields no link.
package nav

import (
	"errors"
	"fmt"
	"time"

	"rmagenda/internal/calendar"
	"rmagenda/internal/layout"
	"rmagenda/internal/render"
)

// ErrOverlappingLinkRegion flags two distinct link regions that intersect
// on the same page; tappable areas must never be ambiguous.
var ErrOverlappingLinkRegion = errors.New("overlapping link region")

// PageLink is a directional navigation edge: tapping Region on page
// SourcePage jumps to TargetPage (the page rendering TargetUnit).
type PageLink struct {
	SourcePage int
	Region     layout.Rect
	TargetUnit calendar.Unit
	TargetPage int
}

// BuildLinks wires navigation between the given pages. The page slice
// order is the document's page order; indices into it are the link
// endpoints. Target resolution always keys off a cell's own date, never
// its grid position, so adjacent-month quirks cannot misroute a link.
func BuildLinks(pages []*render.Page) ([]PageLink, error) {
	byKey := make(map[string]int, len(pages))
	for i, p := range pages {
		byKey[p.Unit.Key()] = i
	}

	var links []PageLink
	seen := make(map[string]bool)

	add := func(src int, region layout.Rect, target calendar.Unit) error {
		dst, ok := byKey[target.Key()]
		if !ok {
			return nil // unresolved target: render without a link
		}
		key := fmt.Sprintf("%d/%.0f,%.0f,%.0f,%.0f", src, region.X, region.Y, region.W, region.H)
		if seen[key] {
			return nil // same (page, region) pair: keep the first link
		}
		for _, l := range links {
			if l.SourcePage == src && l.Region.Overlaps(region) {
				return fmt.Errorf("%w: page %d regions %+v and %+v", ErrOverlappingLinkRegion, src, l.Region, region)
			}
		}
		seen[key] = true
		links = append(links, PageLink{SourcePage: src, Region: region, TargetUnit: target, TargetPage: dst})
		return nil
	}

	for i, p := range pages {
		switch p.Unit.Kind {
		case calendar.KindMonth:
			for ci, cell := range p.Grid {
				if !cell.InRange {
					continue
				}
				day := calendar.Unit{Kind: calendar.KindDay, Date: cell.Date}
				if err := add(i, p.Regions.Cells[ci], day); err != nil {
					return nil, err
				}
			}
		case calendar.KindWeek:
			for ci, cell := range p.Grid {
				day := calendar.Unit{Kind: calendar.KindDay, Date: cell.Date}
				if err := add(i, p.Regions.Cells[ci], day); err != nil {
					return nil, err
				}
			}
			// header climbs to the month holding the week's start
			month := calendar.Unit{Kind: calendar.KindMonth, Date: firstOfMonth(p.Unit)}
			if err := add(i, p.Regions.Header, month); err != nil {
				return nil, err
			}
		case calendar.KindDay:
			// header climbs to the enclosing week page, whatever its start day
			for j, q := range pages {
				if q.Unit.Kind == calendar.KindWeek && q.Unit.Contains(p.Unit.Date) {
					if err := add(i, p.Regions.Header, pages[j].Unit); err != nil {
						return nil, err
					}
					break
				}
			}
		}
	}
	return links, nil
}

func firstOfMonth(u calendar.Unit) time.Time {
	d := u.Date
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
