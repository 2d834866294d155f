/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package document assembles rendered pages and navigation links into the
// final immutable Document handed to the file-writing side.
package document

import (
	"errors"
	"fmt"
	"sort"

	"rmagenda/internal/nav"
	"rmagenda/internal/render"
)

// ErrDanglingLinkTarget flags a link that references a page index outside
// the assembled sequence. Unlike invalid caller input this is an engine
// defect, and generation must abort rather than emit a broken document.
var ErrDanglingLinkTarget = errors.New("dangling link target")

// Document is an ordered page sequence plus its link set. The slice index
// is the canonical page identity used by links. Documents are built once,
// never mutated, and discarded after the output file is written.
type Document struct {
	Pages []*render.Page
	Links []nav.PageLink
}

// Assemble validates and freezes pages and links into a Document. Page
// order is exactly the caller's order, which the engine derives from the
// generation request's declared unit order. Links are re-sorted by source
// page and region position, so assembling identical inputs always yields
// an identical document.
func Assemble(pages []*render.Page, links []nav.PageLink) (*Document, error) {
	for _, l := range links {
		if l.SourcePage < 0 || l.SourcePage >= len(pages) {
			return nil, fmt.Errorf("%w: source page %d of %d", ErrDanglingLinkTarget, l.SourcePage, len(pages))
		}
		if l.TargetPage < 0 || l.TargetPage >= len(pages) {
			return nil, fmt.Errorf("%w: target page %d of %d", ErrDanglingLinkTarget, l.TargetPage, len(pages))
		}
	}

	d := &Document{
		Pages: append([]*render.Page(nil), pages...),
		Links: append([]nav.PageLink(nil), links...),
	}
	sort.SliceStable(d.Links, func(i, j int) bool {
		a, b := d.Links[i], d.Links[j]
		if a.SourcePage != b.SourcePage {
			return a.SourcePage < b.SourcePage
		}
		if a.Region.Y != b.Region.Y {
			return a.Region.Y < b.Region.Y
		}
		return a.Region.X < b.Region.X
	})
	return d, nil
}
