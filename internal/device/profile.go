/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package device holds tablet page geometry presets. All layout math in the
// engine is derived from a TabletProfile; profiles are static configuration
// data, never computed.
package device

import (
	"fmt"
	"sort"
	"strings"
)

// TabletProfile describes the drawable page of a target device.
// PageWidth/PageHeight/Margin are in device pixels; the whole pipeline works
// in this one coordinate space (the PDF writer emits pages at the same size,
// so 1 unit == 1 pixel on the device).
type TabletProfile struct {
	Name       string
	PageWidth  float64
	PageHeight float64
	DPI        int
	Margin     float64
	Color      bool // device can display color content
}

// DefaultMargin is the page margin applied by presets, in device pixels.
const DefaultMargin = 40

var presets = map[string]TabletProfile{
	"remarkable 1": {Name: "reMarkable 1", PageWidth: 1404, PageHeight: 1872, DPI: 226, Margin: DefaultMargin},
	"remarkable 2": {Name: "reMarkable 2", PageWidth: 1404, PageHeight: 1872, DPI: 226, Margin: DefaultMargin},
	"paper pro":    {Name: "Paper Pro", PageWidth: 1620, PageHeight: 2160, DPI: 229, Margin: DefaultMargin, Color: true},
}

// Lookup resolves a tablet model name to its profile. The match is
// case-insensitive and tolerant of surrounding whitespace.
func Lookup(model string) (TabletProfile, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(model))]
	if !ok {
		return TabletProfile{}, fmt.Errorf("unknown tablet model %q (known: %s)", model, strings.Join(Models(), ", "))
	}
	return p, nil
}

// Models returns the known preset names, sorted.
func Models() []string {
	out := make([]string, 0, len(presets))
	for _, p := range presets {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// Valid reports whether the profile can host a layout at all.
func (p TabletProfile) Valid() bool {
	return p.PageWidth > 0 && p.PageHeight > 0 &&
		p.Margin >= 0 && 2*p.Margin < p.PageWidth && 2*p.Margin < p.PageHeight
}
