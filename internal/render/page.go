/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render draws calendar pages as recorded vector operations.
// A Page is append-only while Render runs and immutable afterwards; the
// export writers replay the same op list into PDF and PNG output so both
// targets stay pixel-consistent.
package render

import (
	"rmagenda/internal/calendar"
	"rmagenda/internal/layout"
)

// OpKind tags a drawing operation.
type OpKind int

const (
	OpRect OpKind = iota // outlined or filled rectangle
	OpLine               // straight line segment
	OpText               // single text run
)

// Align positions an OpText run inside its anchor rect.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one drawing operation in page coordinates (device pixels,
// origin top-left). Gray is 0 (black) to 255 (white); e-paper output is
// grayscale throughout.
type Op struct {
	Kind      OpKind
	Rect      layout.Rect // rect geometry, or the text anchor box
	X2, Y2    float64     // line end point (start is Rect.X/Rect.Y)
	Text      string
	Size      float64 // text height in pixels
	Align     Align
	Bold      bool
	Gray      uint8
	Fill      bool    // rect only: fill with Gray instead of stroking
	LineWidth float64 // stroke width for rects and lines
}

// Page is the rendered form of one calendar unit: its recorded draw ops
// plus the metadata the link builder and assembler need. Pages are built
// once by Render and never mutated; re-rendering produces a new Page.
type Page struct {
	Unit    calendar.Unit
	Grid    []calendar.GridCell
	Regions *layout.PageRegions

	ops []Op
}

// Ops returns the recorded operations in draw order. Callers must treat
// the slice as read-only.
func (p *Page) Ops() []Op { return p.ops }

func (p *Page) push(ops ...Op) { p.ops = append(p.ops, ops...) }

// Drawing style constants, sized for the reMarkable page class
// (roughly 1400×1900 px). Everything scales off the page height so other
// profiles stay proportionate.
const (
	grayBlack   = 0
	grayDim     = 150 // de-emphasized filler cells
	grayLight   = 230 // header band fill
	hairline    = 1.5
	heavyStroke = 3
)

func rectOp(r layout.Rect, gray uint8, width float64) Op {
	return Op{Kind: OpRect, Rect: r, Gray: gray, LineWidth: width}
}

func fillOp(r layout.Rect, gray uint8) Op {
	return Op{Kind: OpRect, Rect: r, Gray: gray, Fill: true}
}

func lineOp(x1, y1, x2, y2 float64, gray uint8, width float64) Op {
	return Op{Kind: OpLine, Rect: layout.R(x1, y1, 0, 0), X2: x2, Y2: y2, Gray: gray, LineWidth: width}
}

func textOp(anchor layout.Rect, text string, size float64, align Align, gray uint8, bold bool) Op {
	return Op{Kind: OpText, Rect: anchor, Text: text, Size: size, Align: align, Gray: gray, Bold: bold}
}
