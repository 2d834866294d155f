/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

// Axis-aligned rectangle math in page coordinates (origin top-left, units
// are device pixels). Regions handed out by the mapper are plain values;
// nothing mutates them after creation.

type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }
func (r Rect) Area() float64 { return r.W * r.H }

// Inset returns a rectangle shrunk by d on all sides (negative grows).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// ContainsRect reports whether o lies fully inside r, with eps tolerance
// per boundary for rounding slack.
func (r Rect) ContainsRect(o Rect, eps float64) bool {
	return o.X >= r.X-eps && o.Y >= r.Y-eps &&
		o.MaxX() <= r.MaxX()+eps && o.MaxY() <= r.MaxY()+eps
}

// Overlaps reports whether the interiors of r and o intersect. Shared
// edges do not count as overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// splitSizes divides total into n spans of whole pixels. Every span gets the
// floored share; the final span absorbs the remainder so the spans tile the
// total exactly with no gap.
func splitSizes(total float64, n int) []float64 {
	sizes := make([]float64, n)
	base := float64(int(total / float64(n)))
	for i := 0; i < n-1; i++ {
		sizes[i] = base
	}
	sizes[n-1] = total - base*float64(n-1)
	return sizes
}

// gridRects tiles area into rows×cols rects in row-major order.
func gridRects(area Rect, rows, cols int) []Rect {
	colW := splitSizes(area.W, cols)
	rowH := splitSizes(area.H, rows)
	out := make([]Rect, 0, rows*cols)
	y := area.Y
	for r := 0; r < rows; r++ {
		x := area.X
		for c := 0; c < cols; c++ {
			out = append(out, Rect{X: x, Y: y, W: colW[c], H: rowH[r]})
			x += colW[c]
		}
		y += rowH[r]
	}
	return out
}
