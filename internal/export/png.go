/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"rmagenda/internal/document"
	"rmagenda/internal/render"
)

// WritePNGPreviews writes each document page as a PNG at native page
// resolution under outDir. Files are named page-<n>-<unit key>.png, so a
// directory listing reads in document order.
//
// Previews exist for quick visual checks on a desktop; labels use the
// fixed 7x13 bitmap face and ignore requested text sizes. Sizing
// fidelity belongs to the PDF writer.
func WritePNGPreviews(doc *document.Document, outDir string) error {
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("write png previews: empty document")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	for i, pg := range doc.Pages {
		size := pg.Regions.Page
		img := image.NewRGBA(image.Rect(0, 0, int(math.Round(size.W)), int(math.Round(size.H))))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)
		rasterOps(img, pg.Ops())

		name := filepath.Join(outDir, fmt.Sprintf("page-%03d-%s.png", i+1, pg.Unit.Key()))
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("create png: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode png: %w", err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close png: %w", err)
		}
	}
	return nil
}

func rasterOps(img *image.RGBA, ops []render.Op) {
	for _, op := range ops {
		col := color.RGBA{op.Gray, op.Gray, op.Gray, 255}
		switch op.Kind {
		case render.OpRect:
			x0, y0 := px(op.Rect.X), px(op.Rect.Y)
			x1, y1 := px(op.Rect.MaxX())-1, px(op.Rect.MaxY())-1
			if op.Fill {
				fillRect(img, x0, y0, x1, y1, col)
				continue
			}
			strokeRect(img, x0, y0, x1, y1, col)
		case render.OpLine:
			// The renderer only emits axis-aligned rules.
			x0, y0 := px(op.Rect.X), px(op.Rect.Y)
			x1, y1 := px(op.X2), px(op.Y2)
			if y0 == y1 {
				fillRect(img, x0, y0, x1, y0, col)
			} else {
				fillRect(img, x0, y0, x0, y1, col)
			}
		case render.OpText:
			drawLabel(img, op, col)
		}
	}
}

func drawLabel(img *image.RGBA, op render.Op, col color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	x := op.Rect.X
	switch op.Align {
	case render.AlignCenter:
		x = op.Rect.X + (op.Rect.W-f26(d.MeasureString(op.Text)))/2
	case render.AlignRight:
		x = op.Rect.MaxX() - f26(d.MeasureString(op.Text))
	}
	d.Dot = fixed.P(px(x), px(op.Rect.Y+op.Size))
	d.DrawString(op.Text)
}

func px(v float64) int { return int(math.Round(v)) }

func f26(v fixed.Int26_6) float64 { return float64(v) / 64 }

// strokeRect draws a 1px axis-aligned rectangle border inclusive of
// endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
