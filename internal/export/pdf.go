/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes assembled documents to output files. The PDF
// writer is the real product; the PNG writer produces per-page previews
// from the same recorded operations.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"rmagenda/internal/document"
	"rmagenda/internal/render"
)

// PDFOptions controls PDF metadata. Geometry is fixed by the document:
// one PDF unit equals one device pixel, so pages land on the tablet at
// native resolution with no scaling pass.
//
// Built-in Helvetica keeps all text vector without font embedding.
type PDFOptions struct {
	Title  string
	Author string
}

// WritePDF writes the document as a multi-page PDF at outPath, creating
// parent directories as needed. Every page link becomes a PDF internal
// link annotation, which is what makes the file tappable on the tablet.
func WritePDF(doc *document.Document, outPath string, opt PDFOptions) error {
	if doc == nil || len(doc.Pages) == 0 {
		return fmt.Errorf("write pdf: empty document")
	}

	title := opt.Title
	if title == "" {
		title = doc.Pages[0].Unit.Title()
	}
	author := opt.Author
	if author == "" {
		author = "rmagenda"
	}

	first := doc.Pages[0].Regions.Page
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: first.W, Ht: first.H},
		OrientationStr: "",
	})
	pdf.SetTitle(title, true)
	pdf.SetAuthor(author, true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", 12)

	// One anchor per distinct target page. gofpdf cannot revisit a page,
	// so anchors are created up front, attached to source regions while
	// each page is current, and resolved to page numbers at the end.
	anchors := make(map[int]int, len(doc.Links))
	for _, l := range doc.Links {
		if _, ok := anchors[l.TargetPage]; !ok {
			anchors[l.TargetPage] = pdf.AddLink()
		}
	}

	// Built-in fonts are cp1252; degree signs and umlauts in labels need
	// the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, pg := range doc.Pages {
		size := pg.Regions.Page
		pdf.AddPageFormat("", gofpdf.SizeType{Wd: size.W, Ht: size.H})
		replayOps(pdf, tr, pg.Ops())
		for _, l := range doc.Links {
			if l.SourcePage != i {
				continue
			}
			r := l.Region
			pdf.Link(r.X, r.Y, r.W, r.H, anchors[l.TargetPage])
		}
	}
	for target, id := range anchors {
		pdf.SetLink(id, 0, target+1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// replayOps plays one page's recorded operations into the current PDF
// page. Text baselines sit one text height below the anchor top, the
// same rule the renderer assumed when it sized its anchor boxes.
func replayOps(pdf *gofpdf.Fpdf, tr func(string) string, ops []render.Op) {
	for _, op := range ops {
		g := int(op.Gray)
		switch op.Kind {
		case render.OpRect:
			if op.Fill {
				pdf.SetFillColor(g, g, g)
				pdf.Rect(op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H, "F")
				continue
			}
			pdf.SetDrawColor(g, g, g)
			pdf.SetLineWidth(op.LineWidth)
			pdf.Rect(op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H, "D")
		case render.OpLine:
			pdf.SetDrawColor(g, g, g)
			pdf.SetLineWidth(op.LineWidth)
			pdf.Line(op.Rect.X, op.Rect.Y, op.X2, op.Y2)
		case render.OpText:
			style := ""
			if op.Bold {
				style = "B"
			}
			pdf.SetTextColor(g, g, g)
			pdf.SetFont("Helvetica", style, op.Size)
			text := tr(op.Text)
			x := op.Rect.X
			switch op.Align {
			case render.AlignCenter:
				x = op.Rect.X + (op.Rect.W-pdf.GetStringWidth(text))/2
			case render.AlignRight:
				x = op.Rect.MaxX() - pdf.GetStringWidth(text)
			}
			pdf.Text(x, op.Rect.Y+op.Size, text)
		}
	}
}
