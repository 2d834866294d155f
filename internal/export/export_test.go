/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rmagenda/internal/device"
	"rmagenda/internal/document"
	"rmagenda/internal/engine"
)

func februaryDoc(t *testing.T) *document.Document {
	t.Helper()
	p, err := device.Lookup("reMarkable 2")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	units, err := engine.MonthPlan(2024, time.February, time.Monday)
	if err != nil {
		t.Fatalf("MonthPlan: %v", err)
	}
	doc, err := engine.Generate(engine.Request{
		Profile:   p,
		Units:     units,
		WeekStart: time.Monday,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return doc
}

func TestWritePDF(t *testing.T) {
	doc := februaryDoc(t)
	out := filepath.Join(t.TempDir(), "agenda", "feb-2024.pdf")
	if err := WritePDF(doc, out, PDFOptions{Title: "February 2024"}); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF, starts with %q", data[:8])
	}
	if len(data) < 10_000 {
		t.Fatalf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestWritePDFRejectsEmptyDocument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "never.pdf")
	if err := WritePDF(nil, out, PDFOptions{}); err == nil {
		t.Fatalf("nil document accepted")
	}
	if err := WritePDF(&document.Document{}, out, PDFOptions{}); err == nil {
		t.Fatalf("empty document accepted")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("file written for empty document")
	}
}

func TestWritePNGPreviews(t *testing.T) {
	doc := februaryDoc(t)
	dir := t.TempDir()
	if err := WritePNGPreviews(doc, dir); err != nil {
		t.Fatalf("WritePNGPreviews: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != len(doc.Pages) {
		t.Fatalf("got %d previews, want %d", len(entries), len(doc.Pages))
	}

	f, err := os.Open(filepath.Join(dir, "page-001-m2024-02.png"))
	if err != nil {
		t.Fatalf("open month preview: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1404 || b.Dy() != 1872 {
		t.Fatalf("preview is %dx%d, want 1404x1872", b.Dx(), b.Dy())
	}
	// the header band fill guarantees at least one non-white pixel
	blank := true
	for x := b.Min.X; x < b.Max.X && blank; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				blank = false
				break
			}
		}
	}
	if blank {
		t.Fatalf("month preview is entirely white")
	}
}
