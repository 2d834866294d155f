/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package device

import (
	"strings"
	"testing"
)

func TestLookupKnownModels(t *testing.T) {
	for _, name := range Models() {
		p, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q: %v", name, err)
		}
		if !p.Valid() {
			t.Fatalf("invalid preset %q: %+v", name, p)
		}
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	p, err := Lookup("  REMARKABLE 2 ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p.PageWidth != 1404 || p.PageHeight != 1872 || p.DPI != 226 {
		t.Fatalf("unexpected geometry: %+v", p)
	}
	if p.Color {
		t.Fatalf("reMarkable 2 must be monochrome")
	}
}

func TestLookupUnknownListsModels(t *testing.T) {
	_, err := Lookup("Kindle")
	if err == nil {
		t.Fatalf("expected error for unknown model")
	}
	if !strings.Contains(err.Error(), "reMarkable 2") {
		t.Fatalf("error should list known models: %v", err)
	}
}

func TestValidRejectsOversizedMargin(t *testing.T) {
	p := TabletProfile{PageWidth: 100, PageHeight: 100, Margin: 50}
	if p.Valid() {
		t.Fatalf("margin consuming the whole page must be invalid")
	}
}
