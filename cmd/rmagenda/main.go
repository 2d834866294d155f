/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"rmagenda/internal/config"
	"rmagenda/internal/crash"
	"rmagenda/internal/device"
	"rmagenda/internal/engine"
	"rmagenda/internal/export"
	"rmagenda/internal/history"
	applog "rmagenda/internal/log"
	"rmagenda/internal/request"
	"rmagenda/internal/version"
)

func usage() {
	fmt.Println("rmagenda — calendar PDF generator for reMarkable tablets")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  rmagenda version|-v|--version               Show version")
	fmt.Println("  rmagenda generate <request.json> [flags]    Generate a PDF from a request file")
	fmt.Println("  rmagenda month <year> <month> [flags]       Generate one month using config defaults")
	fmt.Println("  rmagenda devices                            List supported tablet models")
	fmt.Println("  rmagenda history [-n <count>]               Show recent generations")
	fmt.Println()
	fmt.Println("Generate flags:")
	fmt.Println("  -o <path>          Output PDF path (default agenda.pdf)")
	fmt.Println("  -previews <dir>    Also write per-page PNG previews to <dir>")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover(reportDir())

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) <= 1 {
		usage()
		return
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "generate":
		runGenerate(l, args[2:])
	case "month":
		runMonth(l, args[2:])
	case "devices":
		for _, m := range device.Models() {
			p, _ := device.Lookup(m)
			fmt.Printf("%-14s %4.0fx%4.0f px, %d dpi\n", m, p.PageWidth, p.PageHeight, p.DPI)
		}
	case "history":
		runHistory(l, args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func runGenerate(l *slog.Logger, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("o", "agenda.pdf", "output PDF path")
	previews := fs.String("previews", "", "directory for PNG previews")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Println("generate requires <request.json>")
		usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fail(l, "read request", err)
	}
	gr, err := request.Parse(data)
	if err != nil {
		fail(l, "parse request", err)
	}
	req, err := gr.ToEngine()
	if err != nil {
		fail(l, "resolve request", err)
	}
	generateAndWrite(l, req, *out, *previews)
}

func runMonth(l *slog.Logger, args []string) {
	fs := flag.NewFlagSet("month", flag.ExitOnError)
	out := fs.String("o", "agenda.pdf", "output PDF path")
	previews := fs.String("previews", "", "directory for PNG previews")
	_ = fs.Parse(args)
	if fs.NArg() < 2 {
		fmt.Println("month requires <year> and <month>")
		usage()
		os.Exit(2)
	}
	year, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		fail(l, "parse year", err)
	}
	month, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fail(l, "parse month", err)
	}

	cfg, _, err := config.Load()
	if err != nil {
		fail(l, "load config", err)
	}
	req, err := requestFromConfig(cfg, year, month)
	if err != nil {
		fail(l, "resolve config", err)
	}
	generateAndWrite(l, req, *out, *previews)
}

// requestFromConfig builds a one-month engine request from user config
// defaults.
func requestFromConfig(cfg config.AppConfig, year, month int) (engine.Request, error) {
	gr := request.GenerationRequest{
		Device:      cfg.Device.Model,
		Orientation: cfg.Display.Orientation,
		MondayFirst: cfg.Display.MondayFirst,
		Use24hTime:  cfg.Display.Use24hTime,
		DayStart:    &cfg.Display.DayStart,
		DayEnd:      &cfg.Display.DayEnd,
		Months:      []request.MonthRef{{Year: year, Month: month}},
	}
	return gr.ToEngine()
}

func generateAndWrite(l *slog.Logger, req engine.Request, out, previews string) {
	doc, err := engine.Generate(req)
	if err != nil {
		fail(l, "generate", err)
	}
	if err := export.WritePDF(doc, out, export.PDFOptions{}); err != nil {
		fail(l, "write pdf", err)
	}
	fmt.Printf("Wrote %s (%d pages, %d links)\n", out, len(doc.Pages), len(doc.Links))

	if previews != "" {
		if err := export.WritePNGPreviews(doc, previews); err != nil {
			fail(l, "write previews", err)
		}
		fmt.Printf("Wrote %d previews to %s\n", len(doc.Pages), previews)
	}

	recordHistory(l, out, req.Profile.Name, len(doc.Pages), len(doc.Links))
}

// recordHistory logs the generation; history failures never fail the run.
func recordHistory(l *slog.Logger, out, dev string, pages, links int) {
	store, err := history.Open(dataDir())
	if err != nil {
		l.Warn("history unavailable", slog.Any("err", err))
		return
	}
	defer store.Close()

	abs, err := filepath.Abs(out)
	if err != nil {
		abs = out
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.Record(ctx, history.Entry{
		OutputPath: abs,
		Device:     dev,
		Pages:      pages,
		Links:      links,
	}); err != nil {
		l.Warn("history record failed", slog.Any("err", err))
	}
}

func runHistory(l *slog.Logger, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 20, "number of entries")
	_ = fs.Parse(args)

	store, err := history.Open(dataDir())
	if err != nil {
		fail(l, "open history", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := store.Recent(ctx, *n)
	if err != nil {
		fail(l, "list history", err)
	}
	if len(entries) == 0 {
		fmt.Println("No generations recorded yet.")
		return
	}
	for _, e := range entries {
		fmt.Printf("%s  %-14s %3d pages %4d links  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Device, e.Pages, e.Links, e.OutputPath)
	}
}

// dataDir is where the history database and crash reports live, next to
// the user config file.
func dataDir() string {
	path, err := config.ConfigPath()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Dir(path)
}

func reportDir() string {
	return filepath.Join(dataDir(), "crash")
}

func fail(l *slog.Logger, what string, err error) {
	l.Error(what+" failed", slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}
