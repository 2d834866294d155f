/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package request decodes generation requests from JSON. Requests are
// validated against an embedded JSON Schema before decoding, so malformed
// input is rejected with field-level messages instead of surfacing later
// as half-built pages.
package request

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"rmagenda/internal/calendar"
	"rmagenda/internal/device"
	"rmagenda/internal/engine"
	"rmagenda/internal/layout"
	"rmagenda/internal/render"
)

//go:embed schema.json
var schemaJSON []byte

// GenerationRequest is the wire form of one generation run. Months is a
// shorthand that expands into the standard month/weeks/days page plan;
// Units lists individual pages explicitly. At least one must be present.
type GenerationRequest struct {
	Device      string                `json:"device"`
	Orientation string                `json:"orientation,omitempty"`
	MondayFirst bool                  `json:"mondayFirst,omitempty"`
	Use24hTime  bool                  `json:"use24hTime,omitempty"`
	DayStart    *int                  `json:"dayStart,omitempty"`
	DayEnd      *int                  `json:"dayEnd,omitempty"`
	Months      []MonthRef            `json:"months,omitempty"`
	Units       []UnitRef             `json:"units,omitempty"`
	Events      map[string][]EventRef `json:"events,omitempty"`
	Weather     map[string]WeatherRef `json:"weather,omitempty"`
	Tasks       []string              `json:"tasks,omitempty"`
}

type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// UnitRef names one page. Day is the day of month for day pages and the
// week's reference date for week pages; month pages ignore it.
type UnitRef struct {
	Kind  string `json:"kind"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Day   int    `json:"day,omitempty"`
}

// EventRef carries a pre-gathered calendar entry. Start is a wall clock
// "HH:MM"; the date comes from the surrounding map key.
type EventRef struct {
	Start    string `json:"start"`
	Summary  string `json:"summary"`
	Location string `json:"location,omitempty"`
}

type WeatherRef struct {
	Condition string  `json:"condition"`
	TempC     float64 `json:"tempC,omitempty"`
}

// Parse validates raw JSON against the request schema and decodes it.
func Parse(data []byte) (*GenerationRequest, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate request: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
	}
	var gr GenerationRequest
	if err := json.Unmarshal(data, &gr); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &gr, nil
}

// ToEngine resolves the wire form into an engine request: the device name
// becomes a tablet profile, month shorthands expand into full page plans,
// and per-day inputs convert to their engine shapes.
func (gr *GenerationRequest) ToEngine() (engine.Request, error) {
	var req engine.Request

	profile, err := device.Lookup(gr.Device)
	if err != nil {
		return req, err
	}
	orientation, err := layout.ParseOrientation(gr.Orientation)
	if err != nil {
		return req, err
	}

	weekStart := time.Sunday
	if gr.MondayFirst {
		weekStart = time.Monday
	}

	var hours layout.HourRange
	if gr.DayStart != nil || gr.DayEnd != nil {
		hours = layout.DefaultHours
		if gr.DayStart != nil {
			hours.First = *gr.DayStart
		}
		if gr.DayEnd != nil {
			hours.Last = *gr.DayEnd
		}
		if !hours.Valid() {
			return req, fmt.Errorf("%w: day hours %d..%d", layout.ErrBadLayoutInput, hours.First, hours.Last)
		}
	}

	var units []calendar.Unit
	for _, m := range gr.Months {
		plan, err := engine.MonthPlan(m.Year, time.Month(m.Month), weekStart)
		if err != nil {
			return req, err
		}
		units = append(units, plan...)
	}
	for _, u := range gr.Units {
		unit, err := resolveUnit(u, weekStart)
		if err != nil {
			return req, err
		}
		units = append(units, unit)
	}

	events, err := resolveEvents(gr.Events)
	if err != nil {
		return req, err
	}
	var weather map[string]render.Weather
	if len(gr.Weather) > 0 {
		weather = make(map[string]render.Weather, len(gr.Weather))
		for key, w := range gr.Weather {
			weather[key] = render.Weather{Condition: w.Condition, TempC: w.TempC}
		}
	}

	return engine.Request{
		Profile:     profile,
		Units:       units,
		WeekStart:   weekStart,
		Orientation: orientation,
		Hours:       hours,
		Use24h:      gr.Use24hTime,
		Events:      events,
		Weather:     weather,
		Tasks:       gr.Tasks,
	}, nil
}

func resolveUnit(u UnitRef, weekStart time.Weekday) (calendar.Unit, error) {
	switch u.Kind {
	case "month":
		return calendar.NewMonth(u.Year, time.Month(u.Month))
	case "week":
		if u.Day == 0 {
			return calendar.Unit{}, fmt.Errorf("week unit %d-%02d: missing day", u.Year, u.Month)
		}
		ref, err := calendar.NewDay(u.Year, time.Month(u.Month), u.Day)
		if err != nil {
			return calendar.Unit{}, err
		}
		return calendar.NewWeek(ref.Date, weekStart)
	case "day":
		if u.Day == 0 {
			return calendar.Unit{}, fmt.Errorf("day unit %d-%02d: missing day", u.Year, u.Month)
		}
		return calendar.NewDay(u.Year, time.Month(u.Month), u.Day)
	default:
		return calendar.Unit{}, fmt.Errorf("unknown unit kind %q", u.Kind)
	}
}

func resolveEvents(in map[string][]EventRef) (map[string][]render.Event, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string][]render.Event, len(in))
	for key, refs := range in {
		for _, r := range refs {
			start, err := time.Parse(render.DateKey+" 15:04", key+" "+r.Start)
			if err != nil {
				return nil, fmt.Errorf("event on %s: bad start %q", key, r.Start)
			}
			out[key] = append(out[key], render.Event{
				Start:    start,
				Summary:  r.Summary,
				Location: r.Location,
			})
		}
	}
	return out, nil
}
