/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package calendar implements the pure date and grid computation behind the
// agenda pages: calendar units (month/week/day), grid cells, and the
// proleptic Gregorian arithmetic tying them together. It has no notion of
// page geometry; that belongs to internal/layout.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for caller-supplied invalid input.
var (
	ErrInvalidCalendarUnit  = errors.New("invalid calendar unit")
	ErrUnsupportedWeekStart = errors.New("unsupported week start")
)

// Kind discriminates the calendar unit variants.
type Kind int

const (
	KindMonth Kind = iota
	KindWeek
	KindDay
)

func (k Kind) String() string {
	switch k {
	case KindMonth:
		return "month"
	case KindWeek:
		return "week"
	case KindDay:
		return "day"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Unit identifies one logical page's temporal scope. Date is normalized at
// construction: first of the month for KindMonth, the week's start day for
// KindWeek, midnight UTC of the day for KindDay. Units are value types and
// safe to use as map keys via Key().
type Unit struct {
	Kind Kind
	Date time.Time
}

// NewMonth builds a month unit. Month must be 1..12 and year positive.
func NewMonth(year int, month time.Month) (Unit, error) {
	if year < 1 || month < time.January || month > time.December {
		return Unit{}, fmt.Errorf("%w: month %d-%02d", ErrInvalidCalendarUnit, year, month)
	}
	return Unit{Kind: KindMonth, Date: midnight(year, month, 1)}, nil
}

// NewDay builds a day unit. The date must exist in the proleptic Gregorian
// calendar; Feb 30 and friends are rejected rather than normalized.
func NewDay(year int, month time.Month, day int) (Unit, error) {
	if year < 1 || month < time.January || month > time.December || day < 1 {
		return Unit{}, fmt.Errorf("%w: day %d-%02d-%02d", ErrInvalidCalendarUnit, year, month, day)
	}
	d := midnight(year, month, day)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return Unit{}, fmt.Errorf("%w: day %d-%02d-%02d does not exist", ErrInvalidCalendarUnit, year, month, day)
	}
	return Unit{Kind: KindDay, Date: d}, nil
}

// NewWeek builds a week unit from any date inside the week; the stored date
// is rolled back to the configured week start.
func NewWeek(date time.Time, weekStart time.Weekday) (Unit, error) {
	if err := CheckWeekStart(weekStart); err != nil {
		return Unit{}, err
	}
	if date.IsZero() {
		return Unit{}, fmt.Errorf("%w: zero week date", ErrInvalidCalendarUnit)
	}
	return Unit{Kind: KindWeek, Date: StartOfWeek(date, weekStart)}, nil
}

// CheckWeekStart rejects weekday values outside Sunday..Saturday.
func CheckWeekStart(w time.Weekday) error {
	if w < time.Sunday || w > time.Saturday {
		return fmt.Errorf("%w: weekday %d", ErrUnsupportedWeekStart, int(w))
	}
	return nil
}

// StartOfWeek returns the midnight of the last weekStart on or before date.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	d := midnight(date.Year(), date.Month(), date.Day())
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

// DaysInMonth computes the month length via date normalization, so leap
// years fall out of time.Date rather than a table.
func DaysInMonth(year int, month time.Month) int {
	return midnight(year, month+1, 1).AddDate(0, 0, -1).Day()
}

// Key returns a stable identity string, usable as a map key and as the
// deduplication key for page planning.
func (u Unit) Key() string {
	switch u.Kind {
	case KindMonth:
		return u.Date.Format("m2006-01")
	case KindWeek:
		return u.Date.Format("w2006-01-02")
	default:
		return u.Date.Format("d2006-01-02")
	}
}

// Title returns the page heading for the unit, matching the generated
// document's cover text for each view.
func (u Unit) Title() string {
	switch u.Kind {
	case KindMonth:
		return u.Date.Format("January 2006")
	case KindWeek:
		end := u.Date.AddDate(0, 0, 6)
		if u.Date.Month() == end.Month() {
			return fmt.Sprintf("Week of %s – %s", u.Date.Format("January 2"), end.Format("2, 2006"))
		}
		return fmt.Sprintf("Week of %s – %s", u.Date.Format("January 2"), end.Format("January 2, 2006"))
	default:
		return u.Date.Format("Monday, January 2, 2006")
	}
}

// Contains reports whether the given date falls inside the unit's scope.
func (u Unit) Contains(date time.Time) bool {
	d := midnight(date.Year(), date.Month(), date.Day())
	switch u.Kind {
	case KindMonth:
		return d.Year() == u.Date.Year() && d.Month() == u.Date.Month()
	case KindWeek:
		diff := int(d.Sub(u.Date).Hours() / 24)
		return diff >= 0 && diff < 7
	default:
		return d.Equal(u.Date)
	}
}

// ISOWeek returns the ISO 8601 year/week of the unit's date, used for week
// labels.
func (u Unit) ISOWeek() (int, int) { return u.Date.ISOWeek() }

func midnight(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
