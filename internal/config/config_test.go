/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"testing"
)

// memStore stubs the OS keyring for tests.
type memStore struct{ m map[string]string }

func (s *memStore) Get(service, key string) (string, error) {
	v, ok := s.m[service+"/"+key]
	if !ok {
		return "", errors.New("not found")
	}
	return v, nil
}
func (s *memStore) Set(service, key, value string) error {
	s.m[service+"/"+key] = value
	return nil
}
func (s *memStore) Delete(service, key string) error {
	delete(s.m, service+"/"+key)
	return nil
}

func withMemStore(t *testing.T) *memStore {
	t.Helper()
	old := secrets
	ms := &memStore{m: map[string]string{}}
	secrets = ms
	t.Cleanup(func() { secrets = old })
	return ms
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withMemStore(t)
	t.Setenv("HOME", t.TempDir())

	cfg := Defaults()
	cfg.Device.Model = "reMarkable 1"
	cfg.Display.MondayFirst = true
	cfg.Display.Orientation = "landscape"
	cfg.Weather.Location = "Oldenburg"
	cfg.AddCalendar("https://example.com/cal.ics", "Work")

	if err := Save(cfg, "secret-key"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, apiKey, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Device.Model != "reMarkable 1" {
		t.Fatalf("device model not persisted: %+v", got.Device)
	}
	if !got.Display.MondayFirst || got.Display.Orientation != "landscape" {
		t.Fatalf("display settings not persisted: %+v", got.Display)
	}
	if len(got.Calendars) != 1 || got.Calendars[0].Name != "Work" {
		t.Fatalf("calendars not persisted: %+v", got.Calendars)
	}
	if apiKey != "secret-key" {
		t.Fatalf("api key not stored in keyring, got %q", apiKey)
	}
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	withMemStore(t)
	t.Setenv("HOME", t.TempDir())

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := Defaults()
	if cfg.Device.Model != def.Device.Model || cfg.Display.DayStart != 8 || cfg.Display.DayEnd != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	withMemStore(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvDeviceModel, "Paper Pro")
	t.Setenv(EnvOrientation, "LANDSCAPE")
	t.Setenv(EnvMondayFirst, "yes")
	t.Setenv(EnvDayStart, "6")

	cfg, _, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Device.Model != "Paper Pro" {
		t.Fatalf("env device override missing: %+v", cfg.Device)
	}
	if cfg.Display.Orientation != "landscape" || !cfg.Display.MondayFirst || cfg.Display.DayStart != 6 {
		t.Fatalf("env display overrides missing: %+v", cfg.Display)
	}
}

func TestAddRemoveCalendar(t *testing.T) {
	cfg := Defaults()
	if !cfg.AddCalendar("https://a.example/cal.ics", "") {
		t.Fatalf("add failed")
	}
	if cfg.AddCalendar("https://a.example/cal.ics", "dup") {
		t.Fatalf("duplicate URL accepted")
	}
	if cfg.Calendars[0].Name != "Calendar 1" {
		t.Fatalf("generated name wrong: %+v", cfg.Calendars)
	}
	if !cfg.RemoveCalendar("https://a.example/cal.ics") {
		t.Fatalf("remove failed")
	}
	if cfg.RemoveCalendar("https://missing.example") {
		t.Fatalf("removed nonexistent calendar")
	}
}
