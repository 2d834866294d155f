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
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables act as read-only overrides at
// runtime. The weather API key never touches the YAML file; it lives in the
// OS keychain.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type DeviceConfig struct {
	Name  string `yaml:"name"`  // user-visible device name
	Model string `yaml:"model"` // tablet preset name, e.g. "reMarkable 2"
}

type DisplayConfig struct {
	Use24hTime  bool   `yaml:"use_24h_time"`
	MondayFirst bool   `yaml:"monday_first"`
	Orientation string `yaml:"orientation"` // "portrait" | "landscape"
	DayStart    int    `yaml:"day_start"`   // first hour row in day/week views
	DayEnd      int    `yaml:"day_end"`     // last hour row (inclusive)
}

type WeatherConfig struct {
	Location string `yaml:"location"`
	// API key is not stored on disk; it lives in the OS keychain.
}

type CalendarSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	Device        DeviceConfig     `yaml:"device"`
	Display       DisplayConfig    `yaml:"display"`
	Weather       WeatherConfig    `yaml:"weather"`
	Calendars     []CalendarSource `yaml:"calendars"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// Defaults returns the application defaults. They mirror a stock
// reMarkable 2 setup: portrait pages, Sunday-start weeks, waking hours
// 08:00 through 20:00.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Device:        DeviceConfig{Name: "My reMarkable", Model: "reMarkable 2"},
		Display:       DisplayConfig{Use24hTime: false, MondayFirst: false, Orientation: "portrait", DayStart: 8, DayEnd: 20},
		Weather:       WeatherConfig{},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvDeviceModel = "RMA_DEVICE_MODEL"
	EnvOrientation = "RMA_ORIENTATION"
	EnvMondayFirst = "RMA_MONDAY_FIRST"
	EnvUse24hTime  = "RMA_USE_24H_TIME"
	EnvDayStart    = "RMA_DAY_START"
	EnvDayEnd      = "RMA_DAY_END"
	EnvLogLevel    = "RMA_LOG_LEVEL"
	EnvLogFormat   = "RMA_LOG_FORMAT"
	EnvLogSource   = "RMA_LOG_SOURCE"
	EnvLogFile     = "RMA_LOG_FILE"
)

// Service/keys for the OS keyring.
const (
	keyringService    = "rmagenda"
	keyringWeatherKey = "weather_api_key"
)

// SecretStore abstracts the OS keyring so tests can stub it.
type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyring.Get(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyring.Set(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyring.Delete(service, key) }

var secrets SecretStore = osKeyring{}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "rmagenda")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "rmagenda")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "rmagenda")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides. The weather API key is loaded from the keyring and
// returned separately so it never rides along in the struct.
func Load() (AppConfig, string, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, "", err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	apiKey, _ := secrets.Get(keyringService, keyringWeatherKey)
	return cfg, apiKey, nil
}

// Save writes the user config YAML and persists the weather API key into the
// OS keyring (if non-empty).
func Save(cfg AppConfig, weatherAPIKey string) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if weatherAPIKey != "" {
		if err := secrets.Set(keyringService, keyringWeatherKey, weatherAPIKey); err != nil {
			return err
		}
	}
	return nil
}

func mergeInto(dst, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Device.Name != "" {
		dst.Device.Name = src.Device.Name
	}
	if src.Device.Model != "" {
		dst.Device.Model = src.Device.Model
	}
	// booleans: copy directly from file so user preferences persist
	dst.Display.Use24hTime = src.Display.Use24hTime
	dst.Display.MondayFirst = src.Display.MondayFirst
	if src.Display.Orientation != "" {
		dst.Display.Orientation = strings.ToLower(strings.TrimSpace(src.Display.Orientation))
	}
	if src.Display.DayStart != 0 || src.Display.DayEnd != 0 {
		dst.Display.DayStart = src.Display.DayStart
		dst.Display.DayEnd = src.Display.DayEnd
	}
	if src.Weather.Location != "" {
		dst.Weather.Location = src.Weather.Location
	}
	if len(src.Calendars) > 0 {
		dst.Calendars = append([]CalendarSource(nil), src.Calendars...)
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDeviceModel)); v != "" {
		cfg.Device.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOrientation)); v != "" {
		cfg.Display.Orientation = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvMondayFirst)); v != "" {
		cfg.Display.MondayFirst = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvUse24hTime)); v != "" {
		cfg.Display.Use24hTime = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvDayStart)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Display.DayStart = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDayEnd)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Display.DayEnd = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// AddCalendar appends a calendar source, refusing duplicates by URL.
// A name is generated when none is given.
func (c *AppConfig) AddCalendar(url, name string) bool {
	if strings.TrimSpace(url) == "" {
		return false
	}
	for _, cal := range c.Calendars {
		if cal.URL == url {
			return false
		}
	}
	if name == "" {
		name = "Calendar " + strconv.Itoa(len(c.Calendars)+1)
	}
	c.Calendars = append(c.Calendars, CalendarSource{Name: name, URL: url})
	return true
}

// RemoveCalendar removes the calendar source with the given URL.
func (c *AppConfig) RemoveCalendar(url string) bool {
	for i, cal := range c.Calendars {
		if cal.URL == url {
			c.Calendars = append(c.Calendars[:i], c.Calendars[i+1:]...)
			return true
		}
	}
	return false
}
