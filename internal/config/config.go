/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"pagefit/internal/domain"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type ExportConfig struct {
	Paper       string `yaml:"paper"`       // "A3" | "A4" | "A5"
	Orientation string `yaml:"orientation"` // "portrait" | "landscape"
	OutDir      string `yaml:"out_dir"`
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

//go:embed config.schema.json
var schemaJSON []byte

// ErrInvalidFile reports a config file that could not be parsed or failed schema validation.
// Load still returns usable defaults alongside it.
var ErrInvalidFile = errors.New("invalid config file")

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Export:        ExportConfig{Paper: string(domain.A4), Orientation: string(domain.Portrait), OutDir: ""},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvPaper       = "PAGEFIT_PAPER"
	EnvOrientation = "PAGEFIT_ORIENTATION"
	EnvOutDir      = "PAGEFIT_OUT_DIR"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "PAGEFIT_LOG_LEVEL"
	EnvLogFormat = "PAGEFIT_LOG_FORMAT"
	EnvLogSource = "PAGEFIT_LOG_SOURCE"
	EnvLogFile   = "PAGEFIT_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "PageFit")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "PageFit")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "pagefit")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "pagefit")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A file that cannot be parsed or does not match the schema is ignored; the returned error then
// wraps ErrInvalidFile while cfg still carries defaults plus env overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	var fileErr error
	if data, err := os.ReadFile(path); err == nil {
		fileCfg, err := parse(data)
		if err != nil {
			fileErr = fmt.Errorf("%w: %s: %w", ErrInvalidFile, path, err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		fileErr = fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	return cfg, fileErr
}

// parse decodes YAML and validates it against the embedded schema.
func parse(data []byte) (AppConfig, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return AppConfig{}, err
	}
	if raw == nil {
		return AppConfig{}, nil
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewGoLoader(raw))
	if err != nil {
		return AppConfig{}, fmt.Errorf("schema validate: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return AppConfig{}, errors.New(strings.Join(msgs, "; "))
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile is Save for an explicit path.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.Export.Paper); v != "" {
		dst.Export.Paper = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(src.Export.Orientation); v != "" {
		dst.Export.Orientation = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Export.OutDir); v != "" {
		dst.Export.OutDir = v
	}
	if v := strings.TrimSpace(src.Export.Title); v != "" {
		dst.Export.Title = v
	}
	if v := strings.TrimSpace(src.Export.Author); v != "" {
		dst.Export.Author = v
	}
	// logging
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
	if v := strings.TrimSpace(os.Getenv(EnvPaper)); v != "" {
		cfg.Export.Paper = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvOrientation)); v != "" {
		cfg.Export.Orientation = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutDir)); v != "" {
		cfg.Export.OutDir = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var name string
	switch key {
	case "export.paper":
		name = EnvPaper
	case "export.orientation":
		name = EnvOrientation
	case "export.out_dir":
		name = EnvOutDir
	case "logging.level":
		name = EnvLogLevel
	case "logging.format":
		name = EnvLogFormat
	case "logging.source":
		name = EnvLogSource
	case "logging.file":
		name = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}

// PaperSettings resolves the export paper and orientation into domain values.
func (e ExportConfig) PaperSettings() (domain.PaperCode, domain.Orientation, error) {
	code, err := domain.ParsePaperCode(e.Paper)
	if err != nil {
		return "", "", err
	}
	o, err := domain.ParseOrientation(e.Orientation)
	if err != nil {
		return "", "", err
	}
	return code, o, nil
}
