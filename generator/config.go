package generator

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the generator's JSON configuration, matching spec.md §6's key
// set exactly. Loaded with stdlib encoding/json — the teacher's own
// schema/meta.go already round-trips metadata through encoding/json, so
// this stays the pack's idiom rather than introducing a config-specific
// library (viper, envconfig, ...) the pack never uses.
type Config struct {
	Marker              string          `json:"marker"`
	TemplatePath        string          `json:"template_path"`
	OutDir              string          `json:"out_dir"`
	CompileCommands     string          `json:"compile_commands"`
	TargetFiles         []string        `json:"target_files"`
	SourceFile          string          `json:"source_file"`
	MetaSuffix          string          `json:"meta_suffix"`
	ExtraCompileOptions []string        `json:"extra_compile_options"`
	CustomFieldsJSON    json.RawMessage `json:"custom_fields_json"`
	SerialMeta          bool            `json:"serial_meta"`
	DryRun              bool            `json:"dry_run"`
}

// ConfigError wraps a failure loading or validating a Config.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadConfig reads and parses a generator configuration file, filling in
// the same defaults the original's generator tools apply.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Path: path, Err: err}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, &ConfigError{Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	if cfg.Marker == "" {
		cfg.Marker = "LUX::META"
	}
	if cfg.MetaSuffix == "" {
		cfg.MetaSuffix = ".meta.hpp"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	return cfg, nil
}
