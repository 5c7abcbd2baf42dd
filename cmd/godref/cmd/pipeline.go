package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lux-cxx/godref/front/fixture"
	"github.com/lux-cxx/godref/generator"
	"github.com/lux-cxx/godref/meta"
	"github.com/lux-cxx/godref/parser"
)

// newRunLogger builds a slog.Logger that stamps every record with the run's
// ULID, so stderr output from concurrent invocations can be told apart and
// sorted by start time (SPEC_FULL.md §4.6).
func newRunLogger(runID string) *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, nil)
	return slog.New(h).With("run_id", runID)
}

// sourceFiles returns the config's target_files, falling back to a single
// source_file entry — the same "one or many" shape spec.md §6's config
// schema allows.
func sourceFiles(cfg generator.Config) ([]string, error) {
	if len(cfg.TargetFiles) > 0 {
		return cfg.TargetFiles, nil
	}
	if cfg.SourceFile != "" {
		return []string{cfg.SourceFile}, nil
	}
	return nil, fmt.Errorf("config names neither target_files nor source_file")
}

// unitIdentity derives a Meta Unit's name/version from its source file,
// since generator.Config carries no explicit name/version key (SPEC_FULL.md
// §6 unchanged key set).
func unitIdentity(sourceFile, unitVersion string) (name, version string) {
	base := filepath.Base(sourceFile)
	name = strings.TrimSuffix(base, filepath.Ext(base))
	return name, unitVersion
}

// loadAdapter builds the front.Adapter for one source file. front.Adapter's
// only shipped implementation is front/fixture (a real libclang binding is
// a documented, not-yet-wired extension point — see front/adapter.go):
// sourceFile is read as a fixture translation-unit JSON description rather
// than real C++ source.
func loadAdapter(sourceFile string) (*fixture.Adapter, error) {
	data, err := os.ReadFile(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sourceFile, err)
	}
	root, err := fixture.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceFile, err)
	}
	return &fixture.Adapter{Root: root}, nil
}

// parseOne runs the Parser Core over one source file, emitting diagnostics
// to logger and returning the resulting *meta.Unit.
func parseOne(cfg generator.Config, sourceFile, unitVersion, runID string, logger *slog.Logger) (*meta.Unit, error) {
	adapter, err := loadAdapter(sourceFile)
	if err != nil {
		return nil, err
	}

	name, version := unitIdentity(sourceFile, unitVersion)
	opts := parser.Options{
		Name:                name,
		Version:             version,
		MarkerSymbol:        cfg.Marker,
		Commands:            cfg.ExtraCompileOptions,
		InternCacheSize:     0,
		OnDiagnostic: func(d parser.Diagnostic) {
			logger.Warn(d.Message, "file", d.File, "line", d.Line)
		},
	}

	status, unit, err := parser.Parse(adapter, sourceFile, opts)
	if err != nil {
		logger.Error(err.Error(), "file", sourceFile, "status", int(status))
		return nil, err
	}
	return unit, nil
}

// writeMetaJSON writes unit's serialized Meta Unit JSON next to outputPath
// when cfg.SerialMeta is set, per spec.md §6.
func writeMetaJSON(cfg generator.Config, unit *meta.Unit, outputPath string) error {
	if !cfg.SerialMeta {
		return nil
	}
	data, err := unit.Marshal()
	if err != nil {
		return fmt.Errorf("marshal meta unit: %w", err)
	}
	metaPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".meta.json"
	if cfg.DryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(metaPath), 0o755); err != nil {
		return fmt.Errorf("mkdir for %s: %w", metaPath, err)
	}
	return os.WriteFile(metaPath, data, 0o644)
}
