package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lux-cxx/godref/generator"
)

var generateCmd = &cobra.Command{
	Use:   "generate <config.json>",
	Short: "Run the full parse -> depgraph -> generate pipeline",
	Long: `Generate runs the Parser Core over every configured source, orders each
resulting Meta Unit's types for forward-declaration-safe emission, and
renders the static and dynamic reflection artifacts under out_dir.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	unitVersion, _ := cmd.Flags().GetString("unit-version")

	cfg, err := generator.LoadConfig(args[0])
	if err != nil {
		return err
	}
	files, err := sourceFiles(cfg)
	if err != nil {
		return err
	}

	runID, err := generator.NewRunID()
	if err != nil {
		return err
	}
	logger := newRunLogger(runID)
	gen := generator.New(cfg)

	failed := 0
	for _, f := range files {
		unit, err := parseOne(cfg, f, unitVersion, runID, logger)
		if err != nil {
			failed++
			continue
		}

		includeRoots := []string{filepath.Dir(f)}
		outputPath, err := generator.ResolveOutputPath(includeRoots, f, cfg.OutDir, cfg.MetaSuffix)
		if err != nil {
			logger.Error(err.Error(), "file", f)
			failed++
			continue
		}

		artifacts, errs := gen.Render(unit, outputPath, runID)
		for _, e := range errs {
			logger.Error(e.Error(), "file", f)
		}
		if len(errs) > 0 {
			failed++
			continue
		}

		written, err := gen.Write(artifacts)
		if err != nil {
			logger.Error(err.Error(), "file", f)
			failed++
			continue
		}
		if err := writeMetaJSON(cfg, unit, outputPath); err != nil {
			logger.Error(err.Error(), "file", f)
			failed++
			continue
		}

		manifest, err := gen.Manifest(runID, unit.Name, written)
		if err != nil {
			logger.Error(err.Error(), "file", f)
			failed++
			continue
		}
		if !cfg.DryRun {
			manifestPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".manifest.json"
			if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
				logger.Error(err.Error(), "file", f)
				failed++
				continue
			}
		}

		for _, w := range written {
			fmt.Println(w)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d source(s) failed to generate", failed, len(files))
	}
	return nil
}
