package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lux-cxx/godref/generator"
)

var parseCmd = &cobra.Command{
	Use:   "parse <config.json>",
	Short: "Run the Parser Core only",
	Long: `Parse reads a generator config file, runs the Parser Core over every
configured source, and reports the result. With serial_meta set in the
config, each source's Meta Unit JSON is also printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
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

	failed := 0
	for _, f := range files {
		unit, err := parseOne(cfg, f, unitVersion, runID, logger)
		if err != nil {
			failed++
			continue
		}
		fmt.Printf("%s: %d declaration(s), %d type(s)\n", f, len(unit.Decls()), len(unit.Types()))

		if cfg.SerialMeta {
			data, err := unit.Marshal()
			if err != nil {
				return fmt.Errorf("marshal %s: %w", f, err)
			}
			fmt.Println(string(data))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d source(s) failed to parse", failed, len(files))
	}
	return nil
}
