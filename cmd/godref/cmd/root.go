package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "godref",
	Short: "Static C++ reflection metadata generator",
	Long: `godref parses C++ translation units annotated with LUX::META markers
and generates static and dynamic reflection metadata: a Meta Unit JSON
description of every marked declaration, plus C++ headers exposing that
metadata to a runtime registry.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "accepted but not read; diagnostic output is the same with or without it")
	rootCmd.PersistentFlags().String("unit-version", "dev", "version string stamped onto the resulting Meta Unit")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
