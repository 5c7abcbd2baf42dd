// Command godref is the reflection toolchain's CLI entry point: it drives
// the Parser Core and Generator Core over a JSON config file.
package main

import (
	"os"

	"github.com/lux-cxx/godref/cmd/godref/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
