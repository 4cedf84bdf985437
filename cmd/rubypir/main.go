// Command rubypir compiles Ruby-like scripts to PIR.
//
// Usage:
//
//	rubypir build [-o dir] [-e encoding] file.rb...
//	rubypir repl
//	rubypir version
//
// Settings are read from rubypir.yaml in the working directory, or from the
// file named by --config. Flags override the file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
