package main

import (
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/rubypir"
	"github.com/zephyrtronium/rubypir/logger"
)

var (
	configPath string
	verbose    bool

	// cfg is loaded before any subcommand runs.
	cfg *rubypir.Config
)

var rootCmd = &cobra.Command{
	Use:   "rubypir",
	Short: "Compile Ruby-like scripts to PIR",
	Long: `rubypir compiles a small Ruby-like scripting language to PIR, the
intermediate representation of the Parrot virtual machine.

Commands:
  build    Compile .rb sources into .pir files
  repl     Compile snippets interactively
  version  Print version information
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "rubypir.yaml", "configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log compiler phases")

	rootCmd.AddCommand(buildCmd, replCmd, versionCmd)
}

// setup loads the configuration and starts logging.
func setup(cmd *cobra.Command, args []string) error {
	c, err := rubypir.LoadConfig(configPath)
	if err != nil {
		return err
	}
	lc, err := c.LoggerConfig()
	if err != nil {
		return err
	}
	if verbose {
		lc.Level = logger.LevelDebug
	}
	if err := logger.Init(lc); err != nil {
		return err
	}
	cfg = c
	return nil
}
