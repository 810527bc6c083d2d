package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cosine-software/tdl/internal/config"
)

var globalConfig *config.Config

var argsRoot struct {
	noColor bool
}

var cmdRoot = &cobra.Command{
	Use:   "tdlc",
	Short: "analyze and tokenize Tactical Data Link configuration sources",
	Long:  `tdlc lexes, parses, and validates TDL configuration sources and reports diagnostics.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		color.NoColor = argsRoot.noColor || !isatty.IsTerminal(os.Stdout.Fd())
	},
}

// Execute wires every subcommand and flag, then runs the selected one.
// cfg is used as the default source of server/CLI settings; explicit
// flags on any subcommand override it.
func Execute(cfg *config.Config) error {
	globalConfig = cfg

	cmdRoot.PersistentFlags().BoolVar(&argsRoot.noColor, "no-color", !cfg.CLI.Color, "disable colorized diagnostic output")

	cmdRoot.AddCommand(cmdAnalyze)
	cmdRoot.AddCommand(cmdTokenize)
	cmdRoot.AddCommand(cmdRepl)
	cmdRoot.AddCommand(cmdServe)
	cmdRoot.AddCommand(cmdVersion)

	return cmdRoot.Execute()
}
