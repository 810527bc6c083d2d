package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosine-software/tdl"
)

var cmdTokenize = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "print the token stream for a TDL source file (or stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := readSource(args)
		if err != nil {
			return err
		}
		for _, t := range tdl.Tokenize(source) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-10s %q\n", t.Span, t.Kind, t.Lexeme)
		}
		return nil
	},
}
