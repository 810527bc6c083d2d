package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosine-software/tdl/internal/version"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "print the tdlc version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Version.String())
	},
}
