// Command tdlc is the command-line front end for the TDL language
// engine: analyze/tokenize a file or stdin, run an interactive REPL, or
// serve the HTTP/WebSocket API. It is a thin caller of the tdl package —
// every diagnostic and AST node it prints comes straight from
// tdl.Analyze/tdl.Tokenize.
//
// A version-flag short-circuit runs ahead of cobra dispatch, and
// Execute(cfg) is the entry point, taking a loaded *config.Config.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cosine-software/tdl/internal/config"
	"github.com/cosine-software/tdl/internal/version"
)

func main() {
	for _, arg := range os.Args {
		if arg == "-version" || arg == "--version" {
			fmt.Println(version.Version.Short())
			return
		} else if arg == "-build-info" || arg == "--build-info" {
			fmt.Println(version.Version.String())
			return
		}
	}
	log.SetFlags(log.Lshortfile | log.Ltime)

	const configFileName = "tdlc.json"
	debugConfigFile := false
	if sb, err := os.Stat(configFileName); err == nil && sb.Mode().IsRegular() {
		debugConfigFile = true
	}
	cfg, err := config.Load(configFileName, debugConfigFile)
	if err != nil && debugConfigFile {
		log.Printf("[config] %q: %v\n", configFileName, err)
	}

	if err := Execute(cfg); err != nil {
		log.Fatal(err)
	}
}
