package main

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosine-software/tdl/internal/server"
)

var argsServe struct {
	host string
	port int
}

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "serve the HTTP/WebSocket analysis API",
	RunE: func(cmd *cobra.Command, args []string) error {
		host := argsServe.host
		if host == "" {
			host = globalConfig.Server.Host
		}
		port := argsServe.port
		if port == 0 {
			port = globalConfig.Server.Port
		}

		s, err := server.New(
			server.WithHost(host),
			server.WithPort(strconv.Itoa(port)),
			server.WithCacheCapacity(globalConfig.Server.CacheCapacity),
		)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "serve: listening on %s\n", s.BaseURL())
		log.Fatal(http.ListenAndServe(s.Addr, s.Router()))
		return nil
	},
}

func init() {
	cmdServe.Flags().StringVar(&argsServe.host, "host", "", "listen host (default: config file or localhost)")
	cmdServe.Flags().IntVar(&argsServe.port, "port", 0, "listen port (default: config file or 4160)")
}
