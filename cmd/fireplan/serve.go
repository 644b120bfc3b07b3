package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rkotecha/fireplan/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Expose duplicate detection and FIRE projections over HTTP.

The server is stateless: requests carry their own assets and profile, so it
can sit in front of any client without touching the local database.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8080", "Address to listen on")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := viper.GetString("server.addr")
	slog.Info("starting API server", "addr", addr)
	return server.New(addr).ListenAndServe(cmd.Context())
}
