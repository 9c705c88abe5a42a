package main

import (
	"log"
	"net"

	"json2sql/internal/web"

	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a read-only view of the stored samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()

			addr := net.JoinHostPort(a.cfg.WebHost, a.cfg.WebPort)
			log.Printf("Server running at http://%s\n", addr)
			return web.NewApp(store).Listen(addr)
		},
	}
}
