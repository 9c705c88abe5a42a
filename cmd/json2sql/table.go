package main

import (
	"github.com/spf13/cobra"
)

func tableCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Create or drop tables in the event database",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME(COLUMNS)",
		Short: "Create a table if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.CreateTable(args[0])
		},
	}, &cobra.Command{
		Use:   "drop NAME",
		Short: "Drop a table if it exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.RemoveTable(args[0])
		},
	})
	return cmd
}
