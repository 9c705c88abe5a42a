package main

import (
	"fmt"
	"os"

	"json2sql/internal/config"
	"json2sql/internal/db"
	"json2sql/internal/logger"
	"json2sql/internal/procname"

	"github.com/spf13/cobra"
)

const procName = "json2sql"

type app struct {
	debug bool
	cfg   *config.Config
}

func (a *app) openDB() (*db.AristaDB, error) {
	return db.Open(a.cfg.DBPath, a.debug)
}

func rootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "json2sql [--debug] [COMMAND]",
		Short:         "Store switch interface error counters from eAPI in SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetDebug(a.debug)
			if err := procname.Set(procName); err != nil {
				logger.Debugf("set process name: %v", err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		// Without a subcommand, check that the database can be written by
		// creating and dropping a scratch table.
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.CreateTable("test(x)"); err != nil {
				return err
			}
			if err := store.RemoveTable("test"); err != nil {
				return err
			}
			logger.Debugf("scratch table created and dropped in %s", a.cfg.DBPath)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "print debug info")

	rootCmd.AddCommand(
		pollCmd(a),
		samplesCmd(a),
		tableCmd(a),
		serveCmd(a),
	)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

func Execute() int {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
