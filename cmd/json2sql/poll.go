package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"json2sql/internal/eapi"
	"json2sql/internal/logger"
	"json2sql/internal/oid"
	"json2sql/internal/poller"
	"json2sql/internal/snmp"

	"github.com/spf13/cobra"
)

func pollCmd(a *app) *cobra.Command {
	var (
		once   bool
		source string
	)

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll interface error counters and store them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source != "eapi" && source != "snmp" {
				return fmt.Errorf("unknown source %q", source)
			}
			cfg := a.cfg

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()

			p := &poller.Poller{
				Store:     store,
				Interval:  cfg.PollInterval,
				Threshold: cfg.ErrorThreshold,
			}

			// eAPI is needed to read counters or to shut interfaces down
			if source == "eapi" || cfg.ShutdownOnErrors {
				client, err := eapi.New(ctx, eapi.Config{
					Username:       cfg.Username,
					Password:       cfg.Password,
					EnablePassword: cfg.EnablePassword,
					Method:         cfg.Method,
					Host:           cfg.Host,
					Timeout:        cfg.Timeout,
				})
				if err != nil {
					return err
				}
				p.Source = client
				if cfg.ShutdownOnErrors {
					p.Shutter = client
				}
			}

			if source == "snmp" {
				if cfg.SNMPTarget == "" {
					return fmt.Errorf("SNMP_TARGET is required for --source snmp")
				}
				if cfg.OIDFile != "" {
					if err := oid.Load(cfg.OIDFile); err != nil {
						return fmt.Errorf("load %s: %w", cfg.OIDFile, err)
					}
				}
				p.Source = &snmp.Source{Target: cfg.SNMPTarget, Community: cfg.SNMPCommunity}
			}

			if sl, err := logger.NewSyslog(cfg.SyslogTag); err != nil {
				log.Printf("syslog unavailable: %v", err)
			} else {
				defer sl.Close()
				p.Notifier = sl
			}

			if once {
				return p.PollOnce(ctx)
			}
			log.Printf("polling %s every %s", source, cfg.PollInterval)
			return p.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "poll a single time and exit")
	cmd.Flags().StringVar(&source, "source", "eapi", "counter source: eapi or snmp")
	return cmd
}
