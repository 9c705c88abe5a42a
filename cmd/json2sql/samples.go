package main

import (
	"time"

	"json2sql/internal/db"
	"json2sql/internal/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func samplesCmd(a *app) *cobra.Command {
	var (
		iface  string
		limit  int
		since  time.Duration
		latest bool
	)

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Show stored error samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openDB()
			if err != nil {
				return err
			}
			defer store.Close()

			var samples []models.ErrorSample
			if latest {
				samples, err = store.LatestSamples()
			} else {
				filter := db.SampleFilter{Interface: iface, Limit: limit}
				if since > 0 {
					filter.Since = time.Now().UTC().Add(-since)
				}
				samples, err = store.SearchTable(filter, db.SamplesTable)
			}
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Interface", "FCS", "Symbol", "Polled at"})
			for _, s := range samples {
				t.AppendRow(table.Row{s.Interface, s.FCS, s.Symbol, s.PolledAt.Format(time.RFC3339)})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&iface, "interface", "i", "", "only this interface, e.g. Et1")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum rows")
	cmd.Flags().DurationVar(&since, "since", 0, "only samples newer than this, e.g. 1h")
	cmd.Flags().BoolVar(&latest, "latest", false, "newest sample per interface")
	return cmd
}
