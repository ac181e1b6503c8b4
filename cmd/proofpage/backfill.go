package main

import (
	"fmt"
	"io"

	"github.com/proofpage/internal/backfill"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/metrics"
	"github.com/proofpage/internal/storage"
	"github.com/spf13/cobra"
)

var backfillBatch int

var backfillCmd = &cobra.Command{
	Use:   "backfill-thumbs",
	Short: "Generate missing avatar and work image thumbnails",
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.Open(cfg.DatabasePath, db.Options{Silent: true})
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		batch := cfg.BackfillBatch
		if backfillBatch > 0 {
			batch = backfillBatch
		}

		store := storage.NewLocal(cfg.StorageDir, cfg.MediaBucket, cfg.SiteBaseURL, storage.NewSigner(cfg.SigningSecret))
		job := backfill.NewJob(gdb, store, logger,
			backfill.WithBatchSize(batch),
			backfill.WithRecorder(metrics.NewManager()),
		)

		report, err := job.Run(cmd.Context())
		if err != nil {
			return err
		}
		printReport(cmd.OutOrStdout(), report)
		if report.Total.Failed > 0 {
			return fmt.Errorf("%d thumbnails failed", report.Total.Failed)
		}
		return nil
	},
}

func init() {
	backfillCmd.Flags().IntVar(&backfillBatch, "batch", 0, "rows per page (defaults to backfill_batch)")
}

func printReport(w io.Writer, report backfill.Report) {
	rows := make([]backfill.Stats, 0, len(report.Tables)+1)
	rows = append(rows, report.Tables...)
	rows = append(rows, report.Total)
	for _, s := range rows {
		fmt.Fprintf(w, "%-14s scanned=%d updated=%d skipped=%d failed=%d\n",
			s.Table, s.Scanned, s.Updated, s.Skipped, s.Failed)
	}
}
