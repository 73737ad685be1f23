package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/evatlas/chargesnap/internal/config"
	"github.com/evatlas/chargesnap/internal/overpass"
	"github.com/evatlas/chargesnap/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Download charging stations and write the compressed snapshot",
	Long: `Queries the configured Overpass API endpoint for every node, area, and
relation tagged amenity=charging_station, projects the result into the
snapshot schema, and writes it gzip-compressed to disk.

With --keep-intermediate the exact raw response bytes are saved as well.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts := snapshotOptions{
			Endpoint:         cfg.Overpass.Endpoint,
			TimeoutSecs:      cfg.Overpass.TimeoutSecs,
			KeepIntermediate: cfg.Output.KeepIntermediate,
			RawPath:          cfg.Output.RawPath,
			CompressedPath:   cfg.Output.CompressedPath,
		}

		// Flags override config.
		if cmd.Flags().Changed("endpoint") {
			opts.Endpoint, _ = cmd.Flags().GetString("endpoint")
		}
		if cmd.Flags().Changed("timeout-seconds") {
			opts.TimeoutSecs, _ = cmd.Flags().GetInt("timeout-seconds")
		}
		if cmd.Flags().Changed("keep-intermediate") {
			opts.KeepIntermediate, _ = cmd.Flags().GetBool("keep-intermediate")
		}
		if cmd.Flags().Changed("outfile-raw") {
			opts.RawPath, _ = cmd.Flags().GetString("outfile-raw")
		}
		if cmd.Flags().Changed("outfile-compressed") {
			opts.CompressedPath, _ = cmd.Flags().GetString("outfile-compressed")
		}

		return runSnapshot(ctx, opts)
	},
}

func init() {
	snapshotCmd.Flags().String("endpoint", "switzerland", "Overpass API to use ('switzerland', 'world', or a custom URL)")
	snapshotCmd.Flags().Int("timeout-seconds", 900, "timeout in seconds for the Overpass query")
	snapshotCmd.Flags().Bool("keep-intermediate", false, "keep the raw response file")
	snapshotCmd.Flags().String("outfile-raw", "overpass-result.json", "output file for the raw response (with --keep-intermediate)")
	snapshotCmd.Flags().String("outfile-compressed", "charging-stations-osm.json.gz", "output file for the compressed snapshot")

	rootCmd.AddCommand(snapshotCmd)
}

// snapshotOptions carries the resolved inputs of one snapshot run.
type snapshotOptions struct {
	Endpoint         string
	TimeoutSecs      int
	KeepIntermediate bool
	RawPath          string
	CompressedPath   string
}

// runSnapshot executes the pipeline: query → fetch → parse → transform →
// write. Any failure aborts before any output file is written.
func runSnapshot(ctx context.Context, opts snapshotOptions) error {
	log := zap.L().With(zap.String("command", "snapshot"))

	endpoint, err := config.ResolveEndpoint(opts.Endpoint)
	if err != nil {
		return err
	}
	if opts.TimeoutSecs <= 0 {
		return eris.Errorf("snapshot: timeout must be positive, got %d", opts.TimeoutSecs)
	}

	query := overpass.ChargingStationQuery(opts.TimeoutSecs)
	client := overpass.NewClient(overpass.Options{
		Endpoint:     endpoint,
		QueryTimeout: time.Duration(opts.TimeoutSecs) * time.Second,
	})

	log.Info("downloading charging-station data",
		zap.String("endpoint", endpoint),
		zap.Int("timeout_secs", opts.TimeoutSecs),
	)

	raw, err := client.Fetch(ctx, query)
	if err != nil {
		return eris.Wrap(err, "snapshot: fetch")
	}

	resp, err := overpass.Parse(raw)
	if err != nil {
		return eris.Wrap(err, "snapshot: parse")
	}

	snap, err := snapshot.NewTransformer().Build(resp.Elements)
	if err != nil {
		// Best-effort enrichment: an empty dataset usually means the
		// server rejected the query and left a remark in the payload.
		var empty *snapshot.EmptyDatasetError
		if errors.As(err, &empty) {
			empty.Remark = overpass.Remark(raw)
		}
		return eris.Wrap(err, "snapshot: transform")
	}

	log.Info("processing entries", zap.Int("count", snap.Count))

	if opts.KeepIntermediate {
		n, err := snapshot.WriteRaw(opts.RawPath, raw)
		if err != nil {
			return eris.Wrap(err, "snapshot: write raw")
		}
		log.Info("saved raw response",
			zap.String("path", opts.RawPath),
			zap.String("size", humanize.IBytes(uint64(n))),
		)
	}

	n, err := snapshot.WriteCompressed(opts.CompressedPath, snap)
	if err != nil {
		return eris.Wrap(err, "snapshot: write compressed")
	}
	log.Info("snapshot written",
		zap.String("path", opts.CompressedPath),
		zap.String("size", humanize.IBytes(uint64(n))),
		zap.Int("count", snap.Count),
	)

	return nil
}
