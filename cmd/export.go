package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/vidnexus/internal/formatter"
	"github.com/desertthunder/vidnexus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportAll exports every note concurrently and writes a manifest.
func (r *Runner) ExportAll(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(firstNonEmpty(cmd.String("format"), r.config.Export.Format))
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  firstNonEmpty(cmd.String("output"), r.config.Export.OutputDir),
		NumWorkers: r.config.Export.Workers,
		RateLimit:  r.config.Export.RateLimit,
		Thumbnail:  cmd.Bool("thumbnail"),
	}
	if cmd.IsSet("workers") {
		opts.NumWorkers = int(cmd.Int("workers"))
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("starting bulk export", "format", format, "workers", opts.NumWorkers, "rate", opts.RateLimit)
	r.writePlain("Exporting notes as %s...\n\n", format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ListNotes:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchNote:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.ExportNote:
				r.writePlain("   [%d/%d] %s\n", update.Step, update.Total, update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.engine.BulkExport(ctx, progressCh, nil, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	if errors.Is(err, context.Canceled) {
		r.writePlain("\n⚠ Export cancelled, the manifest lists what finished\n")
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Notes: %d\n", result.TotalNotes)
	r.writePlain("Exported: %d/%d\n", result.SuccessfulExports, result.TotalNotes)
	r.writePlain("Output: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("Manifest: %s\n", result.ManifestPath)
	}

	if result.FailedExports > 0 {
		r.writePlain("\nFailed to export %d notes:\n", result.FailedExports)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - #%d %s: %v\n", res.NoteID, res.YouTubeURL, res.Error)
			}
		}
	}

	if err != nil {
		return err
	}
	if result.FailedExports > 0 {
		return fmt.Errorf("%d of %d exports failed", result.FailedExports, result.TotalNotes)
	}
	return nil
}
