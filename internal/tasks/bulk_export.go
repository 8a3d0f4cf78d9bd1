package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/vidnexus/internal/formatter"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers   = 5
	MaxWorkers       = 10
	DefaultRateLimit = 5.0
	ManifestFilename = "export_manifest.json"
)

// BulkExportOpts contains configuration for bulk note exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format: markdown, csv, text, json
	OutputDir  string           // Base output directory (default: vidnexus_export_{epoch})
	NumWorkers int              // Concurrent workers (default: 5, max: 10)
	RateLimit  float64          // Note fetches per second (default: 5)
	Thumbnail  bool             // Download thumbnails for markdown exports
}

// NoteExportJob is a fetched note waiting for a worker.
type NoteExportJob struct {
	Note *models.Note
}

// NoteExportResult is the outcome of exporting one note.
type NoteExportResult struct {
	NoteID     int64
	YouTubeURL string
	Success    bool
	Files      []string
	Warnings   []string
	Error      error
}

// BulkExportResult summarises a [ExportEngine.BulkExport] run.
type BulkExportResult struct {
	TotalNotes        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []NoteExportResult // Ordered by note id
}

func (o BulkExportOpts) withDefaults() (BulkExportOpts, error) {
	format, err := formatter.ParseFormat(string(o.Format))
	if err != nil {
		return o, err
	}
	o.Format = format

	if o.OutputDir == "" {
		o.OutputDir = fmt.Sprintf("vidnexus_export_%d", time.Now().Unix())
	}
	if o.NumWorkers <= 0 {
		o.NumWorkers = DefaultWorkers
	}
	if o.NumWorkers > MaxWorkers {
		o.NumWorkers = MaxWorkers
	}
	if o.RateLimit <= 0 {
		o.RateLimit = DefaultRateLimit
	}
	return o, nil
}

// BulkExport exports notes concurrently with rate limited fetches and progress tracking.
//
// An empty ids exports every note returned by the list endpoint. Failures are recorded
// per note and do not stop the run. The manifest is written even when ctx is cancelled
// part way, in which case the context error is returned alongside the partial result.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []int64,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.notes == nil {
		return nil, fmt.Errorf("%w: notes service not initialized", shared.ErrServiceUnavailable)
	}

	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		if ids, err = e.AllNoteIDs(ctx, prog); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalNotes:      len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]NoteExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan NoteExportJob, len(ids))
	results := make(chan NoteExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	// results closes only after both the producer and the workers are done
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, id := range ids {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchingNoteUpdate(i+1, len(ids), id))
			note, err := e.notes.Get(ctx, id)
			if err != nil {
				results <- NoteExportResult{
					NoteID: id,
					Error:  fmt.Errorf("failed to fetch note: %w", err),
				}
				continue
			}

			jobs <- NoteExportJob{Note: note}
			e.sendProgress(prog, fetchedNoteUpdate(i+1, len(ids), note))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res))
		} else {
			result.FailedExports++
			e.logger.Warn("note export failed", "id", res.NoteID, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res))
		}
	}

	slices.SortFunc(result.Results, func(a, b NoteExportResult) int {
		switch {
		case a.NoteID < b.NoteID:
			return -1
		case a.NoteID > b.NoteID:
			return 1
		}
		return 0
	})

	manifestPath := filepath.Join(opts.OutputDir, ManifestFilename)
	if err := formatter.WriteBulkExportManifest(result.manifest(opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))

	e.logger.Info("bulk export finished",
		"total", result.TotalNotes,
		"successful", result.SuccessfulExports,
		"failed", result.FailedExports,
		"dir", result.OutputDirectory,
	)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted after %d of %d notes: %w", completed, len(ids), err)
	}
	return result, nil
}

// exportWorker is a worker goroutine that exports notes from the jobs channel.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan NoteExportJob,
	results chan<- NoteExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		results <- e.exportSingleNote(job, opts)
	}
}

// exportSingleNote writes one note in the configured format.
func (e *ExportEngine) exportSingleNote(j NoteExportJob, opts BulkExportOpts) NoteExportResult {
	result := NoteExportResult{
		NoteID:     j.Note.ID,
		YouTubeURL: j.Note.YouTubeURL,
		Files:      []string{},
	}

	res, err := formatter.WriteNoteExport(j.Note, opts.OutputDir, formatter.ExportOptions{
		Format:    opts.Format,
		Thumbnail: opts.Thumbnail,
	})
	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		return result
	}

	result.Files = res.Files
	result.Warnings = res.Warnings
	result.Success = true
	return result
}

func (r *BulkExportResult) manifest(format formatter.Format) *formatter.ExportManifest {
	m := &formatter.ExportManifest{
		Format:          format,
		OutputDirectory: r.OutputDirectory,
		TotalNotes:      r.TotalNotes,
		Successful:      r.SuccessfulExports,
		Failed:          r.FailedExports,
		Notes:           make([]formatter.ManifestEntry, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		entry := formatter.ManifestEntry{
			NoteID:     res.NoteID,
			YouTubeURL: res.YouTubeURL,
			Success:    res.Success,
			Files:      res.Files,
			Warnings:   res.Warnings,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Notes = append(m.Notes, entry)
	}
	return m
}
