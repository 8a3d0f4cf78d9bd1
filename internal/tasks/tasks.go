package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vidnexus/internal/formatter"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// NoteSource fetches notes to export. Implemented by services.NotesService.
type NoteSource interface {
	List(ctx context.Context) ([]models.NoteSummary, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
}

// ExportEngine exports notes fetched from a [NoteSource] to disk.
type ExportEngine struct {
	notes  NoteSource
	logger *log.Logger
}

// NewExportEngine creates an ExportEngine. A nil logger writes to stderr.
func NewExportEngine(notes NoteSource, logger *log.Logger) *ExportEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ExportEngine{notes: notes, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ExportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Channel full, skip this update
	}
}

// ExportNote fetches a single note and writes it to outputDir.
func (e *ExportEngine) ExportNote(ctx context.Context, id int64, outputDir string, opts formatter.ExportOptions) (*formatter.ExportResult, error) {
	if e.notes == nil {
		return nil, fmt.Errorf("%w: notes service not initialized", shared.ErrServiceUnavailable)
	}

	note, err := e.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := formatter.WriteNoteExport(note, outputDir, opts)
	if err != nil {
		return nil, fmt.Errorf("%s export failed: %w", opts.Format, err)
	}
	e.logger.Debug("exported note", "id", id, "files", len(res.Files))
	return res, nil
}

// AllNoteIDs lists every note the current user owns, newest first.
func (e *ExportEngine) AllNoteIDs(ctx context.Context, prog chan<- ProgressUpdate) ([]int64, error) {
	if e.notes == nil {
		return nil, fmt.Errorf("%w: notes service not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(prog, listingNotesUpdate())
	notes, err := e.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	notes = models.SortNotes(notes, models.SortNewest)
	ids := make([]int64, len(notes))
	for i, n := range notes {
		ids[i] = n.ID
	}
	e.sendProgress(prog, listedNotesUpdate(len(ids)))
	return ids, nil
}
