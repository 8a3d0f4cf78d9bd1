package tasks

import (
	"fmt"

	"github.com/desertthunder/vidnexus/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ListNotes Phase = iota
	FetchNote
	ExportNote
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case ListNotes:
		return "list_notes"
	case FetchNote:
		return "fetch_note"
	case ExportNote:
		return "export_note"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func listingNotesUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListNotes,
		Step:    0,
		Total:   1,
		Message: "Fetching note list...",
	}
}

func listedNotesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ListNotes,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d notes", count),
	}
}

func fetchingNoteUpdate(step, total int, id int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchNote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching note #%d...", step, total, id),
	}
}

func fetchedNoteUpdate(step, total int, note *models.Note) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchNote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, noteLabel(note.ID, note.YouTubeURL)),
		Data:    note,
	}
}

func exportCompletedUpdate(step, total int, res NoteExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportNote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, noteLabel(res.NoteID, res.YouTubeURL), len(res.Files)),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, res NoteExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportNote,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, noteLabel(res.NoteID, res.YouTubeURL), res.Error),
		Data:    res,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
	}
}

func noteLabel(id int64, youtubeURL string) string {
	if v := models.VideoID(youtubeURL); v != "" {
		return fmt.Sprintf("#%d (%s)", id, v)
	}
	return fmt.Sprintf("#%d", id)
}
