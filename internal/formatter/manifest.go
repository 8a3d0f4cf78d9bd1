package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/desertthunder/vidnexus/internal/shared"
)

// ManifestEntry records the outcome of exporting one note.
type ManifestEntry struct {
	NoteID     int64    `json:"note_id"`
	YouTubeURL string   `json:"youtube_url,omitempty"`
	Success    bool     `json:"success"`
	Files      []string `json:"files,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// ExportManifest summarises a bulk export run. It is written as export_manifest.json.
type ExportManifest struct {
	ExportedAt      time.Time       `json:"exported_at"`
	Format          Format          `json:"format"`
	OutputDirectory string          `json:"output_directory"`
	TotalNotes      int             `json:"total_notes"`
	Successful      int             `json:"successful"`
	Failed          int             `json:"failed"`
	Notes           []ManifestEntry `json:"notes"`
}

// WriteBulkExportManifest writes manifest as indented JSON to path.
func WriteBulkExportManifest(manifest *ExportManifest, path string) error {
	if manifest == nil {
		return fmt.Errorf("%w: manifest is nil", shared.ErrInvalidInput)
	}
	if manifest.ExportedAt.IsZero() {
		manifest.ExportedAt = time.Now().UTC()
	}
	if manifest.Notes == nil {
		manifest.Notes = []ManifestEntry{}
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
