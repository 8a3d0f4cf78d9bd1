package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
	th "github.com/desertthunder/vidnexus/internal/testing"
)

func testNote() *models.Note {
	return &models.Note{
		ID:         12,
		YouTubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedAt:  time.Date(2025, 2, 14, 8, 30, 0, 0, time.UTC),
		Summary:    []string{"Goroutines are cheap.", "Channels, when used well, simplify sync."},
		Flashcards: []models.Flashcard{
			{Front: "What is a goroutine?", Back: "A lightweight thread"},
			{Front: "Keyword to start one", Back: "go"},
		},
		Quiz: []models.QuizItem{
			{Question: "Which keyword starts a goroutine?", Options: []string{"run", "go", "spawn", "async"}, Answer: "B"},
			{Question: "Unbuffered channels are", Options: []string{"synchronous", "asynchronous"}, Answer: "synchronous"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatMarkdown,
		"md":       FormatMarkdown,
		"Markdown": FormatMarkdown,
		"csv":      FormatCSV,
		"txt":      FormatText,
		"text":     FormatText,
		" json ":   FormatJSON,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	t.Run("Title", func(t *testing.T) {
		if got := Title(testNote()); got != "Study Notes: dQw4w9WgXcQ" {
			t.Errorf("unexpected title %q", got)
		}
		if got := Title(&models.Note{ID: 3, YouTubeURL: "https://youtube.com/"}); got != "Study Notes #3" {
			t.Errorf("unexpected fallback title %q", got)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testNote(), "thumbnail.jpg")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Study Notes: dQw4w9WgXcQ",
			"![Thumbnail](thumbnail.jpg)",
			"**Created**: February 14, 2025",
			"## Summary",
			"- Goroutines are cheap.",
			"1. **Q:** What is a goroutine?",
			"**A:** A lightweight thread",
			"### 1. Which keyword starts a goroutine?",
			"- B. go",
			"**Answer**: B. go",
			"**Answer**: A. synchronous",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown Empty Note", func(t *testing.T) {
		data, _ := ExportToMarkdown(&models.Note{ID: 1, YouTubeURL: "https://youtu.be/x"}, "")
		output := string(data)

		if !strings.Contains(output, "_No summary available._") {
			t.Error("expected empty summary marker")
		}
		if strings.Contains(output, "## Flashcards") || strings.Contains(output, "## Quiz") {
			t.Error("empty sections should be omitted")
		}
		if strings.Contains(output, "![Thumbnail]") {
			t.Error("image should be omitted without a filename")
		}
	})

	t.Run("ExportFlashcardsToCSV", func(t *testing.T) {
		data, err := ExportFlashcardsToCSV(testNote())
		if err != nil {
			t.Fatalf("ExportFlashcardsToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(records))
		}
		if records[0][0] != "Front" || records[2][1] != "go" {
			t.Errorf("unexpected records %v", records)
		}
	})

	t.Run("ExportQuizToCSV", func(t *testing.T) {
		data, err := ExportQuizToCSV(testNote())
		if err != nil {
			t.Fatalf("ExportQuizToCSV failed: %v", err)
		}

		records, _ := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if len(records) != 3 {
			t.Fatalf("expected 3 records, got %d", len(records))
		}
		if records[1][2] != "A. run | B. go | C. spawn | D. async" {
			t.Errorf("unexpected options column %q", records[1][2])
		}
		if records[1][3] != "B. go" {
			t.Errorf("unexpected answer %q", records[1][3])
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testNote())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"SUMMARY", "Goroutines are cheap.\n\nChannels", "FLASHCARDS", "   B) go", "Answer: B. go"} {
			if !strings.Contains(output, want) {
				t.Errorf("text missing %q\n%s", want, output)
			}
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(testNote())
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		var decoded models.Note
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.ID != 12 || len(decoded.Quiz) != 2 {
			t.Errorf("unexpected decoded note %+v", decoded)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(testNote())
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		var meta map[string]any
		json.Unmarshal(data, &meta)
		if meta["video_id"] != "dQw4w9WgXcQ" || meta["flashcards"] != float64(2) {
			t.Errorf("unexpected metadata %v", meta)
		}
		if _, ok := meta["summary"]; ok {
			t.Error("metadata should not include content")
		}
	})
}

func TestDownloadImage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("jpegbytes"))
		}))
		defer server.Close()

		data, err := DownloadImage(server.URL)
		if err != nil || string(data) != "jpegbytes" {
			t.Errorf("unexpected result %q, %v", data, err)
		}
	})

	t.Run("Empty URL", func(t *testing.T) {
		if _, err := DownloadImage(""); err == nil {
			t.Error("expected error for empty URL")
		}
	})

	t.Run("Bad Status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		if _, err := DownloadImage(server.URL); err == nil || !strings.Contains(err.Error(), "status 404") {
			t.Errorf("expected status error, got %v", err)
		}
	})
}

func TestWriters(t *testing.T) {
	t.Run("WriteMarkdownExport With Thumbnail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("img"))
		}))
		defer server.Close()

		dir := filepath.Join(t.TempDir(), "out")
		result, err := WriteMarkdownExport(testNote(), dir, server.URL)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		th.AssertFileExists(t, filepath.Join(dir, "README.md"))
		th.AssertFileExists(t, filepath.Join(dir, "thumbnail.jpg"))
		if len(result.Files) != 2 || len(result.Warnings) != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		if !strings.Contains(th.MustReadFile(t, filepath.Join(dir, "README.md")), "![Thumbnail](thumbnail.jpg)") {
			t.Error("README should reference the thumbnail")
		}
	})

	t.Run("WriteMarkdownExport Thumbnail Failure Is A Warning", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		dir := t.TempDir()
		result, err := WriteMarkdownExport(testNote(), dir, server.URL)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}
		if len(result.Warnings) != 1 || len(result.Files) != 1 {
			t.Errorf("expected one warning and one file, got %+v", result)
		}
	})

	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "n")
		result, err := WriteCSVExport(testNote(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}
		for _, suffix := range []string{"_flashcards.csv", "_quiz.csv", "_metadata.json"} {
			th.AssertFileExists(t, base+suffix)
		}
		if len(result.Files) != 3 {
			t.Errorf("expected 3 files, got %v", result.Files)
		}
	})

	t.Run("WriteNoteExport", func(t *testing.T) {
		tests := []struct {
			format Format
			files  []string
		}{
			{FormatMarkdown, []string{"note_12/README.md"}},
			{FormatCSV, []string{"note_12_flashcards.csv", "note_12_quiz.csv", "note_12_metadata.json"}},
			{FormatText, []string{"note_12.txt"}},
			{FormatJSON, []string{"note_12.json"}},
		}
		for _, tt := range tests {
			t.Run(string(tt.format), func(t *testing.T) {
				dir := t.TempDir()
				result, err := WriteNoteExport(testNote(), dir, ExportOptions{Format: tt.format})
				if err != nil {
					t.Fatalf("WriteNoteExport failed: %v", err)
				}
				for _, f := range tt.files {
					th.AssertFileExists(t, filepath.Join(dir, f))
				}
				if len(result.Files) != len(tt.files) {
					t.Errorf("expected %d files, got %v", len(tt.files), result.Files)
				}
			})
		}
	})

	t.Run("WriteNoteExport Errors", func(t *testing.T) {
		if _, err := WriteNoteExport(nil, t.TempDir(), ExportOptions{}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := WriteNoteExport(testNote(), t.TempDir(), ExportOptions{Format: "pdf"}); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}

		file := filepath.Join(t.TempDir(), "file")
		os.WriteFile(file, []byte("x"), 0644)
		if _, err := WriteNoteExport(testNote(), filepath.Join(file, "sub"), ExportOptions{}); err == nil {
			t.Error("expected error when output dir cannot be created")
		}
	})
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\n- point", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "point") {
		t.Errorf("rendered output missing content: %q", out)
	}

	if TerminalWidth() <= 0 {
		t.Error("expected a positive terminal width")
	}
}

func TestWriteBulkExportManifest(t *testing.T) {
	t.Run("Writes Entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export_manifest.json")
		manifest := &ExportManifest{
			Format:     FormatCSV,
			TotalNotes: 2,
			Successful: 1,
			Failed:     1,
			Notes: []ManifestEntry{
				{NoteID: 1, Success: true, Files: []string{"note_1.json"}},
				{NoteID: 2, Error: "note not found"},
			},
		}
		if err := WriteBulkExportManifest(manifest, path); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}

		var decoded ExportManifest
		if err := json.Unmarshal([]byte(th.MustReadFile(t, path)), &decoded); err != nil {
			t.Fatalf("invalid manifest: %v", err)
		}
		if decoded.Format != FormatCSV || decoded.Failed != 1 || len(decoded.Notes) != 2 {
			t.Errorf("unexpected manifest %+v", decoded)
		}
		if decoded.ExportedAt.IsZero() {
			t.Error("expected export time to be set")
		}
	})

	t.Run("Empty Notes Encoded As List", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "m.json")
		if err := WriteBulkExportManifest(&ExportManifest{Format: FormatJSON}, path); err != nil {
			t.Fatalf("WriteBulkExportManifest failed: %v", err)
		}
		if !strings.Contains(th.MustReadFile(t, path), `"notes": []`) {
			t.Error("expected empty notes list")
		}
	})

	t.Run("Nil Manifest", func(t *testing.T) {
		if err := WriteBulkExportManifest(nil, "x"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
