// package formatter provides functions to export study notes to various formats (Markdown, CSV, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatMarkdown, FormatCSV, FormatText, FormatJSON}

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want markdown, csv, text or json)", shared.ErrInvalidFlag, s)
}

const dateLayout = "January 2, 2006"

// Title is the heading used for a note in every format.
func Title(note *models.Note) string {
	if id := models.VideoID(note.YouTubeURL); id != "" {
		return "Study Notes: " + id
	}
	return fmt.Sprintf("Study Notes #%d", note.ID)
}

// ExportToMarkdown converts a Note to Markdown with optional cover image
func ExportToMarkdown(note *models.Note, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", Title(note))

	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Thumbnail](%s)\n\n", imageFilename)
	}

	fmt.Fprintf(&buf, "**Video**: %s\n", note.YouTubeURL)
	if !note.CreatedAt.IsZero() {
		fmt.Fprintf(&buf, "**Created**: %s\n", note.CreatedAt.Format(dateLayout))
	}
	fmt.Fprintf(&buf, "**Flashcards**: %d\n", len(note.Flashcards))
	fmt.Fprintf(&buf, "**Quiz Questions**: %d\n\n", len(note.Quiz))

	buf.WriteString("## Summary\n\n")
	if len(note.Summary) == 0 {
		buf.WriteString("_No summary available._\n")
	}
	for _, point := range note.Summary {
		fmt.Fprintf(&buf, "- %s\n", point)
	}

	if len(note.Flashcards) > 0 {
		buf.WriteString("\n## Flashcards\n\n")
		for i, card := range note.Flashcards {
			fmt.Fprintf(&buf, "%d. **Q:** %s\n   **A:** %s\n", i+1, card.Front, card.Back)
		}
	}

	if len(note.Quiz) > 0 {
		buf.WriteString("\n## Quiz\n\n")
		for i, q := range note.Quiz {
			fmt.Fprintf(&buf, "### %d. %s\n\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Fprintf(&buf, "- %s. %s\n", models.OptionLetter(j), opt)
			}
			fmt.Fprintf(&buf, "\n**Answer**: %s\n\n", answerText(q))
		}
	}

	return buf.Bytes(), nil
}

// answerText renders "B. Option" when the answer maps to an option, otherwise the raw answer.
func answerText(q models.QuizItem) string {
	if i := q.CorrectIndex(); i >= 0 {
		return models.OptionLetter(i) + ". " + q.Options[i]
	}
	return q.Answer
}

// ExportFlashcardsToCSV converts flashcards to CSV with columns: Front, Back
func ExportFlashcardsToCSV(note *models.Note) ([]byte, error) {
	records := [][]string{{"Front", "Back"}}
	for _, card := range note.Flashcards {
		records = append(records, []string{card.Front, card.Back})
	}
	return writeCSV(records)
}

// ExportQuizToCSV converts the quiz to CSV with columns: Number, Question, Options, Answer
//
// Options are joined with " | " in letter order.
func ExportQuizToCSV(note *models.Note) ([]byte, error) {
	records := [][]string{{"Number", "Question", "Options", "Answer"}}
	for i, q := range note.Quiz {
		opts := make([]string, len(q.Options))
		for j, opt := range q.Options {
			opts[j] = models.OptionLetter(j) + ". " + opt
		}
		records = append(records, []string{strconv.Itoa(i + 1), q.Question, strings.Join(opts, " | "), answerText(q)})
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			if i == 0 {
				return nil, fmt.Errorf("failed to write CSV headers: %w", err)
			}
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToText converts a Note to plain text
func ExportToText(note *models.Note) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", Title(note))
	fmt.Fprintf(&buf, "Video: %s\n", note.YouTubeURL)
	if !note.CreatedAt.IsZero() {
		fmt.Fprintf(&buf, "Created: %s\n", note.CreatedAt.Format(dateLayout))
	}

	buf.WriteString("\nSUMMARY\n\n")
	buf.WriteString(note.SummaryText())
	buf.WriteString("\n")

	if len(note.Flashcards) > 0 {
		buf.WriteString("\nFLASHCARDS\n\n")
		for i, card := range note.Flashcards {
			fmt.Fprintf(&buf, "%d. %s\n   %s\n", i+1, card.Front, card.Back)
		}
	}

	if len(note.Quiz) > 0 {
		buf.WriteString("\nQUIZ\n\n")
		for i, q := range note.Quiz {
			fmt.Fprintf(&buf, "%d. %s\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Fprintf(&buf, "   %s) %s\n", models.OptionLetter(j), opt)
			}
			fmt.Fprintf(&buf, "   Answer: %s\n", answerText(q))
		}
	}

	return buf.Bytes(), nil
}

// ToJSON renders the note as indented JSON.
func ToJSON(note *models.Note) ([]byte, error) {
	return shared.MarshalJSON(note, true)
}

// ToMetadataJSON generates a JSON representation of note metadata (without its content)
func ToMetadataJSON(note *models.Note) ([]byte, error) {
	return shared.MarshalJSON(struct {
		models.NoteSummary
		VideoID    string `json:"video_id,omitempty"`
		Thumbnail  string `json:"thumbnail"`
		Flashcards int    `json:"flashcards"`
		Questions  int    `json:"quiz_questions"`
	}{
		NoteSummary: note.AsSummary(),
		VideoID:     models.VideoID(note.YouTubeURL),
		Thumbnail:   models.ThumbnailURL(note.YouTubeURL, models.ThumbnailMax),
		Flashcards:  len(note.Flashcards),
		Questions:   len(note.Quiz),
	}, true)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// ExportResult lists the files written for one note.
//
// Warnings collects non-fatal problems such as a thumbnail that could not be fetched.
type ExportResult struct {
	NoteID   int64
	Files    []string
	Warnings []string
}

// BaseName is the file stem used for a note's export files.
func BaseName(note *models.Note) string {
	return fmt.Sprintf("note_%d", note.ID)
}

// WriteMarkdownExport writes {outputDir}/README.md and, when imageURL is set, {outputDir}/thumbnail.jpg.
//
// Directory name defaults to the note's base name.
func WriteMarkdownExport(note *models.Note, outputDir string, imageURL string) (*ExportResult, error) {
	if outputDir == "" {
		outputDir = BaseName(note)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &ExportResult{NoteID: note.ID}

	var imageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to download thumbnail: %v", err))
		} else {
			imagePath := filepath.Join(outputDir, "thumbnail.jpg")
			if err := os.WriteFile(imagePath, imageData, 0644); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("failed to save thumbnail: %v", err))
			} else {
				imageFilename = "thumbnail.jpg"
				result.Files = append(result.Files, imagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(note, imageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

// WriteCSVExport writes {base}_flashcards.csv, {base}_quiz.csv and {base}_metadata.json.
func WriteCSVExport(note *models.Note, base string) (*ExportResult, error) {
	if base == "" {
		base = BaseName(note)
	}

	result := &ExportResult{NoteID: note.ID}
	outputs := []struct {
		suffix string
		render func(*models.Note) ([]byte, error)
	}{
		{"_flashcards.csv", ExportFlashcardsToCSV},
		{"_quiz.csv", ExportQuizToCSV},
		{"_metadata.json", ToMetadataJSON},
	}

	for _, out := range outputs {
		data, err := out.render(note)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s: %w", out.suffix, err)
		}
		path := base + out.suffix
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

// WriteTextExport exports a note to plain text.
//
// Defaults to {base}.txt as the filename.
func WriteTextExport(note *models.Note, path string) (string, error) {
	if path == "" {
		path = BaseName(note) + ".txt"
	}

	textData, err := ExportToText(note)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// WriteJSONExport exports a note as JSON.
func WriteJSONExport(note *models.Note, path string) (string, error) {
	if path == "" {
		path = BaseName(note) + ".json"
	}

	data, err := ToJSON(note)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// ExportOptions controls [WriteNoteExport].
type ExportOptions struct {
	Format Format
	// Thumbnail downloads the video thumbnail next to Markdown exports.
	Thumbnail bool
}

// WriteNoteExport writes note into outputDir in the requested format.
func WriteNoteExport(note *models.Note, outputDir string, opts ExportOptions) (*ExportResult, error) {
	if note == nil {
		return nil, fmt.Errorf("%w: note is nil", shared.ErrInvalidInput)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	base := filepath.Join(outputDir, BaseName(note))

	switch opts.Format {
	case FormatMarkdown, "":
		imageURL := ""
		if opts.Thumbnail && models.VideoID(note.YouTubeURL) != "" {
			imageURL = models.ThumbnailURL(note.YouTubeURL, models.ThumbnailMax)
		}
		return WriteMarkdownExport(note, base, imageURL)
	case FormatCSV:
		return WriteCSVExport(note, base)
	case FormatText:
		path, err := WriteTextExport(note, base+".txt")
		if err != nil {
			return nil, err
		}
		return &ExportResult{NoteID: note.ID, Files: []string{path}}, nil
	case FormatJSON:
		path, err := WriteJSONExport(note, base+".json")
		if err != nil {
			return nil, err
		}
		return &ExportResult{NoteID: note.ID, Files: []string{path}}, nil
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, opts.Format)
}
