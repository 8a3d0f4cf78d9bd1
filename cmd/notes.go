package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/desertthunder/vidnexus/internal/formatter"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/services"
	"github.com/desertthunder/vidnexus/internal/shared"
	"github.com/urfave/cli/v3"
)

var (
	copyToClipboard = clipboard.WriteAll
	openBrowser     = shared.OpenBrowser
)

// NotesList prints the user's notes in the requested order.
func (r *Runner) NotesList(ctx context.Context, cmd *cli.Command) error {
	order, err := models.ParseSortOrder(cmd.String("sort"))
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidFlag, err)
	}

	if err := r.connect(); err != nil {
		return err
	}

	notes, err := r.notes.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}
	r.logger.Debug("listed notes", "count", len(notes))

	notes = models.SortNotes(models.FilterNotes(notes, cmd.String("search")), order)

	if cmd.Bool("json") {
		return r.writeJSON(notes, cmd.Bool("pretty"))
	}

	if len(notes) == 0 {
		r.writePlain("No notes yet. Create one with 'vnx notes create <youtube-url>'.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("My Notes (%d)", len(notes)))
	for _, n := range notes {
		r.writePlain("#%-5d %s  %s\n", n.ID, n.CreatedAt.Local().Format("Jan 2, 2006"), n.YouTubeURL)
	}
	return nil
}

// NotesCreate generates notes for a YouTube URL.
func (r *Runner) NotesCreate(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.StringArg("url"))
	if url == "" {
		return fmt.Errorf("%w: a YouTube URL is required", shared.ErrMissingArgument)
	}

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("generating notes", "url", url)
	if !cmd.Bool("json") {
		r.writePlain("Creating your study notes, this can take a minute...\n")
	}

	note, err := r.notes.Create(ctx, url)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(note, true)
	}

	r.writePlain("✓ Created note #%d\n", note.ID)
	r.writePlain("Summary: %d points, Flashcards: %d, Quiz: %d questions\n",
		len(note.Summary), len(note.Flashcards), len(note.Quiz))
	r.writePlain("View it with 'vnx notes show %d'\n", note.ID)
	return nil
}

// NotesShow prints one note, either from the API or from the local cache.
func (r *Runner) NotesShow(ctx context.Context, cmd *cli.Command) error {
	mode := strings.ToLower(cmd.String("mode"))
	switch mode {
	case "all", "summary", "flashcards", "quiz":
	default:
		return fmt.Errorf("%w: unknown mode %q (want summary, flashcards, quiz or all)", shared.ErrInvalidFlag, mode)
	}

	note, err := r.loadNote(ctx, cmd.StringArg("id"), cmd.Bool("cached"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(note, true)
	}

	content := noteMarkdown(note, mode)
	if cmd.Bool("render") {
		rendered, err := formatter.RenderMarkdown(content, 0)
		if err != nil {
			r.logger.Warn("failed to render markdown, printing raw", "error", err)
		} else {
			content = rendered
		}
	}
	return r.writePlain("%s", content)
}

// NotesExport writes a single note to disk.
func (r *Runner) NotesExport(ctx context.Context, cmd *cli.Command) error {
	id, err := services.ParseNoteID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(firstNonEmpty(cmd.String("format"), r.config.Export.Format))
	if err != nil {
		return err
	}

	outputDir := firstNonEmpty(cmd.String("output"), r.config.Export.OutputDir, ".")

	if err := r.connect(); err != nil {
		return err
	}

	r.logger.Info("exporting note", "id", id, "format", format, "dir", outputDir)
	res, err := r.engine.ExportNote(ctx, id, outputDir, formatter.ExportOptions{
		Format:    format,
		Thumbnail: cmd.Bool("thumbnail"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported note #%d as %s\n", res.NoteID, format)
	for _, f := range res.Files {
		r.writePlain("  %s\n", f)
	}
	for _, w := range res.Warnings {
		r.writePlain("⚠ %s\n", w)
	}
	return nil
}

// NotesCopy copies a note's summary to the system clipboard.
func (r *Runner) NotesCopy(ctx context.Context, cmd *cli.Command) error {
	note, err := r.loadNote(ctx, cmd.StringArg("id"), false)
	if err != nil {
		return err
	}

	if len(note.Summary) == 0 {
		return fmt.Errorf("%w: note #%d has no summary", shared.ErrInvalidInput, note.ID)
	}

	if err := copyToClipboard(note.SummaryText()); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return r.writePlain("✓ Summary copied to clipboard!\n")
}

// NotesOpen opens the note's video in the default browser.
func (r *Runner) NotesOpen(ctx context.Context, cmd *cli.Command) error {
	note, err := r.loadNote(ctx, cmd.StringArg("id"), false)
	if err != nil {
		return err
	}

	r.logger.Info("opening video", "url", note.YouTubeURL)
	if err := openBrowser(note.YouTubeURL); err != nil {
		r.writePlain("Could not open a browser. Visit %s\n", note.YouTubeURL)
		return err
	}
	return nil
}

// NotesDelete removes a note on the backend and from the local cache.
func (r *Runner) NotesDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := services.ParseNoteID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.connect(); err != nil {
		return err
	}

	if err := r.notes.Delete(ctx, id); err != nil {
		return err
	}

	r.logger.Info("deleted note", "id", id)
	return r.writePlain("✓ Deleted note #%d\n", id)
}

func (r *Runner) loadNote(ctx context.Context, arg string, cached bool) (*models.Note, error) {
	id, err := services.ParseNoteID(arg)
	if err != nil {
		return nil, err
	}

	if err := r.connect(); err != nil {
		return nil, err
	}

	if cached {
		note, err := r.notes.Cached(id)
		if err != nil {
			return nil, fmt.Errorf("note #%d: %w", id, err)
		}
		return note, nil
	}
	return r.notes.Get(ctx, id)
}

func noteMarkdown(note *models.Note, mode string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", formatter.Title(note))
	fmt.Fprintf(&b, "%s\n\n", note.YouTubeURL)

	if mode == "all" || mode == "summary" {
		b.WriteString("## Summary\n\n")
		if len(note.Summary) == 0 {
			b.WriteString("_No summary available._\n\n")
		}
		for _, p := range note.Summary {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	if mode == "all" || mode == "flashcards" {
		b.WriteString("## Flashcards\n\n")
		if len(note.Flashcards) == 0 {
			b.WriteString("_No flashcards available._\n\n")
		}
		for i, c := range note.Flashcards {
			fmt.Fprintf(&b, "**%d. %s**\n\n%s\n\n", i+1, c.Front, c.Back)
		}
	}

	if mode == "all" || mode == "quiz" {
		b.WriteString("## Quiz\n\n")
		if len(note.Quiz) == 0 {
			b.WriteString("_No quiz available._\n\n")
		}
		for i, q := range note.Quiz {
			fmt.Fprintf(&b, "**%d. %s**\n\n", i+1, q.Question)
			for j, opt := range q.Options {
				fmt.Fprintf(&b, "- %s. %s\n", models.OptionLetter(j), opt)
			}
			fmt.Fprintf(&b, "\nAnswer: %s\n\n", q.CorrectOption())
		}
	}

	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
