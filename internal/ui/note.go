package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/vidnexus/internal/formatter"
	"github.com/desertthunder/vidnexus/internal/models"
)

// renderMarkdown is swapped out in tests to keep output free of escape codes.
var renderMarkdown = formatter.RenderMarkdown

// noteMode is the section of a note being studied. Exactly one is shown at a time.
type noteMode int

const (
	modeSummary noteMode = iota
	modeFlashcards
	modeQuiz
)

var noteModes = []noteMode{modeSummary, modeFlashcards, modeQuiz}

func (m noteMode) String() string {
	switch m {
	case modeSummary:
		return "Summary"
	case modeFlashcards:
		return "Flashcards"
	case modeQuiz:
		return "Quiz"
	default:
		return ""
	}
}

// noteView holds the study state for one note.
//
// Quiz answers are kept per question and only judged once revealed.
type noteView struct {
	note     *models.Note
	mode     noteMode
	card     int
	flipped  map[int]bool
	question int
	option   int
	selected map[int]string
	revealed map[int]bool

	rendered      string
	renderedWidth int
}

func newNoteView(note *models.Note) *noteView {
	return &noteView{
		note:     note,
		flipped:  make(map[int]bool),
		selected: make(map[int]string),
		revealed: make(map[int]bool),
	}
}

func (v *noteView) nextMode(delta int) {
	n := len(noteModes)
	v.mode = noteModes[((int(v.mode)+delta)%n+n)%n]
}

// move shifts the card or question cursor by delta, clamped to the section.
func (v *noteView) move(delta int) {
	switch v.mode {
	case modeFlashcards:
		v.card = clamp(v.card+delta, len(v.note.Flashcards))
	case modeQuiz:
		next := clamp(v.question+delta, len(v.note.Quiz))
		if next != v.question {
			v.question = next
			v.option = 0
		}
	}
}

// moveOption shifts the highlighted option of the current question.
func (v *noteView) moveOption(delta int) {
	if v.mode != modeQuiz || len(v.note.Quiz) == 0 {
		return
	}
	v.option = clamp(v.option+delta, len(v.note.Quiz[v.question].Options))
}

func (v *noteView) flip() {
	if v.mode == modeFlashcards && len(v.note.Flashcards) > 0 {
		v.flipped[v.card] = !v.flipped[v.card]
	}
}

// choose records the highlighted option as the answer. Revealed questions are locked.
func (v *noteView) choose() {
	if v.mode != modeQuiz || len(v.note.Quiz) == 0 || v.revealed[v.question] {
		return
	}
	q := v.note.Quiz[v.question]
	if v.option < len(q.Options) {
		v.selected[v.question] = q.Options[v.option]
	}
}

// reveal judges the current question. It needs an answer first.
func (v *noteView) reveal() bool {
	if v.mode != modeQuiz || len(v.note.Quiz) == 0 {
		return false
	}
	if v.selected[v.question] == "" {
		return false
	}
	v.revealed[v.question] = true
	return true
}

// score counts correct answers among revealed questions.
func (v *noteView) score() (correct, revealed int) {
	for i, q := range v.note.Quiz {
		if !v.revealed[i] {
			continue
		}
		revealed++
		if q.IsCorrect(v.selected[i]) {
			correct++
		}
	}
	return correct, revealed
}

func clamp(i, n int) int {
	switch {
	case n <= 0:
		return 0
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}

func (v *noteView) summaryMarkdown() string {
	var b strings.Builder
	b.WriteString("## Key Points\n\n")
	for _, point := range v.note.Summary {
		fmt.Fprintf(&b, "- %s\n", point)
	}
	return b.String()
}

func (v *noteView) renderSummary(width int) string {
	if len(v.note.Summary) == 0 {
		return styles.help.Render("No summary was generated for this video.")
	}
	if v.rendered != "" && v.renderedWidth == width {
		return v.rendered
	}

	out, err := renderMarkdown(v.summaryMarkdown(), width)
	if err != nil {
		out = v.note.SummaryText()
	}
	v.rendered, v.renderedWidth = out, width
	return out
}

func (v *noteView) renderFlashcards() string {
	cards := v.note.Flashcards
	if len(cards) == 0 {
		return styles.help.Render("No flashcards for this note.")
	}

	card := cards[v.card]
	side, text := "Question", card.Front
	if v.flipped[v.card] {
		side, text = "Answer", card.Back
	}

	header := styles.accent.Render(fmt.Sprintf("Card %d of %d • %s", v.card+1, len(cards), side))
	return fmt.Sprintf("%s\n\n%s", header, styles.card.Render(text))
}

func (v *noteView) renderQuiz() string {
	quiz := v.note.Quiz
	if len(quiz) == 0 {
		return styles.help.Render("No quiz questions for this note.")
	}

	q := quiz[v.question]
	correct, revealed := v.score()

	var b strings.Builder
	b.WriteString(styles.accent.Render(fmt.Sprintf("Question %d of %d", v.question+1, len(quiz))))
	b.WriteString("   ")
	b.WriteString(styles.help.Render(fmt.Sprintf("Score: %d/%d", correct, revealed)))
	b.WriteString("\n\n")
	b.WriteString(q.Question)
	b.WriteString("\n\n")

	chosen := v.selected[v.question]
	isRevealed := v.revealed[v.question]
	answer := q.CorrectIndex()

	for i, opt := range q.Options {
		cursor := "  "
		if i == v.option && !isRevealed {
			cursor = "> "
		}
		mark := "( )"
		if opt == chosen {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %s. %s", cursor, mark, models.OptionLetter(i), opt)

		switch {
		case isRevealed && i == answer:
			line = styles.ok.Render(line + " ✓")
		case isRevealed && opt == chosen:
			line = styles.err.Render(line + " ✗")
		case opt == chosen:
			line = styles.accent.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if isRevealed {
		b.WriteString("\n")
		if q.IsCorrect(chosen) {
			b.WriteString(styles.ok.Render("Correct!"))
		} else {
			b.WriteString(styles.err.Render("Incorrect. The answer is " + q.CorrectOption() + "."))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *noteView) tabs() string {
	parts := make([]string, len(noteModes))
	for i, mode := range noteModes {
		label := mode.String()
		switch mode {
		case modeFlashcards:
			label = fmt.Sprintf("%s (%d)", label, len(v.note.Flashcards))
		case modeQuiz:
			label = fmt.Sprintf("%s (%d)", label, len(v.note.Quiz))
		}
		if mode == v.mode {
			parts[i] = styles.ok.Render("[" + label + "]")
		} else {
			parts[i] = styles.help.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, "  ")
}

func (v *noteView) view(width int) string {
	title := styles.title.Render(formatter.Title(v.note))
	meta := styles.help.Render(v.note.YouTubeURL)

	var body string
	switch v.mode {
	case modeSummary:
		body = v.renderSummary(width)
	case modeFlashcards:
		body = v.renderFlashcards()
	case modeQuiz:
		body = v.renderQuiz()
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, meta, v.tabs(), body)
}
