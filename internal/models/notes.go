package models

import (
	"strings"
	"time"
)

// NoteSummary is a single entry returned by the notes list endpoint.
type NoteSummary struct {
	ID         int64     `json:"id"`
	YouTubeURL string    `json:"youtube_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// Note is a fully generated study note.
type Note struct {
	ID         int64       `json:"id"`
	YouTubeURL string      `json:"youtube_url"`
	CreatedAt  time.Time   `json:"created_at"`
	Summary    []string    `json:"summary"`
	Flashcards []Flashcard `json:"flashcards"`
	Quiz       []QuizItem  `json:"quiz"`
}

// Flashcard is a two-sided study card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizItem is a multiple choice question.
//
// Answer is either a single option letter (A = first option) or the option text itself.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// CreateNoteRequest is the body sent to generate a note.
type CreateNoteRequest struct {
	YouTubeURL string `json:"youtube_url"`
}

// AsSummary drops the generated content, keeping the list fields.
func (n Note) AsSummary() NoteSummary {
	return NoteSummary{ID: n.ID, YouTubeURL: n.YouTubeURL, CreatedAt: n.CreatedAt}
}

// SummaryText joins the key points the way they are copied to the clipboard.
func (n Note) SummaryText() string {
	return strings.Join(n.Summary, "\n\n")
}

// OptionLetter returns the display letter for the option at index i.
func OptionLetter(i int) string {
	if i < 0 || i > 25 {
		return "?"
	}
	return string(rune('A' + i))
}

// CorrectIndex resolves the answer to an index into Options, or -1 when it matches nothing.
func (q QuizItem) CorrectIndex() int {
	if len(q.Answer) == 1 {
		c := q.Answer[0]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c >= 'A' && c <= 'Z' {
			if idx := int(c - 'A'); idx < len(q.Options) {
				return idx
			}
			return -1
		}
	}
	for i, opt := range q.Options {
		if opt == q.Answer {
			return i
		}
	}
	return -1
}

// CorrectOption returns the text of the correct option, falling back to the raw answer.
func (q QuizItem) CorrectOption() string {
	if idx := q.CorrectIndex(); idx >= 0 {
		return q.Options[idx]
	}
	return q.Answer
}

// IsCorrect reports whether selected (an option's text) is the right answer.
func (q QuizItem) IsCorrect(selected string) bool {
	if selected == "" {
		return false
	}
	if len(q.Answer) == 1 && isASCIILetter(q.Answer[0]) {
		idx := q.CorrectIndex()
		return idx >= 0 && q.Options[idx] == selected
	}
	return selected == q.Answer
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
