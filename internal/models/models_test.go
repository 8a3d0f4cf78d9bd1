package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestQuizItem(t *testing.T) {
	options := []string{"Go", "Rust", "Zig", "C"}

	tc := []struct {
		name        string
		answer      string
		selected    string
		wantIndex   int
		wantOption  string
		wantCorrect bool
	}{
		{name: "letter answer matches", answer: "B", selected: "Rust", wantIndex: 1, wantOption: "Rust", wantCorrect: true},
		{name: "lowercase letter answer", answer: "c", selected: "Zig", wantIndex: 2, wantOption: "Zig", wantCorrect: true},
		{name: "letter answer mismatch", answer: "A", selected: "C", wantIndex: 0, wantOption: "Go", wantCorrect: false},
		{name: "letter out of range", answer: "F", selected: "Go", wantIndex: -1, wantOption: "F", wantCorrect: false},
		{name: "text answer matches", answer: "Zig", selected: "Zig", wantIndex: 2, wantOption: "Zig", wantCorrect: true},
		{name: "text answer mismatch", answer: "Zig", selected: "Go", wantIndex: 2, wantOption: "Zig", wantCorrect: false},
		{name: "single letter option text", answer: "C", selected: "C", wantIndex: 2, wantOption: "Zig", wantCorrect: false},
		{name: "nothing selected", answer: "A", selected: "", wantIndex: 0, wantOption: "Go", wantCorrect: false},
		{name: "unknown text answer", answer: "Python", selected: "Python", wantIndex: -1, wantOption: "Python", wantCorrect: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			q := QuizItem{Question: "Which language?", Options: options, Answer: tt.answer}

			if got := q.CorrectIndex(); got != tt.wantIndex {
				t.Errorf("CorrectIndex() = %d, want %d", got, tt.wantIndex)
			}
			if got := q.CorrectOption(); got != tt.wantOption {
				t.Errorf("CorrectOption() = %q, want %q", got, tt.wantOption)
			}
			if got := q.IsCorrect(tt.selected); got != tt.wantCorrect {
				t.Errorf("IsCorrect(%q) = %v, want %v", tt.selected, got, tt.wantCorrect)
			}
		})
	}
}

func TestOptionLetter(t *testing.T) {
	if OptionLetter(0) != "A" || OptionLetter(3) != "D" {
		t.Errorf("unexpected letters %s %s", OptionLetter(0), OptionLetter(3))
	}
	if OptionLetter(-1) != "?" || OptionLetter(26) != "?" {
		t.Error("expected ? for out of range index")
	}
}

func TestNote(t *testing.T) {
	t.Run("Decodes API Payload", func(t *testing.T) {
		payload := `{
			"id": 7,
			"user": 1,
			"youtube_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"transcript": "ignored",
			"summary": ["First point", "Second point"],
			"flashcards": [{"front": "Q", "back": "A"}],
			"quiz": [{"question": "Q?", "options": ["x", "y"], "answer": "A"}],
			"created_at": "2025-01-02T03:04:05.123456Z"
		}`

		var note Note
		if err := json.Unmarshal([]byte(payload), &note); err != nil {
			t.Fatalf("failed to decode note: %v", err)
		}

		if note.ID != 7 || len(note.Summary) != 2 || len(note.Flashcards) != 1 || len(note.Quiz) != 1 {
			t.Errorf("unexpected note %+v", note)
		}
		if note.CreatedAt.Year() != 2025 {
			t.Errorf("expected created_at to parse, got %v", note.CreatedAt)
		}
		if note.AsSummary().ID != 7 {
			t.Error("AsSummary should keep the id")
		}
	})

	t.Run("SummaryText", func(t *testing.T) {
		note := Note{Summary: []string{"one", "two", "three"}}
		if got := note.SummaryText(); got != "one\n\ntwo\n\nthree" {
			t.Errorf("unexpected summary text %q", got)
		}
	})
}

func TestVideoID(t *testing.T) {
	tc := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/playlist?list=PL123", ""},
		{"not a url at all", ""},
		{"", ""},
	}

	for _, tt := range tc {
		t.Run(tt.url, func(t *testing.T) {
			if got := VideoID(tt.url); got != tt.want {
				t.Errorf("VideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestThumbnailURL(t *testing.T) {
	got := ThumbnailURL("https://www.youtube.com/watch?v=abc123", "")
	if got != "https://img.youtube.com/vi/abc123/mqdefault.jpg" {
		t.Errorf("unexpected thumbnail %s", got)
	}

	got = ThumbnailURL("https://www.youtube.com/watch?v=abc123", ThumbnailMax)
	if got != "https://img.youtube.com/vi/abc123/maxresdefault.jpg" {
		t.Errorf("unexpected thumbnail %s", got)
	}

	if ThumbnailURL("https://example.com", "") != placeholderThumbnail {
		t.Error("expected placeholder for unknown video")
	}
}

func TestIsYouTubeURL(t *testing.T) {
	valid := []string{"https://www.youtube.com/watch?v=a", "https://youtu.be/a", "http://m.youtube.com/watch?v=a"}
	invalid := []string{"https://vimeo.com/1", "youtube.com/watch?v=a", ""}

	for _, u := range valid {
		if !IsYouTubeURL(u) {
			t.Errorf("expected %q to be a YouTube URL", u)
		}
	}
	for _, u := range invalid {
		if IsYouTubeURL(u) {
			t.Errorf("expected %q not to be a YouTube URL", u)
		}
	}
}

func TestSortNotes(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	notes := []NoteSummary{
		{ID: 2, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 3, CreatedAt: base},
		{ID: 1, CreatedAt: base.Add(time.Hour)},
	}

	tc := []struct {
		order SortOrder
		want  []int64
	}{
		{SortNewest, []int64{2, 1, 3}},
		{SortOldest, []int64{3, 1, 2}},
		{SortAZ, []int64{1, 2, 3}},
		{SortZA, []int64{3, 2, 1}},
	}

	for _, tt := range tc {
		t.Run(string(tt.order), func(t *testing.T) {
			sorted := SortNotes(notes, tt.order)
			for i, id := range tt.want {
				if sorted[i].ID != id {
					t.Fatalf("position %d: expected id %d, got %d", i, id, sorted[i].ID)
				}
			}
		})
	}

	t.Run("Does Not Mutate Input", func(t *testing.T) {
		SortNotes(notes, SortAZ)
		if notes[0].ID != 2 {
			t.Error("input slice was reordered")
		}
	})
}

func TestParseSortOrder(t *testing.T) {
	if o, err := ParseSortOrder(""); err != nil || o != SortNewest {
		t.Errorf("expected newest default, got %v (%v)", o, err)
	}
	if o, err := ParseSortOrder("Z-A"); err != nil || o != SortZA {
		t.Errorf("expected z-a, got %v (%v)", o, err)
	}
	if _, err := ParseSortOrder("random"); err == nil {
		t.Error("expected error for unknown order")
	}
	if SortZA.Next() != SortNewest || SortNewest.Next() != SortOldest {
		t.Error("Next should cycle through orders")
	}
}

func TestFilterNotes(t *testing.T) {
	notes := []NoteSummary{
		{ID: 1, YouTubeURL: "https://www.youtube.com/watch?v=GoLang101"},
		{ID: 2, YouTubeURL: "https://youtu.be/RustIntro"},
	}

	if got := FilterNotes(notes, "golang"); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected note 1, got %v", got)
	}
	if got := FilterNotes(notes, "  "); len(got) != 2 {
		t.Errorf("blank query should keep all notes, got %d", len(got))
	}
	if got := FilterNotes(notes, "python"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}
