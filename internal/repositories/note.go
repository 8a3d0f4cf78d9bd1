package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// NoteRepository caches notes fetched from the backend.
//
// Summary, flashcards and quiz are stored as JSON arrays.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository with the given database connection
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Save inserts note or replaces the cached copy with the same id.
func (r *NoteRepository) Save(note *models.Note) error {
	if note == nil || note.ID <= 0 {
		return fmt.Errorf("%w: note must have a positive id", shared.ErrInvalidInput)
	}

	summary, err := encodeList(note.Summary)
	if err != nil {
		return err
	}
	flashcards, err := encodeList(note.Flashcards)
	if err != nil {
		return err
	}
	quiz, err := encodeList(note.Quiz)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (id, youtube_url, created_at, summary, flashcards, quiz, cached_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			youtube_url = excluded.youtube_url,
			created_at = excluded.created_at,
			summary = excluded.summary,
			flashcards = excluded.flashcards,
			quiz = excluded.quiz,
			cached_at = excluded.cached_at
	`

	_, err = r.db.Exec(query,
		note.ID,
		note.YouTubeURL,
		note.CreatedAt.UTC(),
		summary,
		flashcards,
		quiz,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save note %d: %w", note.ID, err)
	}
	return nil
}

// Get returns a cached note or [shared.ErrCacheMiss].
func (r *NoteRepository) Get(id int64) (*models.Note, error) {
	row := r.db.QueryRow(`
		SELECT id, youtube_url, created_at, summary, flashcards, quiz
		FROM notes
		WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if isNoRows(err) {
		return nil, fmt.Errorf("%w: note %d", shared.ErrCacheMiss, id)
	}
	return note, err
}

// List returns every cached note, newest first.
func (r *NoteRepository) List() ([]*models.Note, error) {
	rows, err := r.db.Query(`
		SELECT id, youtube_url, created_at, summary, flashcards, quiz
		FROM notes
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notes, nil
}

// Delete removes a cached note.
func (r *NoteRepository) Delete(id int64) error {
	res, err := r.db.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return affected(res, fmt.Errorf("%w: note %d", shared.ErrCacheMiss, id))
}

// Count returns the number of cached notes.
func (r *NoteRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}
	return n, nil
}

// Clear deletes every cached note.
func (r *NoteRepository) Clear() (int64, error) {
	res, err := r.db.Exec("DELETE FROM notes")
	if err != nil {
		return 0, fmt.Errorf("failed to clear notes: %w", err)
	}
	return res.RowsAffected()
}

func scanNote(s scanner) (*models.Note, error) {
	var (
		note                     models.Note
		summary, cards, quizJSON string
	)

	if err := s.Scan(&note.ID, &note.YouTubeURL, &note.CreatedAt, &summary, &cards, &quizJSON); err != nil {
		if isNoRows(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	if err := json.Unmarshal([]byte(summary), &note.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary of note %d: %w", note.ID, err)
	}
	if err := json.Unmarshal([]byte(cards), &note.Flashcards); err != nil {
		return nil, fmt.Errorf("failed to decode flashcards of note %d: %w", note.ID, err)
	}
	if err := json.Unmarshal([]byte(quizJSON), &note.Quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz of note %d: %w", note.ID, err)
	}
	return &note, nil
}

// encodeList stores a nil slice as an empty array.
func encodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode note field: %w", err)
	}
	return string(data), nil
}
