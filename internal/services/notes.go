package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
)

const notesPath = "notes/"

// NotesService reads and writes the current user's notes.
type NotesService struct {
	caller Caller
	cache  NoteCacher
	logger *log.Logger
}

// NewNotesService creates a [NotesService]. cache may be nil.
func NewNotesService(caller Caller, cache NoteCacher, logger *log.Logger) *NotesService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &NotesService{caller: caller, cache: cache, logger: logger}
}

func notePath(id int64) string {
	return notesPath + strconv.FormatInt(id, 10) + "/"
}

// ParseNoteID parses a note id from a route parameter or argument.
func ParseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: note id %q", shared.ErrInvalidArgument, s)
	}
	return id, nil
}

// List returns the user's notes in the order the backend sends them.
func (s *NotesService) List(ctx context.Context) ([]models.NoteSummary, error) {
	resp, err := s.caller.Call(ctx, session.Get(notesPath))
	if err != nil {
		return nil, err
	}

	var notes []models.NoteSummary
	if err := resp.Decode(&notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Create asks the backend to generate notes for a YouTube watch URL.
func (s *NotesService) Create(ctx context.Context, youtubeURL string) (*models.Note, error) {
	if !models.IsYouTubeURL(youtubeURL) || models.VideoID(youtubeURL) == "" {
		return nil, fmt.Errorf("%w: %q is not a YouTube video URL", shared.ErrInvalidURL, youtubeURL)
	}

	req, err := session.Post(notesPath, models.CreateNoteRequest{YouTubeURL: youtubeURL})
	if err != nil {
		return nil, err
	}

	resp, err := s.caller.Call(ctx, req)
	if err != nil {
		var statusErr *session.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrGenerateNotes, err)
	}

	var note models.Note
	if err := resp.Decode(&note); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrGenerateNotes, err)
	}

	s.logger.Info("generated notes", "id", note.ID, "url", note.YouTubeURL)
	s.remember(&note)
	return &note, nil
}

// Get fetches one note. A fetched note is cached when a cache is configured.
func (s *NotesService) Get(ctx context.Context, id int64) (*models.Note, error) {
	resp, err := s.caller.Call(ctx, session.Get(notePath(id)))
	if err != nil {
		var statusErr *session.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", shared.ErrNoteNotFound, id)
		}
		return nil, err
	}

	var note models.Note
	if err := resp.Decode(&note); err != nil {
		return nil, err
	}

	s.remember(&note)
	return &note, nil
}

// Cached returns a note from the cache without contacting the backend.
func (s *NotesService) Cached(id int64) (*models.Note, error) {
	if s.cache == nil {
		return nil, shared.ErrCacheMiss
	}
	return s.cache.GetNote(id)
}

// Delete removes a note on the backend and from the cache.
func (s *NotesService) Delete(ctx context.Context, id int64) error {
	if _, err := s.caller.Call(ctx, session.Delete(notePath(id))); err != nil {
		var statusErr *session.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %d", shared.ErrNoteNotFound, id)
		}
		return err
	}

	if s.cache != nil {
		if err := s.cache.DeleteNote(id); err != nil {
			s.logger.Warn("failed to evict cached note", "id", id, "error", err)
		}
	}
	return nil
}

func (s *NotesService) remember(note *models.Note) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveNote(note); err != nil {
		s.logger.Warn("failed to cache note", "id", note.ID, "error", err)
	}
}
