package repositories

import (
	"errors"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// NoteCacheAdapter implements services.NoteCacher using NoteRepository.
//
// Evicting a note that was never cached succeeds.
type NoteCacheAdapter struct {
	repo *NoteRepository
}

// NewNoteCacheAdapter creates a new NoteCacheAdapter with the given repository
func NewNoteCacheAdapter(repo *NoteRepository) *NoteCacheAdapter {
	return &NoteCacheAdapter{repo: repo}
}

func (a *NoteCacheAdapter) SaveNote(note *models.Note) error {
	return a.repo.Save(note)
}

func (a *NoteCacheAdapter) GetNote(id int64) (*models.Note, error) {
	return a.repo.Get(id)
}

func (a *NoteCacheAdapter) DeleteNote(id int64) error {
	if err := a.repo.Delete(id); err != nil && !errors.Is(err, shared.ErrCacheMiss) {
		return err
	}
	return nil
}
