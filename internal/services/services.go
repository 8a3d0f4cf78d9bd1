package services

import (
	"context"

	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/session"
)

// Caller sends requests through the session gateway.
type Caller interface {
	Call(ctx context.Context, req session.Request) (*session.Response, error)
}

// NoteCacher keeps fetched notes for offline reads and exports.
type NoteCacher interface {
	SaveNote(note *models.Note) error
	GetNote(id int64) (*models.Note, error)
	DeleteNote(id int64) error
}
