package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/vidnexus/internal/models"
)

var (
	_ list.Item = noteItem{}
)

// noteItem wraps [models.NoteSummary] to implement [list.Item].
type noteItem struct {
	note models.NoteSummary
}

func (i noteItem) FilterValue() string { return i.note.YouTubeURL }
func (i noteItem) Title() string {
	if id := models.VideoID(i.note.YouTubeURL); id != "" {
		return fmt.Sprintf("#%d • %s", i.note.ID, id)
	}
	return fmt.Sprintf("#%d", i.note.ID)
}
func (i noteItem) Description() string {
	desc := i.note.CreatedAt.Local().Format("Jan 2, 2006")
	if i.note.YouTubeURL != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.note.YouTubeURL)
	}
	return desc
}

func noteItems(notes []models.NoteSummary) []list.Item {
	items := make([]list.Item, len(notes))
	for i, n := range notes {
		items[i] = noteItem{note: n}
	}
	return items
}
