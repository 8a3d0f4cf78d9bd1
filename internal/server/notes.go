package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vidnexus/internal/models"
)

// noteBody is the serialized note, including the owner and transcript fields the client ignores.
type noteBody struct {
	ID         int64              `json:"id"`
	User       int64              `json:"user"`
	YouTubeURL string             `json:"youtube_url"`
	Transcript string             `json:"transcript"`
	Summary    []string           `json:"summary"`
	Flashcards []models.Flashcard `json:"flashcards"`
	Quiz       []models.QuizItem  `json:"quiz"`
	CreatedAt  time.Time          `json:"created_at"`
}

func toNoteBody(n storedNote) noteBody {
	body := noteBody{
		ID:         n.ID,
		User:       n.owner,
		YouTubeURL: n.YouTubeURL,
		Transcript: n.transcript,
		Summary:    n.Summary,
		Flashcards: n.Flashcards,
		Quiz:       n.Quiz,
		CreatedAt:  n.CreatedAt,
	}
	if body.Summary == nil {
		body.Summary = []string{}
	}
	return body
}

// NotesHandler serves the per-user notes collection. Every route requires a valid access token.
type NotesHandler struct {
	backend *Backend
}

func (h *NotesHandler) collection(method string) string {
	return method + " " + h.backend.path("/notes/{$}")
}

func (h *NotesHandler) item(method string) string {
	return method + " " + h.backend.path("/notes/{id}/{$}")
}

// Routes implements [Handler].
func (h *NotesHandler) Routes() []string {
	return []string{
		h.collection(http.MethodGet),
		h.collection(http.MethodPost),
		h.item(http.MethodGet),
		h.item(http.MethodDelete),
	}
}

// ServeHTTP implements [http.Handler].
func (h *NotesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.backend.RequireUser(http.HandlerFunc(h.dispatch)).ServeHTTP(w, r)
}

func (h *NotesHandler) dispatch(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case h.collection(http.MethodGet):
		h.list(w, r)
	case h.collection(http.MethodPost):
		h.create(w, r)
	case h.item(http.MethodGet):
		h.retrieve(w, r)
	case h.item(http.MethodDelete):
		h.destroy(w, r)
	default:
		writeJSON(w, http.StatusNotFound, detail("Not found."))
	}
}

func (h *NotesHandler) list(w http.ResponseWriter, r *http.Request) {
	notes := h.backend.store.Notes(currentUser(r))
	out := make([]noteBody, len(notes))
	for i, n := range notes {
		out[i] = toNoteBody(n)
	}
	writeJSON(w, http.StatusOK, out)
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *NotesHandler) create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, detail(err.Error()))
		return
	}

	req.YouTubeURL = strings.TrimSpace(req.YouTubeURL)
	switch {
	case req.YouTubeURL == "":
		writeJSON(w, http.StatusBadRequest, fieldErrors{"youtube_url": {"This field is required."}})
		return
	case !validURL(req.YouTubeURL):
		writeJSON(w, http.StatusBadRequest, fieldErrors{"youtube_url": {"Enter a valid URL."}})
		return
	}

	owner := currentUser(r)
	gen, err := h.backend.gen.Generate(r.Context(), req.YouTubeURL)
	if err != nil {
		h.backend.logger.Warn("note generation failed", "user_id", owner, "url", req.YouTubeURL, "error", err)
		writeJSON(w, http.StatusBadRequest, fieldErrors{"error": {err.Error()}})
		return
	}

	note := h.backend.store.AddNote(owner, req.YouTubeURL, gen)
	stored, _ := h.backend.store.Note(owner, note.ID)
	h.backend.logger.Info("generated note", "user_id", owner, "note_id", note.ID)
	writeJSON(w, http.StatusCreated, toNoteBody(stored))
}

func (h *NotesHandler) lookup(w http.ResponseWriter, r *http.Request) (storedNote, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, detail("Not found."))
		return storedNote{}, false
	}
	n, ok := h.backend.store.Note(currentUser(r), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, detail("No Note matches the given query."))
		return storedNote{}, false
	}
	return n, true
}

func (h *NotesHandler) retrieve(w http.ResponseWriter, r *http.Request) {
	if n, ok := h.lookup(w, r); ok {
		writeJSON(w, http.StatusOK, toNoteBody(n))
	}
}

func (h *NotesHandler) destroy(w http.ResponseWriter, r *http.Request) {
	n, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.backend.store.DeleteNote(n.owner, n.ID)
	w.WriteHeader(http.StatusNoContent)
}
