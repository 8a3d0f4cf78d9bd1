// Package repositories implements SQLite persistence for the client's local state.
//
// Key Implementations:
//   - [CookieRepository] : session cookies mirrored from the cookie jar, so a session survives restarts
//   - [NoteRepository] : offline cache of fetched notes with JSON-encoded summary, flashcards and quiz
//   - [NoteCacheAdapter] : adapts [NoteRepository] to the notes service cache
//
// Rows are keyed by the backend's identifiers. There is no soft delete; the backend owns the data
// and local rows are only a copy.
package repositories
