// Package services provides typed access to the VidNexus backend on top of the session gateway.
//
// # Notes
//
// [NotesService] lists, creates, fetches and deletes study notes. Creation is slow because the
// backend fetches the transcript and runs the AI generation inline, so callers should pass a
// context with a generous deadline.
//
// # Auth
//
// [AuthService] wraps the gateway's login, registration, logout and status probe, turning
// rejected forms into field errors with the fallback messages the UI shows.
//
// # Raw API
//
// [APIService] sends arbitrary requests through the gateway and returns non-2xx answers as
// responses instead of errors, for the `api` command.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNotAuthenticated] : session could not be recovered
//   - [shared.ErrNoteNotFound] : note id unknown to the backend
//   - [shared.ErrGenerateNotes] : note creation rejected or failed
//   - [shared.ErrInvalidURL] : not a YouTube watch URL
//   - [shared.ErrAPIRequest] : any other non-2xx answer
package services
