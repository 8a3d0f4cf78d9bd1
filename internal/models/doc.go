// Package models defines the payloads exchanged with the VidNexus notes API and the pure helpers built on them.
//
// # Notes
//
//   - [NoteSummary] : one row of the notes list (id, source video, creation time)
//   - [Note] : a generated study note with its summary, [Flashcard] deck and [QuizItem] questions
//
// Quiz answers arrive either as an option letter ("B") or as the literal option text;
// [QuizItem.CorrectOption] and [QuizItem.IsCorrect] normalise both forms.
//
// # Auth
//
// [Credentials] and [Registration] are the request bodies for the login and register endpoints.
//
// # Helpers
//
// [VideoID] and [ThumbnailURL] derive display data from a note's YouTube URL.
// [SortNotes] and [FilterNotes] implement the dashboard orderings and search.
package models
