// Package ui implements an interactive terminal client using bubbletea's Elm architecture.
//
// Every screen is bound to a client route from package navigation:
//  1. landing ("/"): paste a YouTube URL and generate study notes, with rotating tips while the backend works
//  2. login and signup: forms with the backend's field errors shown under each field
//  3. dashboard: the user's notes with sort (o), filter (/) and delete (d)
//  4. note detail: summary, flashcards (flip with space) and quiz (select, check, score) as exclusive modes
//  5. not found: any other path
//
// The [Model] waits for the initial session probe before showing anything. It then follows the
// [navigation.History], so guard redirects and the login redirect the session gateway forces on an
// expired session switch the screen without the model asking for it.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l, enter, esc, y/n) with contextual help displayed via charmbracelet/bubbles/help.
package ui
