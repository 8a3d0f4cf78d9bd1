package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/navigation"
	"github.com/desertthunder/vidnexus/internal/session"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProbed MsgKind = iota
	MsgRouteChanged
	MsgNotesListed
	MsgNoteLoaded
	MsgNoteCreated
	MsgNoteDeleted
	MsgAuthFinished
	MsgLoggedOut
	MsgTip
	MsgCopied
)

// noteResult carries the id that was requested so late answers can be matched to the screen.
type noteResult struct {
	id   int64
	note *models.Note
	err  error
}

// authResult remembers the form that submitted it.
type authResult struct {
	form   *authForm
	fields session.FieldErrors
	err    error
}

// probedMsg is the constructor for [MsgProbed]
func probedMsg(state session.State) Msg {
	return Msg{kind: MsgProbed, data: state}
}

// routeChangedMsg is the constructor for [MsgRouteChanged]
func routeChangedMsg(loc navigation.Location) Msg {
	return Msg{kind: MsgRouteChanged, data: loc}
}

// notesListedMsg is the constructor for [MsgNotesListed]
func notesListedMsg(notes []models.NoteSummary, err error) Msg {
	return Msg{
		kind: MsgNotesListed,
		data: struct {
			notes []models.NoteSummary
			err   error
		}{notes, err},
	}
}

// noteLoadedMsg is the constructor for [MsgNoteLoaded]
func noteLoadedMsg(id int64, note *models.Note, err error) Msg {
	return Msg{kind: MsgNoteLoaded, data: noteResult{id, note, err}}
}

// noteCreatedMsg is the constructor for [MsgNoteCreated]
func noteCreatedMsg(note *models.Note, err error) Msg {
	return Msg{kind: MsgNoteCreated, data: noteResult{note: note, err: err}}
}

// noteDeletedMsg is the constructor for [MsgNoteDeleted]
func noteDeletedMsg(id int64, err error) Msg {
	return Msg{
		kind: MsgNoteDeleted,
		data: struct {
			id  int64
			err error
		}{id, err},
	}
}

// authFinishedMsg is the constructor for [MsgAuthFinished]
func authFinishedMsg(form *authForm, fields session.FieldErrors, err error) Msg {
	return Msg{kind: MsgAuthFinished, data: authResult{form, fields, err}}
}

// loggedOutMsg is the constructor for [MsgLoggedOut]
func loggedOutMsg(err error) Msg {
	return Msg{kind: MsgLoggedOut, data: err}
}

// tipMsg is the constructor for [MsgTip]. seq ties the tick to one generation request.
func tipMsg(seq int) Msg {
	return Msg{kind: MsgTip, data: seq}
}

// copiedMsg is the constructor for [MsgCopied]
func copiedMsg(err error) Msg {
	return Msg{kind: MsgCopied, data: err}
}
