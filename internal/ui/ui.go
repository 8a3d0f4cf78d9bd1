package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/navigation"
	"github.com/desertthunder/vidnexus/internal/services"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
)

// tipInterval is how long each loading tip stays up while notes are generated.
const tipInterval = 2500 * time.Millisecond

var loadingTips = []string{
	"🎬 Fetching transcript from YouTube...",
	"🧠 Analyzing key concepts with AI...",
	"📝 Generating comprehensive summary...",
	"🎯 Creating quiz questions...",
	"✨ Organizing flashcards for you...",
	"💡 Did you know? Spaced repetition helps you remember 80% more.",
	"🔍 Extracting important details from video...",
	"📊 Breaking down content into digestible chunks...",
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// NotesAPI is the notes surface the TUI drives. Implemented by [services.NotesService].
type NotesAPI interface {
	List(ctx context.Context) ([]models.NoteSummary, error)
	Create(ctx context.Context, youtubeURL string) (*models.Note, error)
	Get(ctx context.Context, id int64) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

// AuthAPI is the auth surface the TUI drives. Implemented by [services.AuthService].
type AuthAPI interface {
	Status(ctx context.Context) session.State
	Login(ctx context.Context, username, password string) (session.FieldErrors, error)
	Register(ctx context.Context, reg models.Registration) (session.FieldErrors, error)
	Logout(ctx context.Context) error
}

// Options configures a [Model].
type Options struct {
	History *navigation.History
	Session navigation.Authenticator
	Notes   NotesAPI
	Auth    AuthAPI
	// Start is the first path shown once the session probe completes. Defaults to "/".
	Start string
}

// confirmKind is the pending yes/no prompt, if any.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmLogout
	confirmDelete
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	history *navigation.History
	session navigation.Authenticator
	notes   NotesAPI
	auth    AuthAPI
	start   string
	routes  chan navigation.Location

	ready  bool
	loc    navigation.Location
	width  int
	height int

	status    string
	statusErr bool
	confirm   confirmKind

	urlInput   textinput.Model
	generating bool
	genSeq     int
	tip        int

	form *authForm

	noteList     list.Model
	allNotes     []models.NoteSummary
	order        models.SortOrder
	loadingNotes bool

	detail      *noteView
	loadingNote bool
	noteErr     error

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The model follows every change of the history, including redirects the session gateway
// forces when a session expires.
func NewModel(ctx context.Context, opts Options) *Model {
	start := opts.Start
	if start == "" {
		start = navigation.RootPath
	}

	in := textinput.New()
	in.Placeholder = "https://www.youtube.com/watch?v=..."
	in.Prompt = "▶ "
	in.CharLimit = 2048
	in.Width = 60
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.accent

	nl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	nl.Title = "My Notes"
	nl.SetShowHelp(false)

	m := &Model{
		ctx:      ctx,
		history:  opts.History,
		session:  opts.Session,
		notes:    opts.Notes,
		auth:     opts.Auth,
		start:    start,
		routes:   make(chan navigation.Location, 16),
		urlInput: in,
		noteList: nl,
		order:    models.SortNewest,
		spinner:  sp,
		help:     help.New(),
		keys:     newKeyMap(),
	}

	m.history.OnChange(func(loc navigation.Location) {
		select {
		case m.routes <- loc:
		default:
			// A pending notification already makes the model re-read the history.
		}
	})
	return m
}

// Init probes the session and starts listening for route changes.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.probe(), m.waitForRoute())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.noteList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		if !m.ready {
			return m, nil
		}
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateComponents(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgProbed:
		m.ready = true
		m.history.Replace(m.start)
		return m, m.enter(m.history.Current())

	case MsgRouteChanged:
		cmds := []tea.Cmd{m.waitForRoute()}
		if m.ready {
			loc := m.history.Current()
			if loc.Path != m.loc.Path || loc.Route.Name != m.loc.Route.Name {
				cmds = append(cmds, m.enter(loc))
			}
		}
		return m, tea.Batch(cmds...)

	case MsgNotesListed:
		data := msg.data.(struct {
			notes []models.NoteSummary
			err   error
		})
		if m.loc.Route.Name != navigation.RouteDashboard {
			return m, nil
		}
		m.loadingNotes = false
		if data.err != nil {
			m.setError("Failed to load notes", data.err)
			return m, nil
		}
		m.allNotes = data.notes
		m.refreshList()
		return m, nil

	case MsgNoteLoaded:
		data := msg.data.(noteResult)
		if !m.showingNote(data.id) {
			return m, nil
		}
		m.loadingNote = false
		if data.err != nil {
			m.noteErr = data.err
			return m, nil
		}
		m.noteErr = nil
		m.detail = newNoteView(data.note)
		return m, nil

	case MsgNoteCreated:
		data := msg.data.(noteResult)
		m.generating = false
		if m.loc.Route.Name != navigation.RouteLanding {
			return m, nil
		}
		if data.err != nil {
			if errors.Is(data.err, shared.ErrInvalidURL) {
				m.setError("Please enter a YouTube video URL", nil)
			} else {
				m.setError("Failed to generate notes. Please check the URL.", nil)
			}
			return m, nil
		}
		m.urlInput.Reset()
		m.detail = newNoteView(data.note)
		return m, m.navigate(navigation.NotePath(fmt.Sprint(data.note.ID)))

	case MsgNoteDeleted:
		data := msg.data.(struct {
			id  int64
			err error
		})
		if data.err != nil {
			m.setError("Failed to delete note", data.err)
			return m, nil
		}
		kept := make([]models.NoteSummary, 0, len(m.allNotes))
		for _, n := range m.allNotes {
			if n.ID != data.id {
				kept = append(kept, n)
			}
		}
		m.allNotes = kept
		m.refreshList()
		m.setStatus(fmt.Sprintf("Deleted note #%d", data.id))
		return m, nil

	case MsgAuthFinished:
		data := msg.data.(authResult)
		if m.form == nil || data.form != m.form {
			return m, nil
		}
		if name := m.loc.Route.Name; name != navigation.RouteLogin && name != navigation.RouteSignup {
			return m, nil
		}
		m.form.submitting = false
		switch {
		case data.err == nil:
			return m, m.navigate(navigation.DashboardPath)
		case len(data.fields) > 0:
			m.form.errs = data.fields
		default:
			m.setError("Could not reach the server", data.err)
		}
		return m, nil

	case MsgLoggedOut:
		return m, m.navigate(navigation.RootPath)

	case MsgTip:
		if !m.generating || msg.data.(int) != m.genSeq {
			return m, nil
		}
		m.tip = (m.tip + 1) % len(loadingTips)
		return m, m.tipTick()

	case MsgCopied:
		if err, _ := msg.data.(error); err != nil {
			m.setError("Failed to copy summary", err)
		} else {
			m.setStatus("Summary copied to clipboard!")
		}
		return m, nil
	}
	return m, nil
}

// enter shows loc and starts whatever loading its screen needs.
func (m *Model) enter(loc navigation.Location) tea.Cmd {
	m.loc = loc
	m.confirm = confirmNone
	m.clearStatus()

	switch loc.Route.Name {
	case navigation.RouteLanding:
		m.urlInput.Focus()
		return textinput.Blink
	case navigation.RouteLogin, navigation.RouteSignup:
		m.form = newAuthForm(loc.Route.Name == navigation.RouteSignup)
		return textinput.Blink
	case navigation.RouteDashboard:
		m.loadingNotes = true
		return m.listNotes()
	case navigation.RouteNoteDetail:
		id, err := services.ParseNoteID(loc.Param("id"))
		if err != nil {
			m.detail, m.noteErr = nil, err
			return nil
		}
		m.noteErr = nil
		if m.detail != nil && m.detail.note.ID == id {
			return nil
		}
		m.detail = nil
		m.loadingNote = true
		return m.loadNote(id)
	}
	return nil
}

// showingNote reports whether the detail screen for id is the one on display.
func (m *Model) showingNote(id int64) bool {
	if m.loc.Route.Name != navigation.RouteNoteDetail {
		return false
	}
	current, err := services.ParseNoteID(m.loc.Param("id"))
	return err == nil && current == id
}

// navigate pushes path through the guards and shows wherever they land.
func (m *Model) navigate(path string) tea.Cmd {
	return m.enter(m.history.Push(path))
}

func (m *Model) back() tea.Cmd {
	return m.enter(m.history.Back())
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != confirmNone {
		return m.handleConfirmKeys(msg)
	}

	switch m.loc.Route.Name {
	case navigation.RouteLanding:
		return m.handleLandingKeys(msg)
	case navigation.RouteLogin, navigation.RouteSignup:
		return m.handleFormKeys(msg)
	case navigation.RouteDashboard:
		return m.handleDashboardKeys(msg)
	case navigation.RouteNoteDetail:
		return m.handleNoteKeys(msg)
	default:
		return m.handleNotFoundKeys(msg)
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		kind := m.confirm
		m.confirm = confirmNone
		switch kind {
		case confirmLogout:
			return m, m.logout()
		case confirmDelete:
			if item, ok := m.noteList.SelectedItem().(noteItem); ok {
				return m, m.deleteNote(item.note.ID)
			}
		}
	case key.Matches(msg, m.keys.no):
		m.confirm = confirmNone
	}
	return m, nil
}

func (m *Model) handleLandingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.generating {
		return m, nil
	}

	authenticated := m.isAuthenticated()
	switch {
	case key.Matches(msg, m.keys.enter):
		url := strings.TrimSpace(m.urlInput.Value())
		if url == "" {
			return m, nil
		}
		m.clearStatus()
		m.generating = true
		m.genSeq++
		m.tip = 0
		return m, tea.Batch(m.createNote(url), m.tipTick())
	case key.Matches(msg, m.keys.notes):
		return m, m.navigate(navigation.DashboardPath)
	case key.Matches(msg, m.keys.login) && !authenticated:
		return m, m.navigate(navigation.LoginPath)
	case key.Matches(msg, m.keys.logout) && authenticated:
		m.confirm = confirmLogout
		return m, nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form.submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.navigate(navigation.RootPath)
	case key.Matches(msg, m.keys.toggle):
		if m.form.signup {
			return m, m.navigate(navigation.LoginPath)
		}
		return m, m.navigate(navigation.SignupPath)
	}

	submit, cmd := m.form.update(msg)
	if !submit {
		return m, cmd
	}

	m.form.errs = nil
	m.form.submitting = true
	m.clearStatus()
	return m, m.submitForm()
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.noteList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.noteList, cmd = m.noteList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			return m, m.navigate(navigation.NotePath(fmt.Sprint(item.note.ID)))
		}
		return m, nil
	case key.Matches(msg, m.keys.newNote):
		return m, m.navigate(navigation.RootPath)
	case key.Matches(msg, m.keys.sort):
		m.order = m.order.Next()
		m.refreshList()
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if _, ok := m.noteList.SelectedItem().(noteItem); ok {
			m.confirm = confirmDelete
		}
		return m, nil
	case key.Matches(msg, m.keys.logout):
		m.confirm = confirmLogout
		return m, nil
	}

	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

func (m *Model) handleNoteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.back) {
		return m, m.navigate(navigation.DashboardPath)
	}
	if msg.String() == "q" {
		return m, tea.Quit
	}

	v := m.detail
	if v == nil {
		return m, nil
	}

	switch {
	case msg.String() == "shift+tab":
		v.nextMode(-1)
	case key.Matches(msg, m.keys.tab):
		v.nextMode(1)
	case key.Matches(msg, m.keys.up):
		v.move(-1)
	case key.Matches(msg, m.keys.down):
		v.move(1)
	case key.Matches(msg, m.keys.left):
		if v.mode == modeQuiz {
			v.moveOption(-1)
		} else {
			v.move(-1)
		}
	case key.Matches(msg, m.keys.right):
		if v.mode == modeQuiz {
			v.moveOption(1)
		} else {
			v.move(1)
		}
	case key.Matches(msg, m.keys.flip):
		v.flip()
	case key.Matches(msg, m.keys.enter):
		v.choose()
	case key.Matches(msg, m.keys.reveal):
		v.reveal()
	case key.Matches(msg, m.keys.copy):
		if v.mode == modeSummary {
			return m, m.copySummary()
		}
	}
	return m, nil
}

func (m *Model) handleNotFoundKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		return m, m.back()
	case key.Matches(msg, m.keys.enter):
		return m, m.navigate(navigation.RootPath)
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.loc.Route.Name {
	case navigation.RouteLanding:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case navigation.RouteDashboard:
		m.noteList, cmd = m.noteList.Update(msg)
	case navigation.RouteLogin, navigation.RouteSignup:
		if m.form != nil {
			m.form.fields[m.form.focus].input, cmd = m.form.fields[m.form.focus].input.Update(msg)
		}
	}
	return m, cmd
}

func (m *Model) refreshList() {
	sorted := models.SortNotes(m.allNotes, m.order)
	m.noteList.SetItems(noteItems(sorted))
	m.noteList.Title = fmt.Sprintf("My Notes (%d) • sort: %s", len(sorted), m.order)
}

func (m *Model) isAuthenticated() bool {
	return m.session != nil && m.session.IsAuthenticated()
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string, err error) {
	if err != nil {
		s = fmt.Sprintf("%s: %v", s, err)
	}
	m.status, m.statusErr = s, true
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

func (m *Model) probe() tea.Cmd {
	return func() tea.Msg {
		return probedMsg(m.auth.Status(m.ctx))
	}
}

func (m *Model) waitForRoute() tea.Cmd {
	return func() tea.Msg {
		select {
		case loc := <-m.routes:
			return routeChangedMsg(loc)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) listNotes() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.notes.List(m.ctx)
		return notesListedMsg(notes, err)
	}
}

func (m *Model) loadNote(id int64) tea.Cmd {
	return func() tea.Msg {
		note, err := m.notes.Get(m.ctx, id)
		return noteLoadedMsg(id, note, err)
	}
}

func (m *Model) createNote(url string) tea.Cmd {
	return func() tea.Msg {
		note, err := m.notes.Create(m.ctx, url)
		return noteCreatedMsg(note, err)
	}
}

func (m *Model) deleteNote(id int64) tea.Cmd {
	return func() tea.Msg {
		return noteDeletedMsg(id, m.notes.Delete(m.ctx, id))
	}
}

func (m *Model) submitForm() tea.Cmd {
	form := m.form
	return func() tea.Msg {
		if form.signup {
			fields, err := m.auth.Register(m.ctx, form.registration())
			return authFinishedMsg(form, fields, err)
		}
		username, password := form.credentials()
		fields, err := m.auth.Login(m.ctx, username, password)
		return authFinishedMsg(form, fields, err)
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		return loggedOutMsg(m.auth.Logout(m.ctx))
	}
}

func (m *Model) tipTick() tea.Cmd {
	seq := m.genSeq
	return tea.Tick(tipInterval, func(time.Time) tea.Msg {
		return tipMsg(seq)
	})
}

func (m *Model) copySummary() tea.Cmd {
	text := m.detail.note.SummaryText()
	return func() tea.Msg {
		return copiedMsg(copyToClipboard(text))
	}
}
