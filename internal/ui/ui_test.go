package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/navigation"
	"github.com/desertthunder/vidnexus/internal/session"
	"github.com/desertthunder/vidnexus/internal/shared"
)

type fakeSession struct {
	mu sync.Mutex
	ok bool
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ok
}

func (f *fakeSession) set(ok bool) {
	f.mu.Lock()
	f.ok = ok
	f.mu.Unlock()
}

type fakeAuthAPI struct {
	sess        *fakeSession
	probe       session.State
	fields      session.FieldErrors
	err         error
	logins      int
	registered  []models.Registration
	logoutCalls int
}

func (f *fakeAuthAPI) Status(ctx context.Context) session.State {
	f.sess.set(f.probe == session.Authenticated)
	return f.probe
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (session.FieldErrors, error) {
	f.logins++
	if f.err != nil {
		return f.fields, f.err
	}
	f.sess.set(true)
	return nil, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, reg models.Registration) (session.FieldErrors, error) {
	f.registered = append(f.registered, reg)
	if f.err != nil {
		return f.fields, f.err
	}
	f.sess.set(true)
	return nil, nil
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.logoutCalls++
	f.sess.set(false)
	return nil
}

type fakeNotesAPI struct {
	summaries []models.NoteSummary
	notes     map[int64]*models.Note
	createErr error
	gets      int
	deleted   []int64
}

func (f *fakeNotesAPI) List(ctx context.Context) ([]models.NoteSummary, error) {
	return f.summaries, nil
}

func (f *fakeNotesAPI) Create(ctx context.Context, url string) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n := &models.Note{ID: 99, YouTubeURL: url, CreatedAt: time.Now(), Summary: []string{"point"}}
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeNotesAPI) Get(ctx context.Context, id int64) (*models.Note, error) {
	f.gets++
	n, ok := f.notes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", shared.ErrNoteNotFound, id)
	}
	return n, nil
}

func (f *fakeNotesAPI) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func sampleNote() *models.Note {
	return &models.Note{
		ID:         1,
		YouTubeURL: "https://www.youtube.com/watch?v=abc123",
		CreatedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Summary:    []string{"First point", "Second point"},
		Flashcards: []models.Flashcard{
			{Front: "What is Go?", Back: "A programming language"},
			{Front: "Who made it?", Back: "Google"},
		},
		Quiz: []models.QuizItem{
			{Question: "Pick B", Options: []string{"one", "two", "three", "four"}, Answer: "B"},
			{Question: "Pick three", Options: []string{"one", "two", "three", "four"}, Answer: "three"},
		},
	}
}

type testEnv struct {
	m     *Model
	sess  *fakeSession
	auth  *fakeAuthAPI
	notes *fakeNotesAPI
	hist  *navigation.History
}

func newTestEnv(t *testing.T, start string, probe session.State) *testEnv {
	t.Helper()

	prev := renderMarkdown
	renderMarkdown = func(s string, _ int) (string, error) { return s, nil }
	t.Cleanup(func() { renderMarkdown = prev })

	note := sampleNote()
	older := models.NoteSummary{ID: 2, YouTubeURL: "https://www.youtube.com/watch?v=old", CreatedAt: note.CreatedAt.Add(-48 * time.Hour)}

	sess := &fakeSession{}
	env := &testEnv{
		sess:  sess,
		auth:  &fakeAuthAPI{sess: sess, probe: probe},
		notes: &fakeNotesAPI{summaries: []models.NoteSummary{older, note.AsSummary()}, notes: map[int64]*models.Note{1: note}},
		hist:  navigation.NewHistory(sess, navigation.RootPath),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env.m = NewModel(ctx, Options{History: env.hist, Session: sess, Notes: env.notes, Auth: env.auth, Start: start})
	env.m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return env
}

// probe runs the initial session probe and whatever the first screen loads.
func (e *testEnv) probe(t *testing.T) {
	t.Helper()
	e.run(t, e.m.probe())
}

// run executes cmd and feeds its message back into the model until the chain settles.
// Messages from bubbles components (blink, ticks) are dropped.
func (e *testEnv) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg, ok := cmd().(Msg)
		if !ok {
			return
		}
		_, cmd = e.m.Update(msg)
	}
}

func (e *testEnv) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = e.m.Update(keyMsg(k))
	}
	return cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModelLoading(t *testing.T) {
	env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)

	if !strings.Contains(env.m.View(), "Checking your session") {
		t.Errorf("expected loading screen before the probe, got %q", env.m.View())
	}

	if _, cmd := env.m.Update(keyMsg("n")); cmd != nil {
		t.Error("expected keys to be ignored while loading")
	}
	if env.hist.Len() != 1 {
		t.Errorf("expected no navigation before the probe, got %d entries", env.hist.Len())
	}

	if _, cmd := env.m.Update(keyMsg("ctrl+c")); cmd == nil {
		t.Error("expected ctrl+c to quit even while loading")
	}
}

func TestProbe(t *testing.T) {
	t.Run("Authenticated Start", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		if env.m.loc.Route.Name != navigation.RouteDashboard {
			t.Fatalf("expected dashboard, got %s", env.m.loc.Route.Name)
		}
		if len(env.m.allNotes) != 2 {
			t.Fatalf("expected notes to load, got %d", len(env.m.allNotes))
		}
		if !strings.Contains(env.m.View(), "My Notes (2)") {
			t.Errorf("expected note count in title, got %q", env.m.View())
		}
	})

	t.Run("Protected Start Redirects", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Unauthenticated)
		env.probe(t)

		if env.m.loc.Route.Name != navigation.RouteLogin {
			t.Fatalf("expected login, got %s", env.m.loc.Route.Name)
		}
		if !strings.Contains(env.m.View(), "Welcome back") {
			t.Errorf("expected login form, got %q", env.m.View())
		}
	})

	t.Run("Public Only Start Redirects", func(t *testing.T) {
		env := newTestEnv(t, navigation.SignupPath, session.Authenticated)
		env.probe(t)

		if env.m.loc.Route.Name != navigation.RouteDashboard {
			t.Errorf("expected dashboard, got %s", env.m.loc.Route.Name)
		}
	})
}

func TestRouteChanges(t *testing.T) {
	t.Run("Forced Login Redirect", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)
		// Drain the notifications from the model's own navigation.
		for len(env.m.routes) > 0 {
			<-env.m.routes
		}

		env.sess.set(false)
		env.hist.Replace(navigation.LoginPath)

		msg := env.m.waitForRoute()()
		env.m.Update(msg)

		if env.m.loc.Route.Name != navigation.RouteLogin {
			t.Fatalf("expected login after forced redirect, got %s", env.m.loc.Route.Name)
		}
		if env.m.form == nil || env.m.form.signup {
			t.Error("expected a fresh login form")
		}
	})

	t.Run("Own Navigation Is Not Entered Twice", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		_, cmd := env.m.Update(routeChangedMsg(env.hist.Current()))
		if cmd == nil {
			t.Fatal("expected the model to keep listening")
		}
		if env.m.loadingNotes {
			t.Error("expected no reload for the location already shown")
		}
	})

	t.Run("Ignored Before Probe", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.m.Update(routeChangedMsg(env.hist.Current()))

		if env.m.ready || env.m.loc.Route.Name != "" {
			t.Error("expected route changes to wait for the probe")
		}
	})
}

func TestLoginForm(t *testing.T) {
	t.Run("Field Errors", func(t *testing.T) {
		env := newTestEnv(t, navigation.LoginPath, session.Unauthenticated)
		env.probe(t)

		env.auth.err = errors.New("rejected")
		env.auth.fields = session.FieldErrors{
			session.NonFieldErrors: {"Invalid credentials. Please try again."},
			"password":             {"This field is required."},
		}

		env.m.form.fields[0].input.SetValue("alice")
		env.press(t, "enter")
		cmd := env.press(t, "enter")
		if !env.m.form.submitting {
			t.Fatal("expected the form to submit from the last field")
		}
		env.run(t, cmd)

		view := env.m.View()
		if !strings.Contains(view, "Invalid credentials. Please try again.") {
			t.Errorf("expected general error, got %q", view)
		}
		if !strings.Contains(view, "This field is required.") {
			t.Errorf("expected field error, got %q", view)
		}
		if env.m.loc.Route.Name != navigation.RouteLogin {
			t.Errorf("expected to stay on login, got %s", env.m.loc.Route.Name)
		}
	})

	t.Run("Success Opens Dashboard", func(t *testing.T) {
		env := newTestEnv(t, navigation.LoginPath, session.Unauthenticated)
		env.probe(t)

		env.m.form.fields[0].input.SetValue("alice")
		env.m.form.fields[1].input.SetValue("password123")
		env.m.form.setFocus(1)
		env.run(t, env.press(t, "enter"))

		if env.auth.logins != 1 {
			t.Errorf("expected one login, got %d", env.auth.logins)
		}
		if env.m.loc.Route.Name != navigation.RouteDashboard {
			t.Fatalf("expected dashboard, got %s", env.m.loc.Route.Name)
		}
		if len(env.m.allNotes) != 2 {
			t.Errorf("expected notes to load after login, got %d", len(env.m.allNotes))
		}
	})

	t.Run("Toggle To Signup", func(t *testing.T) {
		env := newTestEnv(t, navigation.LoginPath, session.Unauthenticated)
		env.probe(t)

		env.press(t, "ctrl+t")
		if env.m.loc.Route.Name != navigation.RouteSignup || !env.m.form.signup {
			t.Fatalf("expected signup form, got %s", env.m.loc.Route.Name)
		}
		if len(env.m.form.fields) != 4 {
			t.Errorf("expected four signup fields, got %d", len(env.m.form.fields))
		}

		env.press(t, "ctrl+t")
		if env.m.loc.Route.Name != navigation.RouteLogin {
			t.Errorf("expected login form, got %s", env.m.loc.Route.Name)
		}
	})
}

func TestSignupForm(t *testing.T) {
	env := newTestEnv(t, navigation.SignupPath, session.Unauthenticated)
	env.probe(t)

	env.auth.err = errors.New("rejected")
	env.auth.fields = session.FieldErrors{
		"username": {"A user with this username already exists."},
		"password": {"This password is too short. It must contain at least 8 characters."},
	}

	values := []string{"alice", "alice@example.com", "short", "short"}
	for i, v := range values {
		env.m.form.fields[i].input.SetValue(v)
	}
	env.m.form.setFocus(3)
	env.run(t, env.press(t, "enter"))

	if len(env.auth.registered) != 1 {
		t.Fatalf("expected one registration, got %d", len(env.auth.registered))
	}
	reg := env.auth.registered[0]
	if reg.Username != "alice" || reg.Email != "alice@example.com" || reg.Password2 != "short" {
		t.Errorf("unexpected registration: %+v", reg)
	}

	view := env.m.form.view()
	userIdx := strings.Index(view, "A user with this username already exists.")
	emailIdx := strings.Index(view, "Email")
	if userIdx < 0 || emailIdx < 0 || userIdx > emailIdx {
		t.Errorf("expected the username error under the username field, got %q", view)
	}
	if len(env.m.form.general()) != 0 {
		t.Errorf("expected no general errors, got %v", env.m.form.general())
	}
}

func TestDashboard(t *testing.T) {
	t.Run("Sort Cycle", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		first := func() int64 { return env.m.noteList.Items()[0].(noteItem).note.ID }
		if first() != 1 {
			t.Errorf("expected newest first, got %d", first())
		}

		env.press(t, "o")
		if env.m.order != models.SortOldest {
			t.Fatalf("expected oldest order, got %s", env.m.order)
		}
		if first() != 2 {
			t.Errorf("expected oldest first, got %d", first())
		}
		if !strings.Contains(env.m.noteList.Title, "sort: oldest") {
			t.Errorf("expected order in title, got %q", env.m.noteList.Title)
		}
	})

	t.Run("Open Note", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		env.run(t, env.press(t, "enter"))
		if env.m.loc.Path != "/notes/1" {
			t.Fatalf("expected note path, got %s", env.m.loc.Path)
		}
		if env.m.detail == nil || env.m.detail.note.ID != 1 {
			t.Fatal("expected note to load")
		}
		if !strings.Contains(env.m.View(), "Study Notes: abc123") {
			t.Errorf("expected note title, got %q", env.m.View())
		}
	})

	t.Run("Delete Confirm", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		env.press(t, "d")
		if env.m.confirm != confirmDelete || !strings.Contains(env.m.View(), "Delete note #1?") {
			t.Fatalf("expected delete prompt, got %q", env.m.View())
		}

		env.press(t, "n")
		if env.m.confirm != confirmNone || len(env.notes.deleted) != 0 {
			t.Fatal("expected n to cancel")
		}

		env.press(t, "d")
		env.run(t, env.press(t, "y"))
		if len(env.notes.deleted) != 1 || env.notes.deleted[0] != 1 {
			t.Fatalf("expected note 1 deleted, got %v", env.notes.deleted)
		}
		if len(env.m.allNotes) != 1 || env.m.noteList.Items()[0].(noteItem).note.ID != 2 {
			t.Error("expected deleted note removed from the list")
		}
		if env.m.status != "Deleted note #1" {
			t.Errorf("unexpected status %q", env.m.status)
		}
	})

	t.Run("Logout Confirm", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		env.press(t, "ctrl+o")
		if !strings.Contains(env.m.View(), "Are you sure you want to logout?") {
			t.Fatalf("expected logout prompt, got %q", env.m.View())
		}
		env.run(t, env.press(t, "y"))

		if env.auth.logoutCalls != 1 {
			t.Errorf("expected one logout, got %d", env.auth.logoutCalls)
		}
		if env.m.loc.Route.Name != navigation.RouteLanding {
			t.Errorf("expected landing after logout, got %s", env.m.loc.Route.Name)
		}
	})

	t.Run("New Note", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		env.press(t, "n")
		if env.m.loc.Route.Name != navigation.RouteLanding {
			t.Errorf("expected landing, got %s", env.m.loc.Route.Name)
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("Empty URL", func(t *testing.T) {
		env := newTestEnv(t, navigation.RootPath, session.Authenticated)
		env.probe(t)

		env.press(t, "enter")
		if env.m.generating {
			t.Error("expected no request for an empty URL")
		}
	})

	t.Run("Success Opens Note", func(t *testing.T) {
		env := newTestEnv(t, navigation.RootPath, session.Authenticated)
		env.probe(t)

		env.m.urlInput.SetValue("https://www.youtube.com/watch?v=new")
		cmd := env.press(t, "enter")
		if !env.m.generating {
			t.Fatal("expected generating state")
		}
		if !strings.Contains(env.m.View(), "Creating Your Study Notes...") {
			t.Errorf("expected loading tips, got %q", env.m.View())
		}

		batch, ok := cmd().(tea.BatchMsg)
		if !ok || len(batch) != 2 {
			t.Fatalf("expected create and tip commands, got %T", cmd())
		}
		env.run(t, batch[0])

		if env.m.loc.Path != "/notes/99" {
			t.Fatalf("expected new note path, got %s", env.m.loc.Path)
		}
		if env.notes.gets != 0 {
			t.Errorf("expected the created note to be shown without a fetch, got %d gets", env.notes.gets)
		}
		if env.m.urlInput.Value() != "" {
			t.Error("expected the input to reset")
		}
	})

	t.Run("Failure", func(t *testing.T) {
		env := newTestEnv(t, navigation.RootPath, session.Authenticated)
		env.probe(t)

		env.notes.createErr = fmt.Errorf("%w: boom", shared.ErrGenerateNotes)
		env.m.urlInput.SetValue("https://www.youtube.com/watch?v=bad")
		env.press(t, "enter")
		env.run(t, env.m.createNote("https://www.youtube.com/watch?v=bad"))

		if env.m.generating {
			t.Error("expected generating to stop")
		}
		if env.m.status != "Failed to generate notes. Please check the URL." || !env.m.statusErr {
			t.Errorf("unexpected status %q", env.m.status)
		}
		if env.m.loc.Route.Name != navigation.RouteLanding {
			t.Errorf("expected to stay on landing, got %s", env.m.loc.Route.Name)
		}
	})

	t.Run("Tips Rotate", func(t *testing.T) {
		env := newTestEnv(t, navigation.RootPath, session.Authenticated)
		env.probe(t)

		env.m.urlInput.SetValue("https://www.youtube.com/watch?v=new")
		env.press(t, "enter")

		env.m.Update(tipMsg(env.m.genSeq))
		if env.m.tip != 1 {
			t.Errorf("expected next tip, got %d", env.m.tip)
		}

		env.m.Update(tipMsg(env.m.genSeq - 1))
		if env.m.tip != 1 {
			t.Errorf("expected stale tick ignored, got %d", env.m.tip)
		}

		env.m.Update(noteCreatedMsg(nil, errors.New("failed")))
		env.m.Update(tipMsg(env.m.genSeq))
		if env.m.tip != 1 {
			t.Errorf("expected ticks to stop after generation, got %d", env.m.tip)
		}
	})

	t.Run("Unauthenticated Login Key", func(t *testing.T) {
		env := newTestEnv(t, navigation.RootPath, session.Unauthenticated)
		env.probe(t)

		if !strings.Contains(env.m.View(), "sign in") {
			t.Errorf("expected sign in hint, got %q", env.m.View())
		}
		env.press(t, "ctrl+d")
		if env.m.loc.Route.Name != navigation.RouteLogin {
			t.Errorf("expected guard to send the dashboard key to login, got %s", env.m.loc.Route.Name)
		}
	})
}

func TestNoteDetail(t *testing.T) {
	t.Run("Missing Note", func(t *testing.T) {
		env := newTestEnv(t, "/notes/42", session.Authenticated)
		env.probe(t)

		if !errors.Is(env.m.noteErr, shared.ErrNoteNotFound) {
			t.Fatalf("expected not found error, got %v", env.m.noteErr)
		}
		if !strings.Contains(env.m.View(), "Could not load this note.") {
			t.Errorf("unexpected view %q", env.m.View())
		}
	})

	t.Run("Invalid ID", func(t *testing.T) {
		env := newTestEnv(t, "/notes/abc", session.Authenticated)
		env.probe(t)

		if env.m.noteErr == nil || env.notes.gets != 0 {
			t.Errorf("expected a parse error without a fetch, got %v", env.m.noteErr)
		}
	})

	t.Run("Copy Summary", func(t *testing.T) {
		env := newTestEnv(t, "/notes/1", session.Authenticated)
		env.probe(t)

		var copied string
		prev := copyToClipboard
		copyToClipboard = func(s string) error { copied = s; return nil }
		t.Cleanup(func() { copyToClipboard = prev })

		env.run(t, env.press(t, "c"))
		if copied != "First point\n\nSecond point" {
			t.Errorf("unexpected clipboard text %q", copied)
		}
		if env.m.status != "Summary copied to clipboard!" {
			t.Errorf("unexpected status %q", env.m.status)
		}
	})

	t.Run("Modes", func(t *testing.T) {
		env := newTestEnv(t, "/notes/1", session.Authenticated)
		env.probe(t)

		if !strings.Contains(env.m.View(), "First point") {
			t.Errorf("expected summary first, got %q", env.m.View())
		}

		env.press(t, "tab")
		env.press(t, "space")
		if !strings.Contains(env.m.View(), "A programming language") {
			t.Errorf("expected flipped card, got %q", env.m.View())
		}

		env.press(t, "tab", "right", "enter", "r")
		view := env.m.View()
		if !strings.Contains(view, "Correct!") || !strings.Contains(view, "Score: 1/1") {
			t.Errorf("expected a scored answer, got %q", view)
		}

		env.press(t, "esc")
		if env.m.loc.Route.Name != navigation.RouteDashboard {
			t.Errorf("expected dashboard after esc, got %s", env.m.loc.Route.Name)
		}
	})
}

func TestStaleResults(t *testing.T) {
	t.Run("Note From Previous Route", func(t *testing.T) {
		env := newTestEnv(t, "/notes/1", session.Authenticated)
		env.probe(t)
		second := sampleNote()
		second.ID = 2
		env.notes.notes[2] = second

		late := env.m.loadNote(1)
		env.run(t, env.m.navigate("/notes/2"))
		if env.m.detail == nil || env.m.detail.note.ID != 2 {
			t.Fatal("expected note 2 to load")
		}

		env.m.Update(late())
		if env.m.loc.Path != "/notes/2" || env.m.detail.note.ID != 2 {
			t.Errorf("expected note 2 to stay on screen, got %s showing %d", env.m.loc.Path, env.m.detail.note.ID)
		}
	})

	t.Run("Note Keeps Loading For Current Route", func(t *testing.T) {
		env := newTestEnv(t, "/notes/1", session.Authenticated)
		env.probe(t)

		late := env.m.loadNote(1)
		env.m.navigate("/notes/3")
		env.m.Update(late())

		if !env.m.loadingNote || env.m.detail != nil {
			t.Errorf("expected the pending load for note 3 to remain, loading=%v", env.m.loadingNote)
		}
	})

	t.Run("List After Leaving Dashboard", func(t *testing.T) {
		env := newTestEnv(t, navigation.DashboardPath, session.Authenticated)
		env.probe(t)

		late := env.m.listNotes()
		env.m.navigate(navigation.RootPath)
		env.notes.summaries = append(env.notes.summaries, models.NoteSummary{ID: 7})
		env.m.Update(late())

		if len(env.m.allNotes) != 2 {
			t.Errorf("expected the late list to be ignored, got %d notes", len(env.m.allNotes))
		}
	})

	t.Run("Auth Result After Leaving Form", func(t *testing.T) {
		env := newTestEnv(t, navigation.LoginPath, session.Unauthenticated)
		env.probe(t)

		env.auth.err = errors.New("rejected")
		env.auth.fields = session.FieldErrors{"password": {"This field is required."}}
		late := env.m.submitForm()
		env.m.navigate(navigation.SignupPath)
		env.m.Update(late())

		if env.m.loc.Route.Name != navigation.RouteSignup {
			t.Fatalf("expected to stay on signup, got %s", env.m.loc.Route.Name)
		}
		if len(env.m.form.errs) != 0 {
			t.Errorf("expected the signup form to stay clean, got %v", env.m.form.errs)
		}
	})
}

func TestNoteView(t *testing.T) {
	t.Run("Mode Cycle", func(t *testing.T) {
		v := newNoteView(sampleNote())
		v.nextMode(1)
		v.nextMode(1)
		if v.mode != modeQuiz {
			t.Errorf("expected quiz, got %s", v.mode)
		}
		v.nextMode(1)
		if v.mode != modeSummary {
			t.Errorf("expected wrap to summary, got %s", v.mode)
		}
		v.nextMode(-1)
		if v.mode != modeQuiz {
			t.Errorf("expected wrap back to quiz, got %s", v.mode)
		}
	})

	t.Run("Flashcards", func(t *testing.T) {
		v := newNoteView(sampleNote())
		v.mode = modeFlashcards

		v.flip()
		if !v.flipped[0] {
			t.Error("expected first card flipped")
		}
		v.move(1)
		v.move(1)
		if v.card != 1 {
			t.Errorf("expected cursor clamped to last card, got %d", v.card)
		}
		if v.flipped[1] {
			t.Error("expected second card unflipped")
		}
		v.flip()
		v.flip()
		if v.flipped[1] {
			t.Error("expected second flip to turn the card back")
		}
	})

	t.Run("Quiz", func(t *testing.T) {
		v := newNoteView(sampleNote())
		v.mode = modeQuiz

		if v.reveal() {
			t.Error("expected reveal to need an answer")
		}

		v.choose()
		if !v.reveal() {
			t.Fatal("expected reveal after choosing")
		}
		if correct, revealed := v.score(); correct != 0 || revealed != 1 {
			t.Errorf("expected 0/1, got %d/%d", correct, revealed)
		}

		v.moveOption(1)
		v.choose()
		if v.selected[0] != "one" {
			t.Errorf("expected answer locked after reveal, got %q", v.selected[0])
		}

		v.move(1)
		if v.option != 0 {
			t.Errorf("expected option cursor reset, got %d", v.option)
		}
		v.moveOption(2)
		v.choose()
		v.reveal()
		if correct, revealed := v.score(); correct != 1 || revealed != 2 {
			t.Errorf("expected 1/2, got %d/%d", correct, revealed)
		}
		if !strings.Contains(v.renderQuiz(), "Correct!") {
			t.Error("expected text answers to be judged")
		}
	})

	t.Run("Empty Note", func(t *testing.T) {
		v := newNoteView(&models.Note{ID: 3})
		v.mode = modeFlashcards
		v.flip()
		v.move(1)
		if !strings.Contains(v.renderFlashcards(), "No flashcards") {
			t.Error("expected empty flashcards message")
		}

		v.mode = modeQuiz
		v.choose()
		if v.reveal() {
			t.Error("expected nothing to reveal")
		}
		if !strings.Contains(v.renderQuiz(), "No quiz questions") {
			t.Error("expected empty quiz message")
		}
	})
}

func TestNotFound(t *testing.T) {
	env := newTestEnv(t, "/nowhere", session.Unauthenticated)
	env.probe(t)

	if !strings.Contains(env.m.View(), "404") {
		t.Errorf("expected not found view, got %q", env.m.View())
	}

	env.press(t, "enter")
	if env.m.loc.Route.Name != navigation.RouteLanding {
		t.Errorf("expected landing, got %s", env.m.loc.Route.Name)
	}
}

func TestNoteItem(t *testing.T) {
	item := noteItem{note: sampleNote().AsSummary()}
	if item.Title() != "#1 • abc123" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if item.FilterValue() != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
	if !strings.Contains(item.Description(), "2025") {
		t.Errorf("expected date in description, got %q", item.Description())
	}
}
