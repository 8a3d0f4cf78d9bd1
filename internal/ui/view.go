package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/desertthunder/vidnexus/internal/navigation"
)

const brand = "VidNexus AI"

// View renders the screen for the current route.
func (m *Model) View() string {
	if !m.ready {
		return fmt.Sprintf("\n  %s Checking your session...\n", m.spinner.View())
	}

	var body string
	switch m.loc.Route.Name {
	case navigation.RouteLanding:
		body = m.renderLanding()
	case navigation.RouteLogin, navigation.RouteSignup:
		body = m.renderForm()
	case navigation.RouteDashboard:
		body = m.renderDashboard()
	case navigation.RouteNoteDetail:
		body = m.renderNote()
	default:
		body = m.renderNotFound()
	}

	var b strings.Builder
	b.WriteString(body)
	if prompt := m.renderConfirm(); prompt != "" {
		b.WriteString("\n\n")
		b.WriteString(prompt)
	}
	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(styles.err.Render(m.status))
		} else {
			b.WriteString(styles.ok.Render(m.status))
		}
	}
	return b.String()
}

func (m *Model) width80() int {
	if m.width <= 0 {
		return 80
	}
	if m.width > 10 {
		return m.width - 4
	}
	return m.width
}

func (m *Model) renderConfirm() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	switch m.confirm {
	case confirmLogout:
		return fmt.Sprintf("%s\n%s", styles.warn.Render("Are you sure you want to logout?"), helpView)
	case confirmDelete:
		if item, ok := m.noteList.SelectedItem().(noteItem); ok {
			return fmt.Sprintf("%s\n%s", styles.warn.Render(fmt.Sprintf("Delete note #%d?", item.note.ID)), helpView)
		}
	}
	return ""
}

func (m *Model) renderLanding() string {
	title := styles.title.Render(brand)

	if m.generating {
		dots := make([]string, len(loadingTips))
		for i := range loadingTips {
			if i == m.tip {
				dots[i] = styles.accent.Render("━━")
			} else {
				dots[i] = styles.help.Render("•")
			}
		}
		return fmt.Sprintf(
			"%s\n%s\n\n%s %s\n\n%s",
			title,
			styles.ok.Render("Creating Your Study Notes..."),
			m.spinner.View(),
			loadingTips[m.tip],
			strings.Join(dots, " "),
		)
	}

	intro := "Turn any YouTube video into a summary, flashcards and a quiz.\nPaste a video link and press enter."

	keys := []key.Binding{m.keys.enter, m.keys.notes}
	if m.isAuthenticated() {
		keys = append(keys, m.keys.logout)
	} else {
		keys = append(keys, m.keys.login)
	}
	keys = append(keys, m.keys.quit)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, intro, m.urlInput.View(), m.help.ShortHelpView(keys))
}

func (m *Model) renderForm() string {
	if m.form == nil {
		return ""
	}

	next := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit"))
	toggle := m.keys.toggle
	if m.form.signup {
		toggle.SetHelp("ctrl+t", "have an account? sign in")
	} else {
		toggle.SetHelp("ctrl+t", "new here? sign up")
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.tab, next, toggle, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s", m.form.view(), helpView)
}

func (m *Model) renderDashboard() string {
	if m.loadingNotes {
		return fmt.Sprintf("%s\n\n%s Loading your notes...", styles.title.Render("My Notes"), m.spinner.View())
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.newNote, m.keys.sort, m.keys.remove, m.keys.logout, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if len(m.allNotes) == 0 {
		empty := "You have no notes yet. Press n to turn a video into study notes."
		return fmt.Sprintf("%s\n\n%s\n\n%s", styles.title.Render("My Notes"), styles.help.Render(empty), helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.noteList.View(), helpView)
}

func (m *Model) renderNote() string {
	helpView := m.help.ShortHelpView(m.noteHelp())

	switch {
	case m.loadingNote:
		return fmt.Sprintf("%s Loading note...", m.spinner.View())
	case m.noteErr != nil:
		return fmt.Sprintf(
			"%s\n%s\n\n%s",
			styles.err.Render("Could not load this note."),
			styles.help.Render(m.noteErr.Error()),
			m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit}),
		)
	case m.detail == nil:
		return ""
	}
	return fmt.Sprintf("%s\n\n%s", m.detail.view(m.width80()), helpView)
}

func (m *Model) noteHelp() []key.Binding {
	keys := []key.Binding{m.keys.tab}
	if m.detail != nil {
		switch m.detail.mode {
		case modeSummary:
			keys = append(keys, m.keys.copy)
		case modeFlashcards:
			keys = append(keys, m.keys.left, m.keys.right, m.keys.flip)
		case modeQuiz:
			keys = append(keys, m.keys.up, m.keys.down, m.keys.left, m.keys.right, m.keys.enter, m.keys.reveal)
		}
	}
	return append(keys, m.keys.back, m.keys.quit)
}

func (m *Model) renderNotFound() string {
	home := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "home"))
	return fmt.Sprintf(
		"%s\n%s\n\n%s",
		styles.title.Render("404"),
		fmt.Sprintf("Nothing lives at %s.", m.loc.Path),
		m.help.ShortHelpView([]key.Binding{home, m.keys.back, m.keys.quit}),
	)
}
