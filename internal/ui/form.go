package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vidnexus/internal/models"
	"github.com/desertthunder/vidnexus/internal/session"
)

type formField struct {
	name  string
	label string
	input textinput.Model
}

// authForm is the login or signup form. Field errors from the backend render under
// the field they name; anything else shows above the form.
type authForm struct {
	signup     bool
	fields     []formField
	focus      int
	errs       session.FieldErrors
	submitting bool
}

func newField(name, label string, secret bool) formField {
	in := textinput.New()
	in.Prompt = "  "
	in.CharLimit = 150
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
		in.CharLimit = 128
	}
	if name == "email" {
		in.CharLimit = 254
	}
	return formField{name: name, label: label, input: in}
}

func newAuthForm(signup bool) *authForm {
	f := &authForm{signup: signup}
	if signup {
		f.fields = []formField{
			newField("username", "Username", false),
			newField("email", "Email", false),
			newField("password", "Password", true),
			newField("password2", "Confirm password", true),
		}
	} else {
		f.fields = []formField{
			newField("username", "Username", false),
			newField("password", "Password", true),
		}
	}
	f.fields[0].input.Focus()
	return f
}

func (f *authForm) value(name string) string {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.input.Value()
		}
	}
	return ""
}

func (f *authForm) credentials() (string, string) {
	return f.value("username"), f.value("password")
}

func (f *authForm) registration() models.Registration {
	return models.Registration{
		Username:  f.value("username"),
		Email:     f.value("email"),
		Password:  f.value("password"),
		Password2: f.value("password2"),
	}
}

func (f *authForm) setFocus(i int) {
	n := len(f.fields)
	f.focus = ((i % n) + n) % n
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

func (f *authForm) last() bool {
	return f.focus == len(f.fields)-1
}

// update moves focus or edits the focused input. It reports true when the form should submit.
func (f *authForm) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return false, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return false, nil
	case "enter":
		if f.last() {
			return true, nil
		}
		f.setFocus(f.focus + 1)
		return false, nil
	}

	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, cmd
}

// general returns messages not tied to a form field.
func (f *authForm) general() []string {
	var out []string
	for _, key := range f.errs.Fields() {
		if slices.ContainsFunc(f.fields, func(fld formField) bool { return fld.name == key }) {
			continue
		}
		out = append(out, f.errs[key]...)
	}
	return out
}

func (f *authForm) view() string {
	var b strings.Builder
	if f.signup {
		b.WriteString(styles.title.Render("Create your account"))
	} else {
		b.WriteString(styles.title.Render("Welcome back"))
	}
	b.WriteString("\n")

	for _, msg := range f.general() {
		b.WriteString(styles.err.Render(msg))
		b.WriteString("\n")
	}
	if len(f.general()) > 0 {
		b.WriteString("\n")
	}

	for i, fld := range f.fields {
		label := fld.label
		if i == f.focus {
			label = styles.accent.Render(label)
		}
		fmt.Fprintf(&b, "%s\n%s\n", label, fld.input.View())
		for _, msg := range f.errs[fld.name] {
			b.WriteString(styles.err.Render("  " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if f.submitting {
		if f.signup {
			b.WriteString(styles.warn.Render("Creating account..."))
		} else {
			b.WriteString(styles.warn.Render("Signing in..."))
		}
		b.WriteString("\n")
	}
	return b.String()
}
