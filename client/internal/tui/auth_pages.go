package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Skotchmaster/inventory/client/internal/screens"
)

type loginPage struct {
	gate   *screens.SessionGate
	keys   KeyMap
	fields *fieldSet
	busy   bool
}

func newLoginPage(gate *screens.SessionGate, keys KeyMap) *loginPage {
	p := &loginPage{gate: gate, keys: keys, fields: newFieldSet("Email", "Password")}
	p.fields.setEcho(1, true)
	return p
}

func (p *loginPage) Route() screens.Route { return screens.RouteLogin }
func (p *loginPage) Focus(context.Context) tea.Cmd { return nil }
func (p *loginPage) Capturing() bool { return false }

func (p *loginPage) Help() []key.Binding {
	return []key.Binding{p.keys.Submit, p.keys.NextField, p.keys.TogglePass, p.keys.SwitchAuth}
}

func (p *loginPage) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg:
		p.busy = false
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.TogglePass):
			p.fields.setEcho(1, !p.gate.TogglePasswordVisible())
			return nil
		case key.Matches(msg, p.keys.SwitchAuth):
			return navigateTo(screens.Transition{Kind: screens.Replace, Route: screens.RouteSignup})
		case key.Matches(msg, p.keys.NextField):
			return p.fields.move(1)
		case key.Matches(msg, p.keys.PrevField):
			return p.fields.move(-1)
		case key.Matches(msg, p.keys.Submit):
			if p.busy {
				return nil
			}
			p.busy = true
			email, password := p.fields.value(0), p.fields.value(1)
			return run(p, func() (screens.Outcome, error) { return p.gate.SignIn(ctx, email, password) })
		}
	}
	return p.fields.update(ctx, msg)
}

func (p *loginPage) View(int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory Login"))
	b.WriteString("\n")
	b.WriteString(p.fields.view())
	if p.busy {
		b.WriteString(faintStyle.Render("Signing in..."))
		b.WriteString("\n")
	}
	return b.String()
}

type signupPage struct {
	gate   *screens.SessionGate
	keys   KeyMap
	fields *fieldSet
	busy   bool
}

func newSignupPage(gate *screens.SessionGate, keys KeyMap) *signupPage {
	p := &signupPage{
		gate:   gate,
		keys:   keys,
		fields: newFieldSet("Email", "Password", "Confirm Password", "Admin Password"),
	}
	for i := 1; i < 4; i++ {
		p.fields.setEcho(i, true)
	}
	return p
}

func (p *signupPage) Route() screens.Route { return screens.RouteSignup }
func (p *signupPage) Focus(context.Context) tea.Cmd { return nil }
func (p *signupPage) Capturing() bool { return false }

func (p *signupPage) Help() []key.Binding {
	return []key.Binding{p.keys.Submit, p.keys.NextField, p.keys.TogglePass, p.keys.SwitchAuth}
}

func (p *signupPage) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg:
		p.busy = false
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.TogglePass):
			hidden := !p.gate.TogglePasswordVisible()
			p.fields.setEcho(1, hidden)
			p.fields.setEcho(2, hidden)
			return nil
		case key.Matches(msg, p.keys.SwitchAuth):
			return navigateTo(screens.Transition{Kind: screens.Replace, Route: screens.RouteLogin})
		case key.Matches(msg, p.keys.NextField):
			return p.fields.move(1)
		case key.Matches(msg, p.keys.PrevField):
			return p.fields.move(-1)
		case key.Matches(msg, p.keys.Submit):
			if p.busy {
				return nil
			}
			p.busy = true
			email, password := p.fields.value(0), p.fields.value(1)
			confirm, gatePassword := p.fields.value(2), p.fields.value(3)
			return run(p, func() (screens.Outcome, error) {
				return p.gate.SignUp(ctx, email, password, confirm, gatePassword)
			})
		}
	}
	return p.fields.update(ctx, msg)
}

func (p *signupPage) View(int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Account"))
	b.WriteString("\n")
	b.WriteString(p.fields.view())
	if p.busy {
		b.WriteString(faintStyle.Render("Creating account..."))
		b.WriteString("\n")
	}
	return b.String()
}

type profilePage struct {
	display *screens.SessionDisplay
	keys    KeyMap
	busy    bool
	loaded  bool
}

func newProfilePage(display *screens.SessionDisplay, keys KeyMap) *profilePage {
	return &profilePage{display: display, keys: keys}
}

func (p *profilePage) Route() screens.Route { return screens.RouteProfile }
func (p *profilePage) Capturing() bool { return false }

func (p *profilePage) Help() []key.Binding {
	return []key.Binding{p.keys.SignOut, p.keys.TabHome, p.keys.TabAdd}
}

// Focus mounts once per page instance.
func (p *profilePage) Focus(ctx context.Context) tea.Cmd {
	if p.loaded {
		return nil
	}
	p.loaded = true
	return run(p, func() (screens.Outcome, error) { return p.display.Mount(ctx) })
}

func (p *profilePage) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg:
		p.busy = false
	case tea.KeyMsg:
		if key.Matches(msg, p.keys.SignOut) && !p.busy {
			p.busy = true
			return run(p, func() (screens.Outcome, error) { return p.display.SignOut(ctx) })
		}
	}
	return nil
}

func (p *profilePage) View(int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n")
	if u, ok := p.display.User(); ok {
		b.WriteString(labelStyle.Render("Email: "))
		b.WriteString(u.Email)
	} else {
		b.WriteString(faintStyle.Render("Loading..."))
	}
	b.WriteString("\n")
	return b.String()
}
