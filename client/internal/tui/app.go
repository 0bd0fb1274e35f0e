// Package tui hosts the client screens in a bubbletea program.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/remote"
	"github.com/Skotchmaster/inventory/client/internal/screens"
)

// outcomeMsg carries the result of a screen operation run off the event loop.
type outcomeMsg struct {
	from page
	out  screens.Outcome
	err  error
}

// navigateMsg is a transition delivered later. from is the page that asked
// for it; nil means the model itself.
type navigateMsg struct {
	t    screens.Transition
	from page
}

type bannerExpiredMsg struct {
	id int
}

type editRequestMsg struct {
	record inventory.Record
}

type page interface {
	Route() screens.Route
	// Focus runs whenever the page becomes the top of the stack.
	Focus(ctx context.Context) tea.Cmd
	Update(ctx context.Context, msg tea.Msg) tea.Cmd
	View(width int) string
	Help() []key.Binding
	// Capturing pages take every key, including the global tab keys.
	Capturing() bool
}

type Deps struct {
	Store      remote.Store
	Auth       remote.Auth
	Authorizer screens.SignupAuthorizer
	Timing     screens.Timing
}

type Model struct {
	ctx  context.Context
	deps Deps
	keys KeyMap

	stack []page

	banner   *screens.Notification
	bannerID int

	width int
}

func New(ctx context.Context, deps Deps) *Model {
	m := &Model{ctx: ctx, deps: deps, keys: DefaultKeyMap(), width: 80}
	m.stack = []page{m.newPage(screens.RouteLogin)}
	return m
}

func (m *Model) newPage(r screens.Route) page {
	switch r {
	case screens.RouteSignup:
		return newSignupPage(screens.NewSessionGate(m.deps.Auth, m.deps.Authorizer, m.deps.Timing), m.keys)
	case screens.RouteHome:
		return newHomePage(screens.NewListView(m.deps.Store, m.deps.Timing), m.keys)
	case screens.RouteAddItem:
		return newFormPage(screens.NewCreateForm(m.deps.Store, m.deps.Timing), m.keys)
	case screens.RouteProfile:
		return newProfilePage(screens.NewSessionDisplay(m.deps.Auth, m.deps.Timing), m.keys)
	default:
		return newLoginPage(screens.NewSessionGate(m.deps.Auth, m.deps.Authorizer, m.deps.Timing), m.keys)
	}
}

func (m *Model) top() page {
	return m.stack[len(m.stack)-1]
}

// Routes lists the stack from bottom to top.
func (m *Model) Routes() []screens.Route {
	out := make([]screens.Route, len(m.stack))
	for i, p := range m.stack {
		out[i] = p.Route()
	}
	return out
}

func (m *Model) Banner() *screens.Notification { return m.banner }

func (m *Model) Init() tea.Cmd {
	return m.top().Focus(m.ctx)
}

func (m *Model) authenticated() bool {
	switch m.stack[0].Route() {
	case screens.RouteLogin, screens.RouteSignup:
		return false
	}
	return true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.authenticated() && !m.top().Capturing() {
			switch {
			case key.Matches(msg, m.keys.TabHome):
				return m, m.switchTab(screens.RouteHome)
			case key.Matches(msg, m.keys.TabAdd):
				return m, m.switchTab(screens.RouteAddItem)
			case key.Matches(msg, m.keys.TabProfile):
				return m, m.switchTab(screens.RouteProfile)
			}
		}
		return m, m.top().Update(m.ctx, msg)

	case outcomeMsg:
		var pageCmd tea.Cmd
		if msg.from != nil {
			pageCmd = msg.from.Update(m.ctx, msg)
		}
		return m, tea.Batch(pageCmd, m.apply(msg.from, msg.out))

	case navigateMsg:
		return m, m.navigateFrom(msg.from, msg.t)

	case editRequestMsg:
		return m, m.push(newFormPage(screens.NewEditForm(m.deps.Store, msg.record, m.deps.Timing), m.keys))

	case bannerExpiredMsg:
		if msg.id == m.bannerID {
			m.banner = nil
		}
		return m, nil
	}

	return m, m.top().Update(m.ctx, msg)
}

// apply shows the notification and schedules the transition on behalf of from.
func (m *Model) apply(from page, out screens.Outcome) tea.Cmd {
	var cmds []tea.Cmd
	if n := out.Notification; n != nil {
		m.bannerID++
		m.banner = n
		id := m.bannerID
		visible := n.Visible
		if visible <= 0 {
			visible = m.deps.Timing.Banner
		}
		cmds = append(cmds, tea.Tick(visible, func(time.Time) tea.Msg { return bannerExpiredMsg{id: id} }))
	}
	if t := out.Transition; t != nil {
		if t.After > 0 {
			tr := *t
			cmds = append(cmds, tea.Tick(t.After, func(time.Time) tea.Msg { return navigateMsg{t: tr, from: from} }))
		} else {
			cmds = append(cmds, m.navigateFrom(from, *t))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) navigate(t screens.Transition) tea.Cmd {
	switch t.Kind {
	case screens.Push:
		return m.push(m.newPage(t.Route))
	case screens.Replace:
		m.stack[len(m.stack)-1] = m.newPage(t.Route)
	case screens.Reset:
		m.stack = []page{m.newPage(t.Route)}
	case screens.Back:
		if len(m.stack) == 1 {
			return nil
		}
		m.stack = m.stack[:len(m.stack)-1]
	}
	return m.top().Focus(m.ctx)
}

// navigateFrom applies t relative to the page that requested it. The user may
// have moved on since: a page no longer on the stack has its transition
// dropped, and Back removes that page wherever it sits.
func (m *Model) navigateFrom(from page, t screens.Transition) tea.Cmd {
	if from == nil {
		return m.navigate(t)
	}
	idx := -1
	for i, p := range m.stack {
		if p == from {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	onTop := idx == len(m.stack)-1

	switch t.Kind {
	case screens.Back:
		if idx == 0 {
			return nil
		}
		m.stack = append(m.stack[:idx], m.stack[idx+1:]...)
		if onTop {
			return m.top().Focus(m.ctx)
		}
		return nil
	case screens.Replace:
		m.stack[idx] = m.newPage(t.Route)
		if onTop {
			return m.top().Focus(m.ctx)
		}
		return nil
	case screens.Push:
		if !onTop {
			return nil
		}
	}
	return m.navigate(t)
}

func (m *Model) push(p page) tea.Cmd {
	m.stack = append(m.stack, p)
	return p.Focus(m.ctx)
}

// switchTab returns to a tab already on the stack or pushes it over Home.
func (m *Model) switchTab(r screens.Route) tea.Cmd {
	for i, p := range m.stack {
		if p.Route() == r {
			if i == len(m.stack)-1 {
				return nil
			}
			m.stack = m.stack[:i+1]
			return m.top().Focus(m.ctx)
		}
	}
	return m.navigate(screens.Transition{Kind: screens.Push, Route: r})
}

func (m *Model) View() string {
	var b strings.Builder

	if m.authenticated() {
		tabs := []screens.Route{screens.RouteHome, screens.RouteAddItem, screens.RouteProfile}
		cells := make([]string, 0, len(tabs))
		for i, r := range tabs {
			label := "F" + string(rune('1'+i)) + " " + r.String()
			if m.top().Route() == r {
				cells = append(cells, activeTab.Render(label))
			} else {
				cells = append(cells, inactiveTab.Render(label))
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n\n")
	}

	if n := m.banner; n != nil {
		style := successStyle
		if n.Kind == screens.KindError {
			style = errorStyle
		}
		b.WriteString(style.Render(lipgloss.NewStyle().Bold(true).Render(n.Title) + "\n" + n.Message))
		b.WriteString("\n")
	}

	b.WriteString(m.top().View(m.width))
	b.WriteString(helpStyle.Render(helpLine(append(m.top().Help(), m.keys.Quit))))
	return b.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// run adapts a screen operation to a tea.Cmd. The result goes back to from
// even if another page is on top by then.
func run(from page, op func() (screens.Outcome, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := op()
		return outcomeMsg{from: from, out: out, err: err}
	}
}

func navigateTo(t screens.Transition) tea.Cmd {
	return func() tea.Msg { return navigateMsg{t: t} }
}
