package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Skotchmaster/inventory/client/internal/inventory"
	"github.com/Skotchmaster/inventory/client/internal/screens"
)

type homePage struct {
	list      *screens.ListView
	keys      KeyMap
	search    textinput.Model
	searching bool
	cursor    int
	busy      bool
}

func newHomePage(list *screens.ListView, keys KeyMap) *homePage {
	search := textinput.New()
	search.Placeholder = "Search items..."
	search.Prompt = "/ "
	return &homePage{list: list, keys: keys, search: search}
}

func (p *homePage) Route() screens.Route { return screens.RouteHome }

func (p *homePage) Capturing() bool {
	_, pending := p.list.PendingDelete()
	return pending
}

func (p *homePage) Help() []key.Binding {
	if p.Capturing() {
		return []key.Binding{p.keys.Confirm, p.keys.Cancel}
	}
	if p.searching {
		return []key.Binding{p.keys.Back}
	}
	return []key.Binding{p.keys.Up, p.keys.Down, p.keys.Expand, p.keys.Edit, p.keys.Delete, p.keys.Search, p.keys.TabAdd, p.keys.TabProfile}
}

// Focus re-fetches every time Home comes back on top.
func (p *homePage) Focus(ctx context.Context) tea.Cmd {
	p.busy = true
	return run(p, func() (screens.Outcome, error) { return p.list.Focus(ctx) })
}

func (p *homePage) selected() (inventory.Record, bool) {
	visible := p.list.Visible()
	if p.cursor < 0 || p.cursor >= len(visible) {
		return inventory.Record{}, false
	}
	return visible[p.cursor], true
}

func (p *homePage) clampCursor() {
	n := len(p.list.Visible())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *homePage) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg:
		p.busy = false
		p.clampCursor()
		return nil

	case tea.KeyMsg:
		if p.Capturing() {
			switch {
			case key.Matches(msg, p.keys.Confirm):
				if p.busy {
					return nil
				}
				p.busy = true
				return run(p, func() (screens.Outcome, error) { return p.list.ConfirmDelete(ctx) })
			case key.Matches(msg, p.keys.Cancel):
				p.list.CancelDelete()
			}
			return nil
		}

		if p.searching {
			if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
				p.searching = false
				p.search.Blur()
				return nil
			}
			var cmd tea.Cmd
			p.search, cmd = p.search.Update(msg)
			p.list.SetSearchTerm(p.search.Value())
			p.cursor = 0
			return cmd
		}

		switch {
		case key.Matches(msg, p.keys.Up):
			p.cursor--
			p.clampCursor()
		case key.Matches(msg, p.keys.Down):
			p.cursor++
			p.clampCursor()
		case key.Matches(msg, p.keys.Expand):
			if r, ok := p.selected(); ok {
				p.list.ToggleExpanded(r.ID)
			}
		case key.Matches(msg, p.keys.Edit):
			if r, ok := p.selected(); ok {
				return func() tea.Msg { return editRequestMsg{record: r} }
			}
		case key.Matches(msg, p.keys.Delete):
			if r, ok := p.selected(); ok {
				p.list.RequestDelete(r.ID)
			}
		case key.Matches(msg, p.keys.Search):
			p.searching = true
			return p.search.Focus()
		case key.Matches(msg, p.keys.Refresh):
			if p.busy {
				return nil
			}
			return p.Focus(ctx)
		}
	}
	return nil
}

func (p *homePage) View(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Inventory"))
	b.WriteString("\n")
	b.WriteString(p.search.View())
	b.WriteString("\n\n")

	visible := p.list.Visible()
	if len(visible) == 0 {
		if p.busy {
			b.WriteString(faintStyle.Render("Loading..."))
		} else {
			b.WriteString(faintStyle.Render("No items."))
		}
		b.WriteString("\n")
	}

	for i, r := range visible {
		marker := "  "
		name := r.Name
		if i == p.cursor {
			marker = cursorStyle.Render("> ")
			name = cursorStyle.Render(name)
		}
		b.WriteString(marker + name + "\n")
		if r.Expanded {
			b.WriteString(fmt.Sprintf("    %s %d\n", labelStyle.Render("Quantity:"), r.Quantity))
			b.WriteString(fmt.Sprintf("    %s %s\n", labelStyle.Render("Price:"), priceStyle.Render(inventory.FormatPrice(r.Price))))
		}
	}

	if id, ok := p.list.PendingDelete(); ok {
		name := id
		for _, r := range p.list.Records() {
			if r.ID == id {
				name = r.Name
				break
			}
		}
		b.WriteString("\n")
		b.WriteString(modalStyle.Render(fmt.Sprintf("Delete %q?\n\ny confirm • n cancel", name)))
		b.WriteString("\n")
	}
	return b.String()
}
