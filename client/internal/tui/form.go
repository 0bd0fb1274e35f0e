package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Skotchmaster/inventory/client/internal/screens"
)

type formPage struct {
	form   *screens.Form
	keys   KeyMap
	fields *fieldSet
	busy   bool
}

func newFormPage(form *screens.Form, keys KeyMap) *formPage {
	p := &formPage{form: form, keys: keys, fields: newFieldSet("Item Name", "Quantity", "Price")}
	p.sync()
	return p
}

// sync copies the form's text into the inputs.
func (p *formPage) sync() {
	name, qty, price := p.form.Values()
	p.fields.setValue(0, name)
	p.fields.setValue(1, qty)
	p.fields.setValue(2, price)
}

func (p *formPage) Route() screens.Route {
	if p.form.Mode() == screens.ModeUpdate {
		return screens.RouteEditItem
	}
	return screens.RouteAddItem
}

func (p *formPage) Focus(context.Context) tea.Cmd { return nil }
func (p *formPage) Capturing() bool { return false }

func (p *formPage) Help() []key.Binding {
	return []key.Binding{p.keys.Submit, p.keys.NextField, p.keys.Back}
}

func (p *formPage) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case outcomeMsg:
		p.busy = false
		p.sync()
		return nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Back):
			out := p.form.Cancel()
			return func() tea.Msg { return outcomeMsg{from: p, out: out} }
		case key.Matches(msg, p.keys.NextField):
			return p.fields.move(1)
		case key.Matches(msg, p.keys.PrevField):
			return p.fields.move(-1)
		case key.Matches(msg, p.keys.Submit):
			if p.busy {
				return nil
			}
			p.busy = true
			p.form.SetName(p.fields.value(0))
			p.form.SetQuantity(p.fields.value(1))
			p.form.SetPrice(p.fields.value(2))
			return run(p, func() (screens.Outcome, error) { return p.form.Submit(ctx) })
		}
	}
	return p.fields.update(ctx, msg)
}

func (p *formPage) View(int) string {
	var b strings.Builder
	title := "Add New Item"
	if p.form.Mode() == screens.ModeUpdate {
		title = "Edit Item"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(p.fields.view())
	if p.busy {
		b.WriteString(faintStyle.Render("Saving..."))
		b.WriteString("\n")
	}
	return b.String()
}
