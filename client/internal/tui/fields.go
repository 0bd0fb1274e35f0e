package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldSet is a vertical stack of labelled text inputs with one focused.
type fieldSet struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFieldSet(labels ...string) *fieldSet {
	fs := &fieldSet{labels: labels, inputs: make([]textinput.Model, len(labels))}
	for i, l := range labels {
		in := textinput.New()
		in.Placeholder = "Enter " + strings.ToLower(l)
		in.Prompt = "> "
		in.CharLimit = 128
		fs.inputs[i] = in
	}
	fs.inputs[0].Focus()
	return fs
}

func (fs *fieldSet) value(i int) string { return fs.inputs[i].Value() }

func (fs *fieldSet) setValue(i int, v string) { fs.inputs[i].SetValue(v) }

func (fs *fieldSet) setEcho(i int, hidden bool) {
	if hidden {
		fs.inputs[i].EchoMode = textinput.EchoPassword
		fs.inputs[i].EchoCharacter = '•'
		return
	}
	fs.inputs[i].EchoMode = textinput.EchoNormal
}

func (fs *fieldSet) move(delta int) tea.Cmd {
	fs.inputs[fs.focus].Blur()
	fs.focus = (fs.focus + delta + len(fs.inputs)) % len(fs.inputs)
	return fs.inputs[fs.focus].Focus()
}

func (fs *fieldSet) update(_ context.Context, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	return cmd
}

func (fs *fieldSet) view() string {
	var b strings.Builder
	for i, in := range fs.inputs {
		b.WriteString(labelStyle.Render(fs.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}
	return b.String()
}
