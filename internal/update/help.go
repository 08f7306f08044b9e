package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/tasksync/internal/views"
)

type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Add             key.Binding
	Delete          key.Binding
	NextFilter      key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	Refresh         key.Binding
	Copy            key.Binding
	Palette         key.Binding
	Help            key.Binding
	Quit            key.Binding
	ForceQuit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:              key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:            key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Toggle:          key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle done")),
		Add:             key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Delete:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		NextFilter:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Refresh:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Copy:            key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy id")),
		Palette:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:            key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:       key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Delete, k.NextFilter, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Add, k.Delete},
		{k.NextFilter, k.FilterAll, k.FilterActive, k.FilterCompleted},
		{k.Refresh, k.Copy, k.Palette, k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	var plain []string
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			plain = append(plain, fmt.Sprintf("- %s: %s", b.Help().Key, b.Help().Desc))
		}
	}
	plain = append(plain, "- palette: add <title> [| description], toggle <id>, delete <id>, filter <mode>, refresh")
	return "\n\n" + views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.FullHelpView(m.keys.FullHelp()),
	})
}
