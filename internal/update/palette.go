package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasksync/internal/commands"
)

func (m Model) openPalette() (Model, tea.Cmd) {
	m.Palette = CommandPaletteState{Active: true}
	m.commandInput.SetValue("")
	m.Status = StatusBar{Text: "command palette active"}
	return m, m.commandInput.Focus()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.setError(err)
		return m, nil
	}

	m.Status = StatusBar{}
	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			_, teaCmd = m.submit(addJob(m.ctl, a.Title, a.Description))
			return commands.Result{Message: fmt.Sprintf("adding task: %s", a.Title)}, nil
		},
		Toggle: func(a commands.TargetArgs) (commands.Result, error) {
			_, teaCmd = m.submit(toggleJob(m.ctl, a.ID))
			return commands.Result{Message: fmt.Sprintf("toggling task %s", a.ID)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			_, teaCmd = m.submit(deleteJob(m.ctl, a.ID))
			return commands.Result{Message: fmt.Sprintf("deleting task %s", a.ID)}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			if err := m.ctl.SetFilterMode(a.Mode); err != nil {
				return commands.Result{}, err
			}
			m.syncTasks()
			return commands.Result{Message: fmt.Sprintf("filter: %s", a.Mode)}, nil
		},
		Refresh: func() (commands.Result, error) {
			_, teaCmd = m.submit(refreshJob(m.ctl))
			return commands.Result{Message: "refreshing tasks..."}, nil
		},
	})
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}
	return m, teaCmd
}
