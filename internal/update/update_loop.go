package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasksync/internal/controller"
	"github.com/sandeepkv93/tasksync/internal/model"
	"github.com/sandeepkv93/tasksync/internal/views"
)

// Init queues the first fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForOutcomeCmd(m.engine.C()), m.syncSpinner.Tick}
	if _, err := m.engine.Submit(refreshJob(m.ctl)); err != nil {
		cmds = append(cmds, func() tea.Msg { return AppErrorMsg{Err: err} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case spinner.TickMsg:
		if !m.busy() {
			m.spinnerActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.syncSpinner, cmd = m.syncSpinner.Update(typed)
		return m, cmd
	case OutcomeMsg:
		m.syncTasks()
		m.applyOutcome(typed.Outcome)
		return m, waitForOutcomeCmd(m.engine.C())
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.Quitting = true
		return m, tea.Quit
	}
	switch {
	case m.Confirm.Active:
		return m.handleConfirmKey(msg)
	case m.Form.Active:
		return m.handleFormKey(msg)
	case m.Palette.Active:
		return m.handlePaletteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.taskList.CursorUp()
		m.syncDetail()
	case key.Matches(msg, m.keys.Down):
		m.taskList.CursorDown()
		m.syncDetail()
	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected"}
			return m, nil
		}
		if id, cmd := m.submit(toggleJob(m.ctl, task.ID)); id != 0 {
			m.Status = StatusBar{Text: fmt.Sprintf("toggling %q...", task.Title)}
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.openForm()
	case key.Matches(msg, m.keys.Delete):
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected"}
			return m, nil
		}
		m.Confirm = ConfirmState{Active: true, ID: task.ID, Title: task.Title}
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(m.ctl.FilterMode().Next())
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.Refresh):
		m.Status = StatusBar{Text: "refreshing tasks..."}
		_, cmd := m.submit(refreshJob(m.ctl))
		return m, cmd
	case key.Matches(msg, m.keys.Copy):
		m.copySelectedID()
	case key.Matches(msg, m.keys.Palette):
		return m.openPalette()
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.Confirm.ID
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "deleting task..."}
		_, cmd := m.submit(deleteJob(m.ctl, id))
		return m, cmd
	case "n", "N", "esc":
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "delete canceled"}
	}
	return m, nil
}

func (m *Model) setFilter(mode model.FilterMode) {
	if err := m.ctl.SetFilterMode(mode); err != nil {
		m.setError(err)
		return
	}
	m.syncTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", mode)}
}

func (m *Model) copySelectedID() {
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected"}
		return
	}
	if err := m.clipboard.WriteAll(task.ID); err != nil {
		m.setError(fmt.Errorf("copy task id: %w", err))
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("copied id %s", task.ID)}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	status, isErr := m.statusLine()
	stats := m.ctl.Stats()
	mode := m.ctl.FilterMode()
	_, loaded := m.ctl.Snapshot()

	right := m.renderDetailPane() + m.renderHelpIfVisible()
	overlay := ""
	switch {
	case m.Confirm.Active:
		overlay = views.RenderConfirm(views.ConfirmData{Active: true, ID: m.Confirm.ID, Title: m.Confirm.Title})
	case m.Form.Active:
		overlay = m.renderAddForm()
	case m.Palette.Active:
		overlay = views.RenderCommandPalette(true, m.commandInput.View())
	}

	return views.RenderApp(views.AppData{
		Header: views.RenderHeader("tasksync", views.StatsData{
			Total:     stats.Total,
			Active:    stats.Active,
			Completed: stats.Completed,
		}),
		Tabs: views.RenderFilterTabs([]views.TabData{
			{Key: "1", Label: string(model.FilterAll), Active: mode == model.FilterAll},
			{Key: "2", Label: string(model.FilterActive), Active: mode == model.FilterActive},
			{Key: "3", Label: string(model.FilterCompleted), Active: mode == model.FilterCompleted},
		}),
		LeftPane: views.RenderTaskPanel(views.TaskPanelData{
			Title:    fmt.Sprintf("tasks (%s)", mode),
			ListView: m.taskList.View(),
			Loaded:   loaded,
			Loading:  m.busy(),
			Spinner:  m.syncSpinner.View(),
			Empty:    len(m.tasks) == 0,
		}),
		RightPane:   right,
		StatusLine:  status,
		StatusError: isErr,
		Overlay:     overlay,
		Footer:      m.helpModel.ShortHelpView(m.keys.ShortHelp()),
	})
}

// statusLine falls back to the controller's error message when nothing more
// recent has been reported.
func (m Model) statusLine() (string, bool) {
	text, isErr := m.Status.Text, m.Status.IsError
	if text == "" && m.ctl.State() == controller.StateError {
		text, isErr = m.ctl.ErrorMessage(), true
	}
	if text == "" {
		return "", false
	}
	if isErr {
		return fmt.Sprintf("status: error: %s", text), true
	}
	return fmt.Sprintf("status: %s", text), false
}

func (m Model) renderDetailPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{})
	}
	return views.RenderDetailPanel(views.DetailPanelData{
		ID:           task.ID,
		Title:        task.Title,
		Completed:    task.Completed(),
		MarkdownView: m.detailViewport.View(),
	})
}
