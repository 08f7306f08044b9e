package update

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/tasksync/internal/controller"
	"github.com/sandeepkv93/tasksync/internal/dispatch"
	"github.com/sandeepkv93/tasksync/internal/model"
	"github.com/sandeepkv93/tasksync/internal/views"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

type AddFormState struct {
	Active bool
	Field  formField
}

type ConfirmState struct {
	Active bool
	ID     string
	Title  string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type Model struct {
	Status      StatusBar
	Form        AddFormState
	Confirm     ConfirmState
	Palette     CommandPaletteState
	HelpVisible bool
	Quitting    bool
	LastError   error

	ctl        *controller.Controller
	engine     *dispatch.Engine
	clipboard  Clipboard
	logger     zerolog.Logger
	keys       keyMap
	tasks      []model.Task
	pendingAdd uint64

	taskList       list.Model
	titleInput     textinput.Model
	descArea       textarea.Model
	commandInput   textinput.Model
	syncSpinner    spinner.Model
	helpModel      help.Model
	detailViewport viewport.Model
	spinnerActive  bool
}

type listItem struct {
	task model.Task
}

func (i listItem) FilterValue() string { return i.task.Title }
func (i listItem) Title() string       { return views.TaskLabel(i.task.Title, i.task.Completed()) }

func (i listItem) Description() string {
	first, _, _ := strings.Cut(strings.TrimSpace(i.task.Description), "\n")
	if first == "" {
		return "id: " + i.task.ID
	}
	return first
}

type Option func(*Model)

func WithClipboard(c Clipboard) Option {
	return func(m *Model) {
		if c != nil {
			m.clipboard = c
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

type OutcomeMsg struct {
	Outcome dispatch.Outcome
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// NewModel builds the presentation over ctl. Every remote operation goes
// through engine, which must be started by the caller.
func NewModel(ctl *controller.Controller, engine *dispatch.Engine, opts ...Option) Model {
	m := Model{
		ctl:       ctl,
		engine:    engine,
		clipboard: systemClipboard{},
		logger:    zerolog.Nop(),
		keys:      defaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.initBubbleComponents()
	m.spinnerActive = ctl.State() == controller.StateLoading
	m.syncTasks()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 46, 16)
	m.taskList.SetShowTitle(false)
	m.taskList.SetShowHelp(false)
	m.taskList.SetShowStatusBar(false)
	m.taskList.SetFilteringEnabled(false)

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "Task title"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.descArea = textarea.New()
	m.descArea.SetWidth(46)
	m.descArea.SetHeight(4)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "Description (markdown, optional)"

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.syncSpinner = spinner.New()
	m.syncSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailViewport = viewport.New(46, 12)
}

func (m *Model) resize(width, height int) {
	pane := width/2 - 4
	if pane < 30 {
		pane = 30
	}
	rows := height - 10
	if rows < 6 {
		rows = 6
	}
	m.taskList.SetSize(pane, rows)
	m.detailViewport.Width = pane
	m.detailViewport.Height = rows
	m.descArea.SetWidth(pane)
}

// syncTasks rebuilds the list from the controller's filtered view, keeping the
// cursor on the same task when it is still visible.
func (m *Model) syncTasks() {
	prevID := ""
	if task, ok := m.selectedTask(); ok {
		prevID = task.ID
	}
	prevIndex := m.taskList.Index()

	m.tasks = m.ctl.FilteredTasks()
	items := make([]list.Item, 0, len(m.tasks))
	cursor := -1
	for i, task := range m.tasks {
		items = append(items, listItem{task: task})
		if prevID != "" && task.ID == prevID {
			cursor = i
		}
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		if cursor < 0 {
			cursor = min(max(prevIndex, 0), len(items)-1)
		}
		m.taskList.Select(cursor)
	}
	m.syncDetail()
}

func (m *Model) syncDetail() {
	task, ok := m.selectedTask()
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(views.RenderMarkdown(task.Description))
}

func (m Model) selectedTask() (model.Task, bool) {
	idx := m.taskList.Index()
	if idx < 0 || idx >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[idx], true
}

func (m Model) busy() bool {
	return m.ctl.State() == controller.StateLoading || m.engine.Pending() > 0
}
