package views

import (
	"fmt"
	"strings"
)

type TabData struct {
	Key    string
	Label  string
	Active bool
}

type StatsData struct {
	Total     int
	Active    int
	Completed int
}

type TaskPanelData struct {
	Title    string
	ListView string
	Loaded   bool
	Loading  bool
	Spinner  string
	Empty    bool
}

type DetailPanelData struct {
	ID           string
	Title        string
	Completed    bool
	MarkdownView string
}

type AddFormData struct {
	Active          bool
	TitleView       string
	DescriptionView string
	FocusField      string
}

type ConfirmData struct {
	Active bool
	Title  string
	ID     string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderHeader(app string, stats StatsData) string {
	return fmt.Sprintf("%s | total: %d | active: %d | completed: %d", app, stats.Total, stats.Active, stats.Completed)
}

func RenderFilterTabs(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("[%s] %s", tab.Key, tab.Label)
		if tab.Active {
			parts = append(parts, activeTabStyle.Render(label))
			continue
		}
		parts = append(parts, tabStyle.Render(label))
	}
	return strings.Join(parts, "  ")
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(data.Title + ":\n")
	switch {
	case !data.Loaded && data.Loading:
		b.WriteString(data.Spinner + " loading tasks...")
		return b.String()
	case !data.Loaded:
		b.WriteString("(tasks not loaded, press r to retry)")
		return b.String()
	case data.Empty:
		b.WriteString("(no tasks)")
	default:
		b.WriteString(data.ListView)
	}
	if data.Loading {
		b.WriteString("\n" + data.Spinner + " syncing")
	}
	return strings.TrimSpace(b.String())
}

// TaskLabel renders a list row, striking through completed titles.
func TaskLabel(title string, completed bool) string {
	if completed {
		return "[x] " + doneStyle.Render(title)
	}
	return "[ ] " + title
}

func RenderDetailPanel(data DetailPanelData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	status := "active"
	if data.Completed {
		status = "completed"
	}
	body := data.MarkdownView
	if strings.TrimSpace(body) == "" {
		body = "(no description)"
	}
	return fmt.Sprintf("details:\nid: %s\ntitle: %s\nstatus: %s\n\n%s", data.ID, data.Title, status, body)
}

func RenderAddForm(data AddFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("new task:\n")
	b.WriteString("keys: [tab] field [enter] save [esc] cancel\n")
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.DescriptionView)
	if data.FocusField != "" {
		b.WriteString("\nediting: " + data.FocusField)
	}
	return b.String()
}

func RenderConfirm(data ConfirmData) string {
	if !data.Active {
		return ""
	}
	return fmt.Sprintf("delete %q (%s)? [y] yes [n] no", data.Title, data.ID)
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
