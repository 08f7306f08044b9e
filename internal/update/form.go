package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasksync/internal/model"
	"github.com/sandeepkv93/tasksync/internal/views"
)

func (m Model) openForm() (Model, tea.Cmd) {
	m.Form = AddFormState{Active: true, Field: fieldTitle}
	m.descArea.Blur()
	return m, m.titleInput.Focus()
}

func (m *Model) closeForm() {
	m.Form.Active = false
	m.titleInput.Blur()
	m.descArea.Blur()
}

func (m *Model) resetForm() {
	m.closeForm()
	m.titleInput.Reset()
	m.descArea.Reset()
	m.Form.Field = fieldTitle
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "add canceled"}
		return m, nil
	case "tab", "shift+tab":
		if m.Form.Field == fieldTitle {
			m.Form.Field = fieldDescription
			m.titleInput.Blur()
			return m, m.descArea.Focus()
		}
		m.Form.Field = fieldTitle
		m.descArea.Blur()
		return m, m.titleInput.Focus()
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.Form.Field == fieldTitle {
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	if m.Form.Field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descArea, cmd = m.descArea.Update(msg)
	}
	return m, cmd
}

// submitForm leaves the form open; it is cleared once the task is created.
func (m Model) submitForm() (Model, tea.Cmd) {
	title := m.titleInput.Value()
	if err := model.ValidateTitle(title); err != nil {
		m.setError(err)
		return m, nil
	}
	id, cmd := m.submit(addJob(m.ctl, title, m.descArea.Value()))
	if id != 0 {
		m.pendingAdd = id
		m.Status = StatusBar{Text: "adding task..."}
	}
	return m, cmd
}

func (m Model) renderAddForm() string {
	field := "title"
	if m.Form.Field == fieldDescription {
		field = "description (ctrl+s to save)"
	}
	return views.RenderAddForm(views.AddFormData{
		Active:          m.Form.Active,
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descArea.View(),
		FocusField:      field,
	})
}
