package update

import (
	"context"
	"errors"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/tasksync/internal/controller"
	"github.com/sandeepkv93/tasksync/internal/dispatch"
	"github.com/sandeepkv93/tasksync/internal/model"
)

const (
	jobRefresh = "refresh"
	jobAdd     = "add"
	jobToggle  = "toggle"
	jobDelete  = "delete"
)

func refreshJob(ctl *controller.Controller) dispatch.Job {
	return dispatch.Job{Kind: jobRefresh, Run: ctl.Refresh}
}

func addJob(ctl *controller.Controller, title, description string) dispatch.Job {
	return dispatch.Job{Kind: jobAdd, Run: func(ctx context.Context) error {
		return ctl.AddTask(ctx, title, description)
	}}
}

func toggleJob(ctl *controller.Controller, id string) dispatch.Job {
	return dispatch.Job{Kind: jobToggle, Run: func(ctx context.Context) error {
		return ctl.ToggleTask(ctx, id)
	}}
}

func deleteJob(ctl *controller.Controller, id string) dispatch.Job {
	return dispatch.Job{Kind: jobDelete, Run: func(ctx context.Context) error {
		return ctl.DeleteTask(ctx, id)
	}}
}

// submit queues job behind any operation still in flight.
func (m *Model) submit(job dispatch.Job) (uint64, tea.Cmd) {
	id, err := m.engine.Submit(job)
	if err != nil {
		m.logger.Error().Err(err).Str("kind", job.Kind).Msg("failed to submit job")
		m.setError(err)
		return 0, nil
	}
	return id, m.startSpinner()
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinnerActive {
		return nil
	}
	m.spinnerActive = true
	return m.syncSpinner.Tick
}

func waitForOutcomeCmd(ch <-chan dispatch.Outcome) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		out, ok := <-ch
		if !ok {
			return nil
		}
		return OutcomeMsg{Outcome: out}
	}
}

func (m *Model) applyOutcome(out dispatch.Outcome) {
	if out.Kind == jobAdd && out.ID == m.pendingAdd {
		m.pendingAdd = 0
		if !createFailed(out.Err) {
			m.resetForm()
		}
	}
	if out.Err != nil {
		m.setError(out.Err)
		return
	}
	m.Status = StatusBar{Text: successText(out.Kind)}
}

// createFailed reports whether the task was not created. A failed refresh
// after a successful create does not count.
func createFailed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, model.ErrValidation) {
		return true
	}
	var terr *model.TransportError
	if errors.As(err, &terr) {
		return terr.Method == http.MethodPost
	}
	return true
}

func successText(kind string) string {
	switch kind {
	case jobRefresh:
		return "tasks refreshed"
	case jobAdd:
		return "task added"
	case jobToggle:
		return "task updated"
	case jobDelete:
		return "task deleted"
	default:
		return "done"
	}
}
