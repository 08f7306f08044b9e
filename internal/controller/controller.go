// Package controller owns the local snapshot of tasks and keeps it in step
// with the remote task service.
//
// Every mutation is followed by a full re-fetch instead of a local patch, so
// after each successful operation the snapshot is exactly what the service
// returned. A failed operation never touches the snapshot.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/tasksync/internal/model"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateError   State = "error"
)

// TaskService is the remote side of the controller. *remote.Client
// satisfies it.
type TaskService interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, title, description string) error
	ToggleTask(ctx context.Context, id string) error
	DeleteTask(ctx context.Context, id string) error
}

// Status is a point-in-time copy of the controller-visible state.
type Status struct {
	State   State
	Message string
	Loaded  bool
	Stats   model.Stats
}

type Controller struct {
	svc      TaskService
	logger   zerolog.Logger
	onChange func(Status)

	// opMu serializes whole operations, mutation plus refresh.
	opMu sync.Mutex

	mu       sync.RWMutex
	state    State
	errMsg   string
	lastErr  error
	snapshot []model.Task
	loaded   bool
	filter   model.FilterMode
}

type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithOnChange registers fn to be called after every state transition.
// fn runs without the controller's locks held.
func WithOnChange(fn func(Status)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New returns a controller in the Loading state with no snapshot. No request
// is made until Refresh.
func New(svc TaskService, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		logger: zerolog.Nop(),
		state:  StateLoading,
		filter: model.FilterAll,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open constructs a controller and performs the initial fetch. The
// controller is returned even when that fetch fails; it is then in the Error
// state.
func Open(ctx context.Context, svc TaskService, opts ...Option) (*Controller, error) {
	c := New(svc, opts...)
	return c, c.Refresh(ctx)
}

func (c *Controller) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.refreshLocked(ctx)
}

func (c *Controller) refreshLocked(ctx context.Context) error {
	c.setState(StateLoading, "")

	tasks, err := c.svc.ListTasks(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to fetch tasks")
		c.mu.Lock()
		c.state = StateError
		c.errMsg = err.Error()
		c.lastErr = err
		c.mu.Unlock()
		c.notify()
		return err
	}

	snapshot := make([]model.Task, len(tasks))
	copy(snapshot, tasks)

	c.mu.Lock()
	c.snapshot = snapshot
	c.loaded = true
	c.state = StateIdle
	c.errMsg = ""
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Debug().Int("count", len(snapshot)).Msg("fetched tasks")
	c.notify()
	return nil
}

func (c *Controller) AddTask(ctx context.Context, title, description string) error {
	if err := model.ValidateTitle(title); err != nil {
		c.logger.Debug().Err(err).Msg("rejected task")
		return err
	}
	return c.mutate(ctx, "add task", func(ctx context.Context) error {
		return c.svc.CreateTask(ctx, title, description)
	})
}

func (c *Controller) ToggleTask(ctx context.Context, id string) error {
	return c.mutate(ctx, "toggle task", func(ctx context.Context) error {
		return c.svc.ToggleTask(ctx, id)
	})
}

// DeleteTask removes the task. Asking the user for confirmation is up to the
// caller.
func (c *Controller) DeleteTask(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete task", func(ctx context.Context) error {
		return c.svc.DeleteTask(ctx, id)
	})
}

func (c *Controller) mutate(ctx context.Context, op string, call func(context.Context) error) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := call(ctx); err != nil {
		c.logger.Error().Err(err).Str("op", op).Msg("operation failed")
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return err
	}
	c.logger.Info().Str("op", op).Msg("operation succeeded")
	return c.refreshLocked(ctx)
}

func (c *Controller) setState(state State, msg string) {
	c.mu.Lock()
	c.state = state
	c.errMsg = msg
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Status())
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// ErrorMessage is the message retained by the Error state, empty otherwise.
func (c *Controller) ErrorMessage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errMsg
}

// LastError is the error of the most recent failed remote call. It is cleared
// by the next successful fetch.
func (c *Controller) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Snapshot returns a copy of the tasks and whether any fetch has succeeded.
func (c *Controller) Snapshot() ([]model.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, false
	}
	out := make([]model.Task, len(c.snapshot))
	copy(out, c.snapshot)
	return out, true
}

func (c *Controller) Task(id string) (model.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, task := range c.snapshot {
		if task.ID == id {
			return task, true
		}
	}
	return model.Task{}, false
}

func (c *Controller) FilterMode() model.FilterMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

func (c *Controller) SetFilterMode(mode model.FilterMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFilterMode, mode)
	}
	c.mu.Lock()
	c.filter = mode
	c.mu.Unlock()
	return nil
}

func (c *Controller) FilteredTasks() []model.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.Filter(c.snapshot, c.filter)
}

func (c *Controller) Stats() model.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return model.ComputeStats(c.snapshot)
}

func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		State:   c.state,
		Message: c.errMsg,
		Loaded:  c.loaded,
		Stats:   model.ComputeStats(c.snapshot),
	}
}
