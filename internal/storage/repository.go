package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	// ToggleTask flips the task status and returns the updated row.
	ToggleTask(ctx context.Context, id string, at time.Time) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}
