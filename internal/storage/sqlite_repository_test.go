package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "tasksync-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCreateGetToggleDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := Task{
		ID:          "task-1",
		Title:       "Write schema",
		Description: "Design storage layout",
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Status || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected task get result: %#v", got)
	}

	toggledAt := created.Add(time.Hour)
	toggled, err := repo.ToggleTask(ctx, task.ID, toggledAt)
	if err != nil {
		t.Fatalf("toggle task: %v", err)
	}
	if !toggled.Status || !toggled.UpdatedAt.Equal(toggledAt) {
		t.Fatalf("expected completed task, got %#v", toggled)
	}
	toggled, err = repo.ToggleTask(ctx, task.ID, toggledAt)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if toggled.Status {
		t.Fatalf("expected active task after second toggle, got %#v", toggled)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListTasksInInsertionOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := parseRFC3339(t, "2026-02-09T12:00:00Z")

	// Later inserts get earlier timestamps; ordering must follow insertion.
	for i := 0; i < 4; i++ {
		at := base.Add(-time.Duration(i) * time.Minute)
		if err := repo.CreateTask(ctx, Task{ID: fmt.Sprintf("t-%d", i), Title: fmt.Sprintf("Task %d", i), CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("create task %d: %v", i, err)
		}
	}

	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.ID != fmt.Sprintf("t-%d", i) {
			t.Fatalf("unexpected order at %d: %s", i, task.ID)
		}
	}
}

func TestListTasksEmpty(t *testing.T) {
	repo := setupRepo(t)
	tasks, err := repo.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", tasks)
	}
}

func TestMissingTaskOperations(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if _, err := repo.ToggleTask(ctx, "nope", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on toggle, got %v", err)
	}
	if err := repo.DeleteTask(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()
	task := Task{ID: "dup", Title: "one", CreatedAt: now, UpdatedAt: now}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.CreateTask(ctx, task); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestBlankTitleRejectedBySchema(t *testing.T) {
	repo := setupRepo(t)
	now := time.Now().UTC()
	if err := repo.CreateTask(context.Background(), Task{ID: "blank", Title: "   ", CreatedAt: now, UpdatedAt: now}); err == nil {
		t.Fatal("expected check constraint error for blank title")
	}
}
