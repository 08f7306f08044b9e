package remote

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/tasksync/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "ftp://example.com", "http://"} {
		_, err := New(raw)
		assert.Error(t, err, "base url %q", raw)
	}

	c, err := New(" https://example.com/api/ ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api", c.BaseURL())
}

func TestListTasksDecodesArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"title":"A","description":"","status":false},{"id":"2","title":"B","status":true}]`)
	})

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, model.Task{ID: "1", Title: "A"}, tasks[0])
	assert.Equal(t, model.Task{ID: "2", Title: "B", Status: true}, tasks[1])
}

func TestListTasksEmptyBodies(t *testing.T) {
	for _, body := range []string{"", "null", "[]"} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		tasks, err := c.ListTasks(context.Background())
		require.NoError(t, err, "body %q", body)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	}
}

func TestListTasksNonSuccessStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.ListTasks(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTransport)

	var terr *model.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusInternalServerError, terr.StatusCode)
	assert.Equal(t, http.MethodGet, terr.Method)
	assert.Contains(t, err.Error(), "failed to fetch tasks")
}

func TestListTasksMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"tasks":`)
	})
	_, err := c.ListTasks(context.Background())
	assert.ErrorIs(t, err, model.ErrTransport)
}

func TestListTasksNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)
	_, err = c.ListTasks(context.Background())
	require.Error(t, err)

	var terr *model.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Zero(t, terr.StatusCode)
	assert.NotNil(t, terr.Err)
}

func TestCreateTaskSendsJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"title": "Write docs", "description": "for the client"}, body)
		w.WriteHeader(http.StatusCreated)
	})

	require.NoError(t, c.CreateTask(context.Background(), "Write docs", "for the client"))
}

func TestCreateTaskRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	err := c.CreateTask(context.Background(), "x", "")
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Contains(t, err.Error(), "failed to add task")
}

func TestToggleAndDeleteUseEscapedPaths(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/tasks/a%2Fb", r.URL.EscapedPath())
		switch r.Method {
		case http.MethodPatch:
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	})

	require.NoError(t, c.ToggleTask(context.Background(), "a/b"))
	require.NoError(t, c.DeleteTask(context.Background(), "a/b"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestToggleUnknownIDIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	err := c.ToggleTask(context.Background(), "missing")
	var terr *model.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, http.StatusNotFound, terr.StatusCode)

	err = c.DeleteTask(context.Background(), "missing")
	assert.ErrorIs(t, err, model.ErrTransport)
}

func TestNoRetryOnFailure(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_ = c.DeleteTask(context.Background(), "1")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCanceledContext(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.ListTasks(ctx)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.True(t, errors.Is(err, context.Canceled))
}
