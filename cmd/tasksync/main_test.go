package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/tasksync/internal/model"
	"github.com/sandeepkv93/tasksync/internal/server"
	"github.com/sandeepkv93/tasksync/internal/storage"
)

func startService(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	seq := 0
	srv := server.New(repo, zerolog.Nop(), server.WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("t%d", seq)
	}))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	t.Setenv("TASKSYNC_LOG_FILE", "")
	return ts.URL
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddListToggleDelete(t *testing.T) {
	url := startService(t)

	out, err := runCLI(t, "", "--api-url", url, "add", "Buy", "milk", "-d", "two liters")
	require.NoError(t, err)
	assert.Equal(t, "added task: Buy milk\n", out)

	_, err = runCLI(t, "", "--api-url", url, "add", "Write report")
	require.NoError(t, err)

	out, err = runCLI(t, "", "--api-url", url, "toggle", "t2")
	require.NoError(t, err)
	assert.Equal(t, "[x] Write report\n", out)

	out, err = runCLI(t, "", "--api-url", url, "list", "--filter", "active", "--json")
	require.NoError(t, err)
	var active []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &active))
	require.Len(t, active, 1)
	assert.Equal(t, model.Task{ID: "t1", Title: "Buy milk", Description: "two liters"}, active[0])

	out, err = runCLI(t, "", "--api-url", url, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[ ] t1"))
	assert.True(t, strings.HasPrefix(lines[1], "[x] t2"))

	out, err = runCLI(t, "", "--api-url", url, "stats", "--json")
	require.NoError(t, err)
	var stats model.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, model.Stats{Total: 2, Active: 1, Completed: 1}, stats)

	out, err = runCLI(t, "n\n", "--api-url", url, "delete", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, `delete "Buy milk" (t1)? [y/N]: `)
	assert.Contains(t, out, "canceled")

	out, err = runCLI(t, "y\n", "--api-url", url, "delete", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted task t1")

	out, err = runCLI(t, "", "--api-url", url, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "total:     1")
}

func TestDeleteYesSkipsPrompt(t *testing.T) {
	url := startService(t)
	_, err := runCLI(t, "", "--api-url", url, "add", "Temp")
	require.NoError(t, err)

	out, err := runCLI(t, "", "--api-url", url, "delete", "--yes", "t1")
	require.NoError(t, err)
	assert.Equal(t, "deleted task t1\n", out)
}

func TestListEmpty(t *testing.T) {
	url := startService(t)
	out, err := runCLI(t, "", "--api-url", url, "list")
	require.NoError(t, err)
	assert.Equal(t, "(no tasks)\n", out)
}

func TestAddRejectsBlankTitle(t *testing.T) {
	url := startService(t)
	_, err := runCLI(t, "", "--api-url", url, "add", "   ")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestListRejectsUnknownFilter(t *testing.T) {
	url := startService(t)
	_, err := runCLI(t, "", "--api-url", url, "list", "--filter", "done")
	assert.ErrorIs(t, err, model.ErrInvalidFilterMode)
}

func TestToggleMissingTaskFails(t *testing.T) {
	url := startService(t)
	_, err := runCLI(t, "", "--api-url", url, "toggle", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestUnreachableServiceFails(t *testing.T) {
	url := startService(t)
	_, err := runCLI(t, "", "--api-url", url+"/missing-prefix", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch tasks")
}
