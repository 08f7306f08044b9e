package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/tasksync/internal/model"
	"github.com/sandeepkv93/tasksync/internal/storage"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.repo.ListTasks(c.Request.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list tasks")
		abort(c, newInternalError())
		return
	}
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toModel(task))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, newBadRequestError("invalid request body"))
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		abort(c, newBadRequestError("title is required"))
		return
	}

	now := s.now()
	task := storage.Task{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateTask(c.Request.Context(), task); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		abort(c, newInternalError())
		return
	}
	c.JSON(http.StatusCreated, toModel(task))
}

func (s *Server) handleToggleTask(c *gin.Context) {
	id := c.Param("id")
	task, err := s.repo.ToggleTask(c.Request.Context(), id, s.now())
	if err != nil {
		s.abortRepoError(c, id, "toggle", err)
		return
	}
	c.JSON(http.StatusOK, toModel(task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	if err := s.repo.DeleteTask(c.Request.Context(), id); err != nil {
		s.abortRepoError(c, id, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) abortRepoError(c *gin.Context, id, op string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		abort(c, newNotFoundError("task not found"))
		return
	}
	s.logger.Error().
		Err(err).
		Str("id", id).
		Msgf("failed to %s task", op)
	abort(c, newInternalError())
}

func toModel(t storage.Task) model.Task {
	return model.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
	}
}
