package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/server/services"
)

type createTaskRequest struct {
	Description string `json:"desc"`
	Completed   bool   `json:"completed"`
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c).ID, req.Description, req.Completed)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskView(task))
}

// parseNonNegativeInt treats anything that is not a non-negative integer as
// absent rather than an error.
func parseNonNegativeInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseListOptions(c *gin.Context) services.TaskListOptions {
	opts := services.TaskListOptions{}

	if raw, ok := c.GetQuery("completed"); ok {
		completed := raw == "true"
		opts.Completed = &completed
	}

	if raw, ok := c.GetQuery("sortBy"); ok {
		field, direction, _ := strings.Cut(raw, ":")
		opts.SortBy = field
		opts.SortAsc = direction == "asc"
	}

	opts.Limit = parseNonNegativeInt(c.Query("limit"))
	opts.Skip = parseNonNegativeInt(c.Query("skip"))
	return opts
}

func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), currentUser(c).ID, parseListOptions(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskViews(tasks))
}

func (s *Server) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

func (s *Server) updateTask(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, fmt.Errorf("%w: invalid request body", common.ErrValidation))
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}

func (s *Server) deleteTask(c *gin.Context) {
	task, err := s.tasks.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskView(task))
}
