// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/task"
)

type taskRequest struct {
	Description   string  `json:"description"`
	ProjectID     *int64  `json:"project_id"`
	ReferenceDate *string `json:"reference_date"`
	StartDate     *string `json:"start_date"`
	FinishDate    *string `json:"finish_date"`
	Note          string  `json:"note"`
	Origin        string  `json:"origin"`
}

// toInput converts the wire shape into a task.Input, parsing date strings.
func (req taskRequest) toInput() (task.Input, error) {
	ref, err := parseDate(req.ReferenceDate)
	if err != nil {
		return task.Input{}, err
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return task.Input{}, err
	}
	finish, err := parseDate(req.FinishDate)
	if err != nil {
		return task.Input{}, err
	}

	return task.Input{
		Description:   req.Description,
		ProjectID:     req.ProjectID,
		ReferenceDate: ref,
		StartDate:     start,
		FinishDate:    finish,
		Note:          req.Note,
		Origin:        req.Origin,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil //nolint:nilnil // absent date is a valid value
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// queryDate parses an optional date query parameter.
func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil //nolint:nilnil // absent date is a valid value
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// handleListTasks lists tasks, optionally filtered by project_id. The
// search, start_date, and end_date query parameters switch to a search.
func (rt *Router) handleListTasks(c *gin.Context) {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "invalid project_id")
			return
		}
		projectID = &id
	}

	startedFrom, err := queryDate(c, "start_date")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}
	finishedTo, err := queryDate(c, "end_date")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}

	var tasks []*task.Task
	if text := c.Query("search"); text != "" || startedFrom != nil || finishedTo != nil {
		tasks, err = rt.tasks.Search(c.Request.Context(), task.SearchFilter{
			Text:        text,
			ProjectID:   projectID,
			StartedFrom: startedFrom,
			FinishedTo:  finishedTo,
		})
	} else {
		tasks, err = rt.tasks.List(c.Request.Context(), projectID)
	}
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toTaskDTOs(tasks))
}

func (rt *Router) handleGetTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	t, err := rt.tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toTaskDTO(t))
}

func (rt *Router) handleCreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}

	t, err := rt.tasks.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusCreated, toTaskDTO(t))
}

func (rt *Router) handleUpdateTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}
	in, err := req.toInput()
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}

	t, err := rt.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toTaskDTO(t))
}

func (rt *Router) handleDeleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := rt.tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "task deleted successfully"})
}
