// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/project"
)

type projectRequest struct {
	Description string `json:"description"`
}

// handleListProjects lists all projects, or searches when any of the
// search, start_date, or end_date query parameters are present.
func (rt *Router) handleListProjects(c *gin.Context) {
	createdFrom, err := queryDate(c, "start_date")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}
	createdTo, err := queryDate(c, "end_date")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "dates must use YYYY-MM-DD format")
		return
	}
	filter := project.SearchFilter{
		Text:        c.Query("search"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}

	var projects []*project.Project
	if filter.IsZero() {
		projects, err = rt.projects.List(c.Request.Context())
	} else {
		projects, err = rt.projects.Search(c.Request.Context(), filter)
	}
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toProjectDTOs(projects))
}

func (rt *Router) handleGetProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	p, err := rt.projects.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toProjectDTO(p))
}

func (rt *Router) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := rt.projects.Create(c.Request.Context(), req.Description)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusCreated, toProjectDTO(p))
}

func (rt *Router) handleUpdateProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := rt.projects.Update(c.Request.Context(), id, req.Description)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toProjectDTO(p))
}

func (rt *Router) handleDeleteProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := rt.projects.Delete(c.Request.Context(), id); err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "project deleted successfully"})
}
