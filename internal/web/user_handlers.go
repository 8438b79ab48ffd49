// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/auth"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (rt *Router) handleListUsers(c *gin.Context) {
	users, err := rt.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, toUserDTOs(users))
}

func (rt *Router) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "username, email, and password are required")
		return
	}
	if req.Role == "" {
		req.Role = string(auth.RoleUser)
	}
	role, err := auth.ParseRole(req.Role)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}

	user, err := rt.auth.CreateUser(c.Request.Context(), req.Username, req.Email, req.Password, role)
	if err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusCreated, toUserDTO(user))
}

func (rt *Router) handleDeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid id")
		return
	}

	if err := rt.auth.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// pathID parses the :id route parameter.
func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
