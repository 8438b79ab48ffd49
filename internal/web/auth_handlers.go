// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleAuthPost dispatches POST /auth on the action query parameter.
func (rt *Router) handleAuthPost(c *gin.Context) {
	switch c.Query("action") {
	case "login":
		rt.handleLogin(c)
	case "register":
		rt.handleRegister(c)
	case "logout":
		rt.handleLogout(c)
	default:
		respondMessage(c, http.StatusNotFound, "endpoint not found")
	}
}

// handleAuthGet dispatches GET /auth on the action query parameter.
func (rt *Router) handleAuthGet(c *gin.Context) {
	switch c.Query("action") {
	case "validate":
		rt.handleValidate(c)
	default:
		respondMessage(c, http.StatusNotFound, "endpoint not found")
	}
}

func (rt *Router) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "username and password are required")
		return
	}

	result, err := rt.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		rt.countOutcome("login", err)
		respondError(c, rt.logger, err)
		return
	}
	rt.countOutcome("login", nil)
	respondData(c, http.StatusOK, toLoginDTO(result))
}

func (rt *Router) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(c, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	// Self-registration always yields a regular user; admin accounts come
	// from the admin-gated user management endpoint.
	result, err := rt.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password, auth.RoleUser)
	if err != nil {
		rt.countOutcome("register", err)
		respondError(c, rt.logger, err)
		return
	}
	rt.countOutcome("register", nil)
	respondData(c, http.StatusCreated, toLoginDTO(result))
}

func (rt *Router) handleLogout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respondMessage(c, http.StatusBadRequest, "token is required")
		return
	}

	if err := rt.auth.Logout(c.Request.Context(), token); err != nil {
		respondError(c, rt.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (rt *Router) handleValidate(c *gin.Context) {
	user, err := rt.auth.ValidateSession(c.Request.Context(), bearerToken(c))
	if err != nil {
		rt.countOutcome("validate", err)
		respondError(c, rt.logger, err)
		return
	}
	rt.countOutcome("validate", nil)
	respondData(c, http.StatusOK, gin.H{"user": toUserDTO(user)})
}

// countOutcome records an auth metric by operation and outcome. Business
// rejections and internal failures count separately from successes.
func (rt *Router) countOutcome(operation string, err error) {
	if rt.metrics == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "error"
		if code, ok := errorCode(err); ok {
			if _, known := statusForCode[code]; known {
				outcome = "rejected"
			}
		}
	}

	switch operation {
	case "login":
		rt.metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	case "register":
		rt.metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
	case "validate":
		rt.metrics.SessionValidationsTotal.WithLabelValues(outcome).Inc()
	}
}
