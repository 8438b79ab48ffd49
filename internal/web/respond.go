// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package web provides the HTTP boundary: a gin router, middleware, and
// handlers that translate between JSON requests and the domain services.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/taskboard/taskboard/pkg/errutil"
)

// timestampLayout matches the envelope timestamp format clients expect.
const timestampLayout = "2006-01-02 15:04:05"

// envelope is the uniform JSON response shape.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// statusForCode maps business error codes to HTTP status codes. Codes not
// listed here are treated as internal errors.
var statusForCode = map[string]int{
	"AUTH_INVALID_CREDENTIALS": http.StatusUnauthorized,
	"SESSION_INVALID":          http.StatusUnauthorized,
	"SESSION_EXPIRED":          http.StatusUnauthorized,
	"SESSION_TOKEN_EMPTY":      http.StatusUnauthorized,

	"AUTH_INVALID_USERNAME":       http.StatusBadRequest,
	"AUTH_WEAK_PASSWORD":          http.StatusBadRequest,
	"AUTH_EMPTY_PASSWORD":         http.StatusBadRequest,
	"AUTH_USER_EXISTS":            http.StatusBadRequest,
	"AUTH_INVALID_ROLE":           http.StatusBadRequest,
	"AUTH_ADMIN_PROTECTED":        http.StatusBadRequest,
	"SESSION_NOT_FOUND":           http.StatusBadRequest,
	"PROJECT_INVALID_DESCRIPTION": http.StatusBadRequest,
	"TASK_INVALID_DESCRIPTION":    http.StatusBadRequest,
	"TASK_INVALID_DATES":          http.StatusBadRequest,

	"USER_NOT_FOUND":    http.StatusNotFound,
	"PROJECT_NOT_FOUND": http.StatusNotFound,
	"TASK_NOT_FOUND":    http.StatusNotFound,
}

// respondData writes a success envelope.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().Format(timestampLayout),
	})
}

// respondMessage writes an error envelope with an explicit status and message.
func respondMessage(c *gin.Context, status int, msg string) {
	c.JSON(status, envelope{
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().Format(timestampLayout),
	})
}

// errorCode extracts the string error code from an oops error. Code() returns
// any, so uncoded and non-string codes report false.
func errorCode(err error) (string, bool) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return "", false
	}
	code, ok := oopsErr.Code().(string)
	return code, ok
}

// respondError maps a service error to an HTTP response. Business errors keep
// their message; anything unmapped is logged and answered with a generic 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	if code, ok := errorCode(err); ok {
		if status, known := statusForCode[code]; known {
			respondMessage(c, status, err.Error())
			return
		}
	}

	errutil.LogError(logger, "request failed", err)
	respondMessage(c, http.StatusInternalServerError, "internal server error")
}
