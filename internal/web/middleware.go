// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gobwas/glob"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/taskboard/taskboard/internal/auth"
)

// Context keys for request-scoped values.
const (
	requestIDKey = "requestID"
	userKey      = "currentUser"
)

// requestIDHeader carries the request ID back to the client.
const requestIDHeader = "X-Request-ID"

// requestID assigns a ULID to each request and echoes it in the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger logs each completed request and records the request counter.
func (rt *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		rt.logger.Info("http request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", c.GetString(requestIDKey),
		)

		if rt.metrics != nil {
			rt.metrics.HTTPRequestsTotal.
				WithLabelValues(c.Request.Method, path, strconv.Itoa(status)).
				Inc()
		}
	}
}

// corsConfig holds compiled origin patterns. An empty pattern list allows any
// origin.
type corsConfig struct {
	patterns []glob.Glob
}

// newCORSConfig compiles origin patterns such as "https://*.example.com".
func newCORSConfig(origins []string) (*corsConfig, error) {
	patterns := make([]glob.Glob, 0, len(origins))
	for _, origin := range origins {
		g, err := glob.Compile(origin)
		if err != nil {
			return nil, oops.Code("CONFIG_INVALID").
				With("origin", origin).
				Wrap(err)
		}
		patterns = append(patterns, g)
	}
	return &corsConfig{patterns: patterns}, nil
}

func (cc *corsConfig) allows(origin string) bool {
	if len(cc.patterns) == 0 {
		return true
	}
	for _, g := range cc.patterns {
		if g.Match(origin) {
			return true
		}
	}
	return false
}

// cors sets the CORS headers and answers preflight requests.
func (cc *corsConfig) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && cc.allows(origin) {
			if len(cc.patterns) == 0 {
				c.Header("Access-Control-Allow-Origin", "*")
			} else {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. Returns empty
// when the header is absent or not a Bearer scheme.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return token
}

// authenticate validates the bearer token and stores the session owner in the
// request context. Rejects with 401 on any validation failure.
func (rt *Router) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := rt.auth.ValidateSession(c.Request.Context(), bearerToken(c))
		if err != nil {
			respondError(c, rt.logger, err)
			c.Abort()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// currentUser returns the authenticated user stored by authenticate.
func currentUser(c *gin.Context) *auth.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, ok := value.(*auth.User)
	if !ok {
		return nil
	}
	return user
}

// requireRole gates a route on an access policy check. Must run after
// authenticate.
func (rt *Router) requireRole(allowed func(auth.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			respondMessage(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		if !allowed(user.Role) {
			respondMessage(c, http.StatusForbidden, "access denied, admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}
