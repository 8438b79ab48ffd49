// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"

	"github.com/taskboard/taskboard/internal/access"
	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/observability"
	"github.com/taskboard/taskboard/internal/project"
	"github.com/taskboard/taskboard/internal/task"
)

// AuthService is the slice of the auth service the HTTP boundary needs.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.LoginResult, error)
	Register(ctx context.Context, username, email, password string, role auth.Role) (*auth.LoginResult, error)
	ValidateSession(ctx context.Context, token string) (*auth.User, error)
	Logout(ctx context.Context, token string) error
	CreateUser(ctx context.Context, username, email, password string, role auth.Role) (*auth.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]*auth.User, error)
}

// ProjectService is the slice of the project service the HTTP boundary needs.
type ProjectService interface {
	Create(ctx context.Context, description string) (*project.Project, error)
	Get(ctx context.Context, id int64) (*project.Project, error)
	Update(ctx context.Context, id int64, description string) (*project.Project, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*project.Project, error)
	Search(ctx context.Context, f project.SearchFilter) ([]*project.Project, error)
}

// TaskService is the slice of the task service the HTTP boundary needs.
type TaskService interface {
	Create(ctx context.Context, in task.Input) (*task.Task, error)
	Get(ctx context.Context, id int64) (*task.Task, error)
	Update(ctx context.Context, id int64, in task.Input) (*task.Task, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, projectID *int64) ([]*task.Task, error)
	Search(ctx context.Context, f task.SearchFilter) ([]*task.Task, error)
}

// Config carries the dependencies for building the HTTP router.
type Config struct {
	Auth     AuthService
	Projects ProjectService
	Tasks    TaskService

	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger

	// Metrics is optional; when set, request and auth counters are recorded.
	Metrics *observability.Metrics

	// AllowedOrigins holds CORS origin glob patterns. Empty allows any origin.
	AllowedOrigins []string
}

// Router holds the handler state shared across requests.
type Router struct {
	auth     AuthService
	projects ProjectService
	tasks    TaskService
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewRouter builds the gin engine with all routes and middleware attached.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if cfg.Auth == nil {
		return nil, oops.Errorf("auth service is required")
	}
	if cfg.Projects == nil {
		return nil, oops.Errorf("project service is required")
	}
	if cfg.Tasks == nil {
		return nil, oops.Errorf("task service is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	corsCfg, err := newCORSConfig(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	rt := &Router{
		auth:     cfg.Auth,
		projects: cfg.Projects,
		tasks:    cfg.Tasks,
		logger:   logger,
		metrics:  cfg.Metrics,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), rt.requestLogger(), corsCfg.cors())

	engine.NoRoute(func(c *gin.Context) {
		respondMessage(c, http.StatusNotFound, "endpoint not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		respondMessage(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	engine.HandleMethodNotAllowed = true

	engine.POST("/auth", rt.handleAuthPost)
	engine.GET("/auth", rt.handleAuthGet)

	users := engine.Group("/users", rt.authenticate(), rt.requireRole(access.CanManageUsers))
	users.GET("", rt.handleListUsers)
	users.POST("", rt.handleCreateUser)
	users.DELETE("/:id", rt.handleDeleteUser)

	projects := engine.Group("/projects", rt.authenticate())
	projects.GET("", rt.handleListProjects)
	projects.GET("/:id", rt.handleGetProject)
	projects.POST("", rt.requireRole(access.CanCreateProject), rt.handleCreateProject)
	projects.PUT("/:id", rt.requireRole(access.CanEditProject), rt.handleUpdateProject)
	projects.DELETE("/:id", rt.requireRole(access.CanDeleteProject), rt.handleDeleteProject)

	tasks := engine.Group("/tasks", rt.authenticate())
	tasks.GET("", rt.handleListTasks)
	tasks.GET("/:id", rt.handleGetTask)
	tasks.POST("", rt.requireRole(access.CanCreateTask), rt.handleCreateTask)
	tasks.PUT("/:id", rt.requireRole(access.CanEditTask), rt.handleUpdateTask)
	tasks.DELETE("/:id", rt.requireRole(access.CanDeleteTask), rt.handleDeleteTask)

	return engine, nil
}
