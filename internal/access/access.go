// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

// Package access holds the authorization policy. Every decision is a pure
// function of the caller's role so the rules can be read in one place.
package access

import "github.com/taskboard/taskboard/internal/auth"

// CanManageUsers reports whether the role may create, list, or delete users.
func CanManageUsers(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanCreateProject reports whether the role may create projects.
func CanCreateProject(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanEditProject reports whether the role may edit projects.
func CanEditProject(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanDeleteProject reports whether the role may delete projects.
func CanDeleteProject(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanCreateTask reports whether the role may create tasks.
func CanCreateTask(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanEditTask reports whether the role may edit tasks.
func CanEditTask(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanDeleteTask reports whether the role may delete tasks.
func CanDeleteTask(role auth.Role) bool {
	return role == auth.RoleAdmin
}

// CanViewProjects reports whether the role may view projects.
// Every authenticated role can.
func CanViewProjects(auth.Role) bool {
	return true
}

// CanViewTasks reports whether the role may view tasks.
// Every authenticated role can.
func CanViewTasks(auth.Role) bool {
	return true
}

// CanViewReports reports whether the role may view reports.
// Every authenticated role can.
func CanViewReports(auth.Role) bool {
	return true
}
