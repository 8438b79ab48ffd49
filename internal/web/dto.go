// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package web

import (
	"time"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/internal/project"
	"github.com/taskboard/taskboard/internal/task"
)

// dateLayout is the wire format for date-only fields.
const dateLayout = "2006-01-02"

// userDTO is the JSON shape of a user. The password hash never leaves the
// server. Timestamps render in the envelope's layout, not RFC 3339.
type userDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u *auth.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

func toUserDTOs(users []*auth.User) []userDTO {
	out := make([]userDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

// loginDTO is the JSON shape of a successful login or registration.
type loginDTO struct {
	User      userDTO `json:"user"`
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expires_at"`
}

func toLoginDTO(r *auth.LoginResult) loginDTO {
	return loginDTO{
		User:      toUserDTO(r.User),
		Token:     r.Token,
		ExpiresAt: formatTimestamp(r.ExpiresAt),
	}
}

type projectDTO struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

func toProjectDTO(p *project.Project) projectDTO {
	return projectDTO{
		ID:          p.ID,
		Description: p.Description,
		CreatedAt:   formatTimestamp(p.CreatedAt),
		UpdatedAt:   formatTimestampPtr(p.UpdatedAt),
	}
}

func toProjectDTOs(projects []*project.Project) []projectDTO {
	out := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectDTO(p))
	}
	return out
}

type taskDTO struct {
	ID            int64   `json:"id"`
	Description   string  `json:"description"`
	ProjectID     *int64  `json:"project_id,omitempty"`
	ReferenceDate *string `json:"reference_date,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	FinishDate    *string `json:"finish_date,omitempty"`
	Note          string  `json:"note"`
	Origin        string  `json:"origin"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     *string `json:"updated_at,omitempty"`
}

func toTaskDTO(t *task.Task) taskDTO {
	return taskDTO{
		ID:            t.ID,
		Description:   t.Description,
		ProjectID:     t.ProjectID,
		ReferenceDate: formatDate(t.ReferenceDate),
		StartDate:     formatDate(t.StartDate),
		FinishDate:    formatDate(t.FinishDate),
		Note:          t.Note,
		Origin:        t.Origin,
		CreatedAt:     formatTimestamp(t.CreatedAt),
		UpdatedAt:     formatTimestampPtr(t.UpdatedAt),
	}
}

func toTaskDTOs(tasks []*task.Task) []taskDTO {
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTimestamp(*t)
	return &s
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
