// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Taskboard Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/auth"
	"github.com/taskboard/taskboard/pkg/errutil"
)

func TestPasswordPolicy_Check(t *testing.T) {
	policy := auth.DefaultPasswordPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"minimum valid", "ab12", false},
		{"longer valid", "pass1word", false},
		{"unicode letter counts", "pass1wörd", false},
		{"too short", "ab1", true},
		{"letters only", "abcd", true},
		{"digits only", "1234", true},
		{"empty", "", true},
		{"symbols only", "!!!!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Check(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "AUTH_WEAK_PASSWORD")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPasswordPolicy_CustomPolicy(t *testing.T) {
	policy := auth.PasswordPolicy{MinLength: 8}

	// Composition rules off, only length applies.
	require.NoError(t, policy.Check("aaaaaaaa"))
	require.Error(t, policy.Check("aaaa"))
}
