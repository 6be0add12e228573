package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBranchName_EmptyName(t *testing.T) {
	err := validateBranchName("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestValidateBranchName_InvalidPrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"starts with dot", ".hidden", "start with '.'"},
		{"starts with slash", "/path", "start with '/'"},
		{"starts with hyphen", "-feature", "start with '-'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidSuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"ends with .lock", "branch.lock", ".lock"},
		{"ends with dot", "branch.", "end with '.'"},
		{"ends with slash", "branch/", "end with '/'"},
		{"ends with hyphen", "branch-", "end with '-'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_InvalidSequences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"double dot", "feat..ure", "'..'"},
		{"double slash", "feat//ure", "'//'"},
		{"at brace", "feat@{ure", "'@{'"},
		{"shell metachar", "feat;rm", "invalid characters"},
		{"space", "my branch", "invalid characters"},
		{"at alone", "@", "'@'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBranchName(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestValidateBranchName_Valid(t *testing.T) {
	valid := []string{
		"main",
		"feature/login",
		"feature/auth-v2",
		"release/1.2.3",
		"fix_bug_42",
		"UPPER-case",
	}

	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, validateBranchName(name))
		})
	}
}

func TestSanitizeWorktreeDir(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "login", "login"},
		{"slash becomes hyphen", "feature/x", "feature-x"},
		{"nested slashes", "feature/auth/v2", "feature-auth-v2"},
		{"backslash becomes hyphen", `feature\x`, "feature-x"},
		{"colon dropped", "a:b", "ab"},
		{"double dot collapsed", "a..b", "a.b"},
		{"trailing trim", "x-", "x"},
		{"leading trim", ".x", "x"},
		{"consecutive hyphens collapse", "a/-b", "a-b"},
		{"everything stripped falls back", "..", "worktree"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeWorktreeDir(tt.input))
		})
	}
}

func TestSanitizeWorktreeDir_Deterministic(t *testing.T) {
	// Re-deriving the directory name must always give the same answer
	first := sanitizeWorktreeDir("feature/login")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, sanitizeWorktreeDir("feature/login"))
	}
}
