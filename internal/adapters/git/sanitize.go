package git

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// validBranchNameChars matches valid characters for git branch names
// Allows: alphanumeric, hyphens, underscores, dots, slashes
var validBranchNameChars = regexp.MustCompile(`^[a-zA-Z0-9._/-]+$`)

// consecutiveHyphens matches two or more consecutive hyphens
var consecutiveHyphens = regexp.MustCompile(`-{2,}`)

// validateBranchName checks if a branch name is valid according to git
// rules. Returns nil if valid, error with helpful message if invalid.
//
// Note: we enforce stricter rules than git-check-ref-format because branch
// names also become worktree directory names. Git branch naming rules
// enforced:
// - Cannot start with '.', '/', or '-'
// - Cannot end with '.lock', '.', '/', or '-'
// - Cannot contain '..' or '//' or '@{'
// - Cannot contain control characters or shell metacharacters
func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("branch name cannot start with '.'")
	}
	if strings.HasPrefix(name, "/") {
		return fmt.Errorf("branch name cannot start with '/'")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("branch name cannot start with '-'")
	}

	if strings.HasSuffix(name, ".lock") {
		return fmt.Errorf("branch name cannot end with '.lock'")
	}
	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("branch name cannot end with '.'")
	}
	if strings.HasSuffix(name, "/") {
		return fmt.Errorf("branch name cannot end with '/'")
	}
	if strings.HasSuffix(name, "-") {
		return fmt.Errorf("branch name cannot end with '-'")
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("branch name cannot contain '..'")
	}
	if strings.Contains(name, "//") {
		return fmt.Errorf("branch name cannot contain '//'")
	}
	if strings.Contains(name, "@{") {
		return fmt.Errorf("branch name cannot contain '@{'")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("branch name cannot contain control characters")
		}
	}

	if !validBranchNameChars.MatchString(name) {
		return fmt.Errorf("branch name contains invalid characters (only alphanumeric, '.', '_', '-', '/' allowed)")
	}

	if name == "@" {
		return fmt.Errorf("branch name cannot be '@'")
	}

	return nil
}

// sanitizeWorktreeDir maps a branch name to its worktree directory name.
//
// The mapping is a pure function of the branch name so the worktree path
// can always be re-derived without persisted state:
//  1. Path separators ('/' and '\') become '-'
//  2. Control characters and ':' are dropped
//  3. '..' collapses to '.'
//  4. Leading/trailing '.', '-' and whitespace are trimmed
//  5. Consecutive hyphens collapse to one
//
// Two branches that differ only in separator placement (e.g. "a/b-c" and
// "a-b/c") map to the same directory; validateBranchName plus the registry
// lookup before creation keeps the branch-to-path mapping bijective in
// practice.
func sanitizeWorktreeDir(branch string) string {
	var builder strings.Builder
	for _, r := range branch {
		switch {
		case r == '/' || r == '\\':
			builder.WriteRune('-')
		case unicode.IsControl(r) || r == ':':
			// dropped
		default:
			builder.WriteRune(r)
		}
	}

	result := builder.String()
	result = strings.ReplaceAll(result, "..", ".")
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".-")
	result = consecutiveHyphens.ReplaceAllString(result, "-")

	if result == "" {
		result = "worktree"
	}
	return result
}
