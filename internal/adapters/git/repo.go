package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"arbor/internal/logging"
)

// isGitRepo checks if the given path is within a git working tree.
// Returns true and the working tree root if it is, false otherwise.
// NOTE: for linked worktrees this returns the worktree root, not the main
// repository root. Use mainRepoRoot for the primary checkout.
func isGitRepo(ctx context.Context, path string) (bool, string) {
	output, err := runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		logging.Logger.Debug("Not a git repository", "path", path)
		return false, ""
	}
	return true, strings.TrimSpace(output)
}

// mainRepoRoot returns the main repository root for path, even when path is
// inside a linked worktree. The git common directory always lives under the
// primary checkout.
func mainRepoRoot(ctx context.Context, path string) (string, error) {
	output, err := runGit(ctx, path, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("failed to get git common dir: %w", err)
	}

	gitCommonDir := strings.TrimSpace(output)

	// Relative output (like ".git") resolves against path
	if !filepath.IsAbs(gitCommonDir) {
		gitCommonDir = filepath.Join(path, gitCommonDir)
	}

	return filepath.Clean(filepath.Dir(gitCommonDir)), nil
}

// currentBranch returns the checked-out branch name at path, or "HEAD" when
// detached
func currentBranch(ctx context.Context, path string) (string, error) {
	output, err := runGit(ctx, path, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(output), nil
}

// branchExists checks if a local branch ref exists. show-ref exits 1 for a
// missing ref; any other failure (no repository, git unavailable) propagates
// so callers never mistake a broken repo for an absent branch.
func branchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	_, err := runGit(ctx, repoPath, "show-ref", "--verify", "--quiet", branchRefPrefix+branch)
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}
