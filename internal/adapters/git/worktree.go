package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"arbor/internal/domain"
	"arbor/internal/logging"
)

// WorktreeDirName is the directory under the repository root that holds all
// linked worktrees
const WorktreeDirName = ".worktrees"

// worktreePath derives the deterministic worktree path for a branch:
// <repoRoot>/.worktrees/<sanitized branch name>
func worktreePath(repoRoot, branch string) string {
	return filepath.Join(repoRoot, WorktreeDirName, sanitizeWorktreeDir(branch))
}

// addWorktree creates a linked worktree at wtPath. If the branch already
// exists it is checked out, so the worktree materializes the branch's
// existing content; otherwise a new branch is created from the current tip.
func addWorktree(ctx context.Context, repoRoot, wtPath, branch string) error {
	if err := validateBranchName(branch); err != nil {
		return domain.NewGitError(fmt.Sprintf("invalid branch name: %v", err), false, err)
	}

	if err := os.MkdirAll(filepath.Dir(wtPath), 0755); err != nil {
		return fmt.Errorf("failed to create worktree base directory: %w", err)
	}

	exists, err := branchExists(ctx, repoRoot, branch)
	if err != nil {
		return err
	}

	if exists {
		logging.Logger.Info("Checking out existing branch in worktree",
			"path", wtPath, "branch", branch)
		_, err = runGitMutating(ctx, repoRoot, "worktree", "add", wtPath, branch)
	} else {
		logging.Logger.Info("Creating new branch in worktree",
			"path", wtPath, "branch", branch)
		_, err = runGitMutating(ctx, repoRoot, "worktree", "add", "-b", branch, wtPath)
	}
	return err
}

// removeWorktree removes a linked worktree and its metadata. An already
// absent directory is treated as success: deletion means "ensure absent".
// Stale metadata for a manually deleted directory is pruned.
func removeWorktree(ctx context.Context, repoRoot, wtPath string) error {
	if _, err := os.Stat(wtPath); os.IsNotExist(err) {
		logging.Logger.Warn("Worktree path already absent, pruning metadata", "path", wtPath)
		return pruneWorktrees(ctx, repoRoot)
	}

	// --force allows removing worktrees with uncommitted changes; worktrees
	// here are disposable per-feature environments
	_, err := runGitMutating(ctx, repoRoot, "worktree", "remove", "--force", wtPath)
	return err
}

// pruneWorktrees drops metadata for worktrees whose directories are gone
func pruneWorktrees(ctx context.Context, repoRoot string) error {
	_, err := runGitMutating(ctx, repoRoot, "worktree", "prune")
	return err
}

// deleteBranch removes a local branch ref. Fails when the branch is still
// checked out in another worktree.
func deleteBranch(ctx context.Context, repoRoot, branch string) error {
	_, err := runGitMutating(ctx, repoRoot, "branch", "-D", branch)
	return err
}

// checkout switches the working tree at path to branch. Callers guard the
// dirty-tree precondition; git itself never partially switches.
func checkout(ctx context.Context, path, branch string) error {
	_, err := runGitMutating(ctx, path, "checkout", branch)
	return err
}

// stageAll stages every pending modification and untracked file
func stageAll(ctx context.Context, path string) error {
	_, err := runGitMutating(ctx, path, "add", "-A")
	return err
}

// commit records the staged changes with the given message
func commit(ctx context.Context, path, message string) error {
	_, err := runGitMutating(ctx, path, "commit", "-m", message)
	return err
}

// headHash returns the 8-character abbreviation of the current tip commit
func headHash(ctx context.Context, path string) (string, error) {
	output, err := runGit(ctx, path, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	hash, err := abbreviateHash(output)
	if err != nil {
		return "", domain.NewGitError(err.Error(), false, err)
	}
	return hash, nil
}

// countChangedFiles counts paths differing from the last commit, including
// untracked files
func countChangedFiles(ctx context.Context, path string) (int, error) {
	output, err := runGit(ctx, path, "status", "--porcelain")
	if err != nil {
		return 0, err
	}
	count, err := parseStatusCount(output)
	if err != nil {
		return 0, domain.NewGitError(err.Error(), false, err)
	}
	return count, nil
}

// listBranches lists local branches with the current one marked
func listBranches(ctx context.Context, repoPath string) (*domain.BranchList, error) {
	output, err := runGit(ctx, repoPath, "branch", "--list")
	if err != nil {
		return nil, err
	}
	list, err := parseBranchList(output)
	if err != nil {
		return nil, domain.NewGitError(err.Error(), false, err)
	}
	return list, nil
}
