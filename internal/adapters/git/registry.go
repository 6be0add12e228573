package git

import (
	"context"
	"path/filepath"

	"arbor/internal/domain"
	"arbor/internal/logging"
)

// The worktree registry derives the branch-to-path mapping from
// `git worktree list` on every call. Nothing here is cached: the external
// tool's current state is the only source of truth, so a mutation between
// two reads can never leave a stale mapping behind.

// listWorktreeRefs returns the repository's current worktree inventory.
// The first entry is the main working directory.
func listWorktreeRefs(ctx context.Context, repoRoot string) ([]domain.WorktreeRef, error) {
	output, err := runGit(ctx, repoRoot, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, err
	}

	refs, err := parseWorktreeList(output)
	if err != nil {
		return nil, domain.NewGitError(err.Error(), false, err)
	}

	logging.Logger.Debug("Derived worktree inventory", "root", repoRoot, "count", len(refs))
	return refs, nil
}

// worktreeForBranch finds the worktree that has branch checked out.
// Returns nil when no worktree holds the branch.
func worktreeForBranch(ctx context.Context, repoRoot, branch string) (*domain.WorktreeRef, error) {
	refs, err := listWorktreeRefs(ctx, repoRoot)
	if err != nil {
		return nil, err
	}

	for i := range refs {
		if refs[i].Branch == branch {
			return &refs[i], nil
		}
	}
	return nil, nil
}

// worktreeAtPath finds the worktree entry whose path matches wtPath.
// Returns nil when the path is not a registered worktree.
func worktreeAtPath(ctx context.Context, repoRoot, wtPath string) (*domain.WorktreeRef, error) {
	refs, err := listWorktreeRefs(ctx, repoRoot)
	if err != nil {
		return nil, err
	}

	want := canonicalPath(wtPath)
	for i := range refs {
		if canonicalPath(refs[i].Path) == want {
			return &refs[i], nil
		}
	}
	return nil, nil
}

// canonicalPath normalizes a path for comparison, resolving symlinks when
// the path still exists
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
