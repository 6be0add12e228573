package ports

import (
	"context"

	"arbor/internal/domain"
)

// RepoInspector queries repository information
type RepoInspector interface {
	// IsGitRepo reports whether path is inside a git working tree and
	// returns the working tree root when it is
	IsGitRepo(ctx context.Context, path string) (bool, string)
	// MainRepoRoot returns the main repository root for path, resolving
	// linked worktrees to the primary checkout
	MainRepoRoot(ctx context.Context, path string) (string, error)
	CurrentBranch(ctx context.Context, path string) (string, error)
	BranchExists(ctx context.Context, repoPath, branch string) (bool, error)
}

// BranchReader lists local branches
type BranchReader interface {
	ListBranches(ctx context.Context, repoPath string) (*domain.BranchList, error)
}

// BranchWriter mutates branch state
type BranchWriter interface {
	Checkout(ctx context.Context, repoPath, branch string) error
	DeleteBranch(ctx context.Context, repoPath, branch string) error
}

// WorktreeRegistry derives the branch to worktree-path mapping from the
// external tool's current state. Implementations never cache across calls.
type WorktreeRegistry interface {
	ListWorktreeRefs(ctx context.Context, repoRoot string) ([]domain.WorktreeRef, error)
	WorktreeForBranch(ctx context.Context, repoRoot, branch string) (*domain.WorktreeRef, error)
	WorktreeAtPath(ctx context.Context, repoRoot, worktreePath string) (*domain.WorktreeRef, error)
}

// WorktreeManager handles worktree lifecycle primitives
type WorktreeManager interface {
	// WorktreePath derives the deterministic target path for a branch's
	// worktree under repoRoot. Pure, requires no repository state.
	WorktreePath(repoRoot, branch string) string
	AddWorktree(ctx context.Context, repoRoot, worktreePath, branch string) error
	// RemoveWorktree treats an already absent directory as success and
	// prunes any stale metadata left behind
	RemoveWorktree(ctx context.Context, repoRoot, worktreePath string) error
}

// StatusReader inspects working tree dirtiness
type StatusReader interface {
	// CountChangedFiles counts paths differing from the last commit,
	// including untracked files
	CountChangedFiles(ctx context.Context, worktreePath string) (int, error)
}

// CommitWriter stages and commits changes in a worktree
type CommitWriter interface {
	StageAll(ctx context.Context, worktreePath string) error
	Commit(ctx context.Context, worktreePath, message string) error
	HeadHash(ctx context.Context, worktreePath string) (string, error)
}

// GitRepository is the composite interface
type GitRepository interface {
	BranchReader
	BranchWriter
	CommitWriter
	RepoInspector
	StatusReader
	WorktreeManager
	WorktreeRegistry
}
