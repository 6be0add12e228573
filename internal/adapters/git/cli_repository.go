package git

import (
	"context"

	"arbor/internal/domain"
	"arbor/internal/ports"
)

// CLIRepository implements ports.GitRepository using the local git binary
type CLIRepository struct{}

// Verify interface compliance at compile time
var _ ports.GitRepository = (*CLIRepository)(nil)

// NewCLIRepository creates a new CLIRepository
func NewCLIRepository() *CLIRepository {
	return &CLIRepository{}
}

// RepoInspector methods

// IsGitRepo implements RepoInspector.IsGitRepo
func (r *CLIRepository) IsGitRepo(ctx context.Context, path string) (bool, string) {
	return isGitRepo(ctx, path)
}

// MainRepoRoot implements RepoInspector.MainRepoRoot
func (r *CLIRepository) MainRepoRoot(ctx context.Context, path string) (string, error) {
	return mainRepoRoot(ctx, path)
}

// CurrentBranch implements RepoInspector.CurrentBranch
func (r *CLIRepository) CurrentBranch(ctx context.Context, path string) (string, error) {
	return currentBranch(ctx, path)
}

// BranchExists implements RepoInspector.BranchExists
func (r *CLIRepository) BranchExists(ctx context.Context, repoPath, branch string) (bool, error) {
	return branchExists(ctx, repoPath, branch)
}

// BranchReader methods

// ListBranches implements BranchReader.ListBranches
func (r *CLIRepository) ListBranches(ctx context.Context, repoPath string) (*domain.BranchList, error) {
	return listBranches(ctx, repoPath)
}

// BranchWriter methods

// Checkout implements BranchWriter.Checkout
func (r *CLIRepository) Checkout(ctx context.Context, repoPath, branch string) error {
	return checkout(ctx, repoPath, branch)
}

// DeleteBranch implements BranchWriter.DeleteBranch
func (r *CLIRepository) DeleteBranch(ctx context.Context, repoPath, branch string) error {
	return deleteBranch(ctx, repoPath, branch)
}

// WorktreeRegistry methods

// ListWorktreeRefs implements WorktreeRegistry.ListWorktreeRefs
func (r *CLIRepository) ListWorktreeRefs(ctx context.Context, repoRoot string) ([]domain.WorktreeRef, error) {
	return listWorktreeRefs(ctx, repoRoot)
}

// WorktreeForBranch implements WorktreeRegistry.WorktreeForBranch
func (r *CLIRepository) WorktreeForBranch(ctx context.Context, repoRoot, branch string) (*domain.WorktreeRef, error) {
	return worktreeForBranch(ctx, repoRoot, branch)
}

// WorktreeAtPath implements WorktreeRegistry.WorktreeAtPath
func (r *CLIRepository) WorktreeAtPath(ctx context.Context, repoRoot, wtPath string) (*domain.WorktreeRef, error) {
	return worktreeAtPath(ctx, repoRoot, wtPath)
}

// WorktreeManager methods

// WorktreePath implements WorktreeManager.WorktreePath
func (r *CLIRepository) WorktreePath(repoRoot, branch string) string {
	return worktreePath(repoRoot, branch)
}

// AddWorktree implements WorktreeManager.AddWorktree
func (r *CLIRepository) AddWorktree(ctx context.Context, repoRoot, wtPath, branch string) error {
	return addWorktree(ctx, repoRoot, wtPath, branch)
}

// RemoveWorktree implements WorktreeManager.RemoveWorktree
func (r *CLIRepository) RemoveWorktree(ctx context.Context, repoRoot, wtPath string) error {
	return removeWorktree(ctx, repoRoot, wtPath)
}

// StatusReader methods

// CountChangedFiles implements StatusReader.CountChangedFiles
func (r *CLIRepository) CountChangedFiles(ctx context.Context, worktreePath string) (int, error) {
	return countChangedFiles(ctx, worktreePath)
}

// CommitWriter methods

// StageAll implements CommitWriter.StageAll
func (r *CLIRepository) StageAll(ctx context.Context, worktreePath string) error {
	return stageAll(ctx, worktreePath)
}

// Commit implements CommitWriter.Commit
func (r *CLIRepository) Commit(ctx context.Context, worktreePath, message string) error {
	return commit(ctx, worktreePath, message)
}

// HeadHash implements CommitWriter.HeadHash
func (r *CLIRepository) HeadHash(ctx context.Context, worktreePath string) (string, error) {
	return headHash(ctx, worktreePath)
}
