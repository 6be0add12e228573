package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adaptergit "arbor/internal/adapters/git"
	"arbor/internal/domain"
	"arbor/internal/repolock"
)

func newCommitService() *CommitService {
	return NewCommitService(adaptergit.NewCLIRepository(), repolock.NewRegistry())
}

func TestCommitService_Commit(t *testing.T) {
	repoPath := setupTestRepo(t)
	svc := newCommitService()

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "change.txt"), []byte("x"), 0644))

	result, err := svc.Commit(context.Background(), repoPath, "Add change")

	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, "main", result.Branch)
	assert.Len(t, result.CommitHash, 8)
	assert.Regexp(t, "^[0-9a-f]{8}$", result.CommitHash)
}

func TestCommitService_Commit_CleanTreeIsNoOp(t *testing.T) {
	repoPath := setupTestRepo(t)
	svc := newCommitService()

	result, err := svc.Commit(context.Background(), repoPath, "Nothing to do")

	require.NoError(t, err, "clean tree commit is a success, not an error")
	assert.False(t, result.Committed)
	assert.Equal(t, "No changes to commit", result.Message)
	assert.Empty(t, result.CommitHash)
}

func TestCommitService_Commit_IncludesUntrackedFiles(t *testing.T) {
	repoPath := setupTestRepo(t)
	svc := newCommitService()

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "untracked.txt"), []byte("x"), 0644))

	result, err := svc.Commit(context.Background(), repoPath, "Add untracked")

	require.NoError(t, err)
	assert.True(t, result.Committed)

	out := gitCmd(t, repoPath, "status", "--porcelain")
	assert.Empty(t, out, "untracked file should have been committed")
}

func TestCommitService_Commit_DeltaOnly(t *testing.T) {
	repoPath := setupTestRepo(t)
	svc := newCommitService()
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "first.txt"), []byte("1"), 0644))
	first, err := svc.Commit(ctx, repoPath, "First")
	require.NoError(t, err)
	require.True(t, first.Committed)

	// Nothing new: the second call must not create another commit
	second, err := svc.Commit(ctx, repoPath, "Second")
	require.NoError(t, err)
	assert.False(t, second.Committed)

	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "second.txt"), []byte("2"), 0644))
	third, err := svc.Commit(ctx, repoPath, "Third")
	require.NoError(t, err)
	assert.True(t, third.Committed)
	assert.NotEqual(t, first.CommitHash, third.CommitHash)
}

func TestCommitService_Commit_InWorktree(t *testing.T) {
	repoPath := setupTestRepo(t)
	worktrees := newWorktreeService()
	svc := newCommitService()
	ctx := context.Background()

	created, err := worktrees.Create(ctx, repoPath, "feature/x")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(created.Path, "feature.txt"), []byte("x"), 0644))

	result, err := svc.Commit(ctx, created.Path, "Feature work")

	require.NoError(t, err)
	assert.True(t, result.Committed)
	assert.Equal(t, "feature/x", result.Branch)

	// The commit lands on the worktree's branch only
	assert.NoFileExists(t, filepath.Join(repoPath, "feature.txt"))
}

func TestCommitService_Commit_MissingFields(t *testing.T) {
	svc := newCommitService()
	ctx := context.Background()

	_, err := svc.Commit(ctx, "", "message")
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "worktreePath")

	_, err = svc.Commit(ctx, t.TempDir(), "")
	require.Error(t, err)
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "message")
}

func TestCommitService_Commit_NotARepository(t *testing.T) {
	svc := newCommitService()

	_, err := svc.Commit(context.Background(), t.TempDir(), "message")

	require.Error(t, err)
	assert.Equal(t, domain.CodeRepositoryNotFound, domain.CodeOf(err))
}
