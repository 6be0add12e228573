package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitRepo(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	ok, root := isGitRepo(ctx, repoPath)

	assert.True(t, ok)
	assert.Equal(t, canonicalPath(repoPath), canonicalPath(root))
}

func TestIsGitRepo_NotARepo(t *testing.T) {
	ok, root := isGitRepo(context.Background(), t.TempDir())

	assert.False(t, ok)
	assert.Empty(t, root)
}

func TestMainRepoRoot_FromMainCheckout(t *testing.T) {
	repoPath := setupTestRepo(t)

	root, err := mainRepoRoot(context.Background(), repoPath)

	require.NoError(t, err)
	assert.Equal(t, canonicalPath(repoPath), canonicalPath(root))
}

func TestMainRepoRoot_FromLinkedWorktree(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	wtPath := worktreePath(repoPath, "feature/x")
	require.NoError(t, addWorktree(ctx, repoPath, wtPath, "feature/x"))

	root, err := mainRepoRoot(ctx, wtPath)

	require.NoError(t, err)
	assert.Equal(t, canonicalPath(repoPath), canonicalPath(root))
}

func TestCurrentBranch(t *testing.T) {
	repoPath := setupTestRepo(t)

	branch, err := currentBranch(context.Background(), repoPath)

	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestBranchExists(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	exists, err := branchExists(ctx, repoPath, "main")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = branchExists(ctx, repoPath, "no-such-branch")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBranchExists_NotARepository(t *testing.T) {
	// A broken lookup must surface as an error, not as "branch absent"
	_, err := branchExists(context.Background(), t.TempDir(), "main")

	assert.Error(t, err)
}

func TestListWorktreeRefs(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	wtPath := worktreePath(repoPath, "feature/x")
	require.NoError(t, addWorktree(ctx, repoPath, wtPath, "feature/x"))

	refs, err := listWorktreeRefs(ctx, repoPath)

	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.True(t, refs[0].IsMain)
	assert.Equal(t, "main", refs[0].Branch)
	assert.Equal(t, "feature/x", refs[1].Branch)
	assert.NotEmpty(t, refs[0].Head)
}

func TestWorktreeForBranch(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	wtPath := worktreePath(repoPath, "feature/x")
	require.NoError(t, addWorktree(ctx, repoPath, wtPath, "feature/x"))

	ref, err := worktreeForBranch(ctx, repoPath, "feature/x")
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, canonicalPath(wtPath), canonicalPath(ref.Path))

	ref, err = worktreeForBranch(ctx, repoPath, "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, ref)
}

func TestWorktreeForBranch_MainCheckout(t *testing.T) {
	repoPath := setupTestRepo(t)

	ref, err := worktreeForBranch(context.Background(), repoPath, "main")

	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.True(t, ref.IsMain)
}

func TestWorktreeAtPath(t *testing.T) {
	repoPath := setupTestRepo(t)
	ctx := context.Background()

	wtPath := worktreePath(repoPath, "feature/x")
	require.NoError(t, addWorktree(ctx, repoPath, wtPath, "feature/x"))

	ref, err := worktreeAtPath(ctx, repoPath, wtPath)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, "feature/x", ref.Branch)

	ref, err = worktreeAtPath(ctx, repoPath, filepath.Join(repoPath, "nowhere"))
	require.NoError(t, err)
	assert.Nil(t, ref)
}
