package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/domain"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_CreatesDirectoryAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	repo, err := NewSQLiteRepository(dbPath)

	require.NoError(t, err)
	defer repo.Close()
	assert.FileExists(t, dbPath)
}

func TestSQLiteRepository_AddAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	feature := domain.Feature{
		Name:        "login",
		BranchName:  "feature/login",
		Description: "Login flow",
		Status:      domain.FeatureStatusPlanned,
		Position:    1,
		DependsOn:   []string{"auth", "db"},
	}
	require.NoError(t, repo.Add(ctx, feature))

	got, err := repo.Get(ctx, "login")

	require.NoError(t, err)
	assert.Equal(t, "feature/login", got.BranchName)
	assert.Equal(t, "Login flow", got.Description)
	assert.Equal(t, []string{"auth", "db"}, got.DependsOn)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLiteRepository_Add_Duplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	feature := domain.Feature{Name: "login", BranchName: "feature/login", Status: "planned"}
	require.NoError(t, repo.Add(ctx, feature))

	err := repo.Add(ctx, feature)

	require.Error(t, err)
	assert.Equal(t, domain.CodeFeatureExists, domain.CodeOf(err))
}

func TestSQLiteRepository_Get_NotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Get(context.Background(), "ghost")

	require.Error(t, err)
	assert.Equal(t, domain.CodeFeatureNotFound, domain.CodeOf(err))
}

func TestSQLiteRepository_List_OrderedByPositionThenName(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "zeta", BranchName: "b", Status: "planned", Position: 0}))
	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "alpha", BranchName: "b", Status: "planned", Position: 0}))
	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "last", BranchName: "b", Status: "planned", Position: 9}))

	features, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, features, 3)
	assert.Equal(t, "alpha", features[0].Name)
	assert.Equal(t, "zeta", features[1].Name)
	assert.Equal(t, "last", features[2].Name)
}

func TestSQLiteRepository_List_DependenciesJoined(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "a", BranchName: "b", Status: "planned"}))
	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "b", BranchName: "b", Status: "planned",
		DependsOn: []string{"a"}}))

	features, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Empty(t, features[0].DependsOn)
	assert.Equal(t, []string{"a"}, features[1].DependsOn)
}

func TestSQLiteRepository_UpdateStatus(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "login", BranchName: "b", Status: "planned"}))

	require.NoError(t, repo.UpdateStatus(ctx, "login", domain.FeatureStatusDone))

	got, err := repo.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, domain.FeatureStatusDone, got.Status)
}

func TestSQLiteRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := setupRepo(t)

	err := repo.UpdateStatus(context.Background(), "ghost", "done")

	require.Error(t, err)
	assert.Equal(t, domain.CodeFeatureNotFound, domain.CodeOf(err))
}

func TestSQLiteRepository_Delete_CascadesDependencies(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "login", BranchName: "b", Status: "planned",
		DependsOn: []string{"auth"}}))

	require.NoError(t, repo.Delete(ctx, "login"))

	_, err := repo.Get(ctx, "login")
	require.Error(t, err)

	var count int64
	require.NoError(t, repo.db.Model(&FeatureDependencyModel{}).Count(&count).Error)
	assert.Zero(t, count, "dependency edges must cascade")
}

func TestSQLiteRepository_Delete_NotFound(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Delete(context.Background(), "ghost")

	require.Error(t, err)
	assert.Equal(t, domain.CodeFeatureNotFound, domain.CodeOf(err))
}

func TestWithRetry_BusyExhaustionKeepsLastError(t *testing.T) {
	busy := sqlite3.Error{Code: sqlite3.ErrBusy}
	calls := 0

	err := withRetry(func() error {
		calls++
		return busy
	}, 3)

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, busy, "the underlying busy error must survive exhaustion")
	assert.Contains(t, err.Error(), "after 3 retries")
}

func TestWithRetry_NonBusyErrorReturnsImmediately(t *testing.T) {
	calls := 0

	err := withRetry(func() error {
		calls++
		return errors.New("constraint failed")
	}, 3)

	require.Error(t, err)
	assert.Equal(t, 1, calls, "only busy errors are retried")
}

func TestSQLiteRepository_ReopenPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	repo, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, domain.Feature{Name: "login", BranchName: "b", Status: "planned"}))
	require.NoError(t, repo.Close())

	reopened, err := NewSQLiteRepository(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "login", got.Name)
}
